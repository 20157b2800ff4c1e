package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/hash"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/logging"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/mykafka"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/repo"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/tokens"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/validation"
)

type AuthService struct {
	Repo     *repo.GormRepo
	Tokens   *tokens.Service
	Producer *mykafka.Producer
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

func (s *AuthService) signPair(userID uuid.UUID) (*TokenPair, error) {
	access, accessExp, err := s.Tokens.SignAccess(userID.String())
	if err != nil {
		return nil, Internal("Could not create access token")
	}
	refresh, refreshExp, err := s.Tokens.SignRefresh(userID.String())
	if err != nil {
		return nil, Internal("Could not create refresh token")
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := validation.ValidateRegister(req.Name, req.Username, req.Email, req.Password); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, Internal("Could not register user")
	}

	user := &models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			l.Warn("register_conflict", "status", 409, "email", req.Email)
			return nil, Conflict("This email has already an account. Please login")
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, Internal("Could not register user")
	}

	pair, err := s.signPair(user.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})

	l.Info("register_successful", "user_id", user.ID)
	return &AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		AccessExp:    pair.AccessExp,
		RefreshExp:   pair.RefreshExp,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", req.Email)

	if err := validation.ValidateLogin(req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "user not registered")
			return nil, NotFound("User not registered")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, Internal("Could not log in")
	}

	ok, err := hash.CheckPasswordErr(user.PasswordHash, req.Password)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "corrupt credential", "error", err)
		return nil, Internal("Could not log in")
	}
	if !ok {
		l.Warn("login_failed", "status", 401, "reason", "invalid password")
		return nil, Unauthorized("Email/Password not valid")
	}

	pair, err := s.signPair(user.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		AccessExp:    pair.AccessExp,
		RefreshExp:   pair.RefreshExp,
	}, nil
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// is revoked as part of the exchange, so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	// Signature and expiry first. Garbage input never reaches the store.
	claims, err := s.Tokens.ParseRefresh(rawRefresh)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "invalid token")
		return nil, Unauthorized("You are not authenticated")
	}

	revoked, err := s.Repo.IsTokenRevoked(ctx, rawRefresh)
	if err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, Internal("Could not refresh token")
	}
	if revoked {
		l.Warn("refresh_failed", "status", 401, "reason", "token revoked")
		return nil, Unauthorized("You are not authenticated")
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return nil, Unauthorized("You are not authenticated")
	}

	if err := s.Repo.RevokeToken(ctx, rawRefresh, userID, claims.ExpiresAt.Time); err != nil {
		l.Error("refresh_failed", "status", 500, "error", err)
		return nil, Internal("Could not refresh token")
	}

	pair, err := s.signPair(userID)
	if err != nil {
		return nil, err
	}

	l.Info("refresh_successful", "user_id", userID)
	return pair, nil
}

// Logout revokes the presented refresh token. The token only has to be
// structurally valid; whoever holds it is logged out.
func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	claims, err := s.Tokens.ParseRefresh(rawRefresh)
	if err != nil {
		l.Warn("logout_failed", "status", 401, "reason", "invalid token")
		return Unauthorized("You are not authenticated")
	}

	userID, _ := uuid.Parse(claims.UserID())
	if err := s.Repo.RevokeToken(ctx, rawRefresh, userID, claims.ExpiresAt.Time); err != nil {
		l.Error("logout_failed", "status", 500, "error", err)
		return Internal("Could not log out")
	}

	l.Info("logout_successful", "user_id", userID)
	return nil
}
