package tokens

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrNoSecret     = errors.New("signing secret is not configured")
	ErrInvalidToken = errors.New("invalid or expired token")
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 24 * time.Hour
)

type AccessClaims struct {
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	Typ string `json:"typ"`
	jwt.RegisteredClaims
}

// Service signs and verifies the token pair. Access and refresh tokens use
// distinct secrets so one can never be presented as the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, ErrNoSecret
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Service{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// SignAccess issues a short-lived token bound to userID as its audience.
func (s *Service) SignAccess(userID string) (string, time.Time, error) {
	exp := time.Now().Add(s.accessTTL)
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{userID},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.accessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *Service) SignRefresh(userID string) (string, time.Time, error) {
	exp := time.Now().Add(s.refreshTTL)
	claims := RefreshClaims{
		Typ: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{userID},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess validates signature and expiry and returns the bound user id.
func (s *Service) ParseAccess(raw string) (string, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.accessSecret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidToken
	}
	if len(claims.Audience) == 0 || claims.Audience[0] == "" {
		return "", ErrInvalidToken
	}
	return claims.Audience[0], nil
}

// ParseRefresh validates signature, expiry and the refresh type marker.
// Revocation is the caller's concern; it must be consulted only after this
// succeeds.
func (s *Service) ParseRefresh(raw string) (*RefreshClaims, error) {
	var claims RefreshClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.refreshSecret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Typ != "refresh" {
		return nil, ErrInvalidToken
	}
	if len(claims.Audience) == 0 || claims.Audience[0] == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// UserID returns the audience the refresh token was issued for.
func (c *RefreshClaims) UserID() string {
	if len(c.Audience) == 0 {
		return ""
	}
	return c.Audience[0]
}

func Sha256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
