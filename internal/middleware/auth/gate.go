package auth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/repo"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/tokens"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"

	CtxUserIDKey = "user_id"
)

type Gate struct {
	Tokens *tokens.Service
	Repo   *repo.GormRepo
}

func NewGate(tok *tokens.Service, r *repo.GormRepo) *Gate {
	return &Gate{Tokens: tok, Repo: r}
}

// Protect requires a valid access token cookie and puts the resolved user id
// into the request context.
func (g *Gate) Protect(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(AccessCookie)
		if err != nil || cookie.Value == "" {
			return service.Unauthorized("You are not authenticated")
		}

		userID, err := g.Tokens.ParseAccess(cookie.Value)
		if err != nil {
			return service.Unauthorized("You are not authenticated")
		}

		c.Set(CtxUserIDKey, userID)
		return next(c)
	}
}

// AdminOnly reads the identity set by Protect and admits admins only. It
// never parses tokens itself and must be mounted after Protect.
func (g *Gate) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawID, ok := c.Get(CtxUserIDKey).(string)
		if !ok || rawID == "" {
			return service.Unauthorized("You are not authenticated")
		}

		id, err := uuid.Parse(rawID)
		if err != nil {
			return service.Unauthorized("You are not authenticated")
		}

		user, err := g.Repo.FindUserByID(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, repo.ErrUserNotFound) {
				return service.Unauthorized("You are not authenticated")
			}
			return service.Internal("Could not authorize request")
		}

		if user.Role != models.RoleAdmin {
			return service.Unauthorized("You are not authorized to access this route")
		}

		return next(c)
	}
}
