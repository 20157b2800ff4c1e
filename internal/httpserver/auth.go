package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/logging"
	mwauth "github.com/yasirmansoori/Authentication-with-JWT/internal/middleware/auth"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) setTokenCookies(c echo.Context, res *service.TokenPair) {
	c.SetCookie(CreateCookie(mwauth.AccessCookie, res.AccessToken, "/", res.AccessExp))
	c.SetCookie(CreateCookie(mwauth.RefreshCookie, res.RefreshToken, "/", res.RefreshExp))
}

func (h *AuthHandler) clearTokenCookies(c echo.Context) {
	c.SetCookie(DeleteCookie(mwauth.AccessCookie, "/"))
	c.SetCookie(DeleteCookie(mwauth.RefreshCookie, "/"))
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req service.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return service.BadRequest("Invalid request body")
	}

	res, err := h.Svc.Register(ctx, req)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, &service.TokenPair{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AccessExp:    res.AccessExp,
		RefreshExp:   res.RefreshExp,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"data": echo.Map{
			"user":         res.User,
			"accessToken":  res.AccessToken,
			"refreshToken": res.RefreshToken,
		},
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return service.BadRequest("Invalid request body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, &service.TokenPair{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		AccessExp:    res.AccessExp,
		RefreshExp:   res.RefreshExp,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User logged in successfully",
		"data": echo.Map{
			"user":         res.User,
			"accessToken":  res.AccessToken,
			"refreshToken": res.RefreshToken,
		},
	})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(mwauth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		return service.BadRequest("Refresh token is required")
	}

	pair, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		return err
	}

	h.setTokenCookies(c, pair)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Token refreshed successfully",
		"data": echo.Map{
			"accessToken":  pair.AccessToken,
			"refreshToken": pair.RefreshToken,
		},
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(mwauth.RefreshCookie)
	if err != nil || cookie.Value == "" {
		return service.BadRequest("Refresh token is required")
	}

	if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
		return err
	}

	h.clearTokenCookies(c)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User logged out successfully",
	})
}
