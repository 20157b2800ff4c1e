package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mwauth "github.com/yasirmansoori/Authentication-with-JWT/internal/middleware/auth"
)

type Deps struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	Gate          *mwauth.Gate
	SearchEnabled bool
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Server is running...."})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "This is a protected route"})
	}, d.Gate.Protect)

	user := e.Group("/api/user")
	user.POST("/register", d.AuthHandler.Register)
	user.POST("/login", d.AuthHandler.Login)
	user.POST("/refresh-token", d.AuthHandler.Refresh)
	user.POST("/logout", d.AuthHandler.Logout)

	admin := e.Group("/api/admin", d.Gate.Protect, d.Gate.AdminOnly)
	admin.GET("/users", d.UserHandler.GetAllUsers)
	if d.SearchEnabled {
		admin.GET("/users/search", d.UserHandler.SearchUsers)
	}
	admin.GET("/users/:id", d.UserHandler.GetUserById)
	admin.PATCH("/users/:id", d.UserHandler.UpdateUserById)
	admin.DELETE("/users/:id", d.UserHandler.DeleteUserById)
}
