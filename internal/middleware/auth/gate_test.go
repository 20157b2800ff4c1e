package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/models"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/repo"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/tokens"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.RevokedToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestGate(t *testing.T) (*Gate, *repo.GormRepo) {
	t.Helper()

	tok, err := tokens.New([]byte("test-access-secret"), []byte("test-refresh-secret"), 0, 0)
	require.NoError(t, err)

	r := repo.New(InitTestDB(t))
	return NewGate(tok, r), r
}

func seedUser(t *testing.T, r *repo.GormRepo, role string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         "Gate User",
		Username:     "gate_user",
		Email:        role + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
	}
	require.NoError(t, r.CreateUserIfNotExists(context.Background(), user))
	return user
}

func newRequest(t *testing.T, cookies ...*http.Cookie) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestProtect_MissingCookie(t *testing.T) {
	gate, _ := newTestGate(t)

	err := gate.Protect(okHandler)(newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestProtect_InvalidToken(t *testing.T) {
	gate, _ := newTestGate(t)

	c := newRequest(t, &http.Cookie{Name: AccessCookie, Value: "garbage"})
	err := gate.Protect(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestProtect_ValidToken_SetsIdentity(t *testing.T) {
	gate, r := newTestGate(t)
	user := seedUser(t, r, models.RoleUser)

	access, _, err := gate.Tokens.SignAccess(user.ID.String())
	require.NoError(t, err)

	c := newRequest(t, &http.Cookie{Name: AccessCookie, Value: access})

	var gotID string
	handler := func(c echo.Context) error {
		gotID, _ = c.Get(CtxUserIDKey).(string)
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, gate.Protect(handler)(c))
	assert.Equal(t, user.ID.String(), gotID)
}

func TestAdminOnly_WithoutProtect(t *testing.T) {
	gate, _ := newTestGate(t)

	err := gate.AdminOnly(okHandler)(newRequest(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestAdminOnly_NonAdminDenied(t *testing.T) {
	gate, r := newTestGate(t)
	user := seedUser(t, r, models.RoleUser)

	c := newRequest(t)
	c.Set(CtxUserIDKey, user.ID.String())

	err := gate.AdminOnly(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Equal(t, "You are not authorized to access this route", err.Error())
}

func TestAdminOnly_AdminAdmitted(t *testing.T) {
	gate, r := newTestGate(t)
	user := seedUser(t, r, models.RoleAdmin)

	c := newRequest(t)
	c.Set(CtxUserIDKey, user.ID.String())

	require.NoError(t, gate.AdminOnly(okHandler)(c))
}

func TestAdminOnly_UnknownUser(t *testing.T) {
	gate, r := newTestGate(t)
	user := seedUser(t, r, models.RoleAdmin)

	_, err := r.DeleteUser(context.Background(), user.ID)
	require.NoError(t, err)

	c := newRequest(t)
	c.Set(CtxUserIDKey, user.ID.String())

	err = gate.AdminOnly(okHandler)(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	assert.Equal(t, "You are not authenticated", err.Error())
}
