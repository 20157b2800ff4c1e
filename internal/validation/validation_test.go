package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidateRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		username string
		email    string
		password string
		wantErr  bool
	}{
		{name: "valid", userName: "Test", username: "test", email: "test@example.com", password: "password123"},
		{name: "missing name", userName: "", username: "test", email: "test@example.com", password: "password123", wantErr: true},
		{name: "missing username", userName: "Test", username: " ", email: "test@example.com", password: "password123", wantErr: true},
		{name: "missing email", userName: "Test", username: "test", email: "", password: "password123", wantErr: true},
		{name: "bad email", userName: "Test", username: "test", email: "not-an-email", password: "password123", wantErr: true},
		{name: "missing password", userName: "Test", username: "test", email: "test@example.com", password: "", wantErr: true},
		{name: "short password", userName: "Test", username: "test", email: "test@example.com", password: "short", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateRegister(tt.userName, tt.username, tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateLogin("test@example.com", "password123"))
	assert.ErrorIs(t, ValidateLogin("", "password123"), ErrValidation)
	assert.ErrorIs(t, ValidateLogin("test@example.com", ""), ErrValidation)
	assert.ErrorIs(t, ValidateLogin("not-an-email", "password123"), ErrValidation)
}

func TestValidateUpdate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateUpdate(nil, nil, nil, nil))
	assert.NoError(t, ValidateUpdate(strPtr("Name"), strPtr("user"), strPtr("a@b.com"), strPtr("password123")))
	assert.ErrorIs(t, ValidateUpdate(strPtr(" "), nil, nil, nil), ErrValidation)
	assert.ErrorIs(t, ValidateUpdate(nil, strPtr(""), nil, nil), ErrValidation)
	assert.ErrorIs(t, ValidateUpdate(nil, nil, strPtr("bad"), nil), ErrValidation)
	assert.ErrorIs(t, ValidateUpdate(nil, nil, nil, strPtr("short")), ErrValidation)
}
