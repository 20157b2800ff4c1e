package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// ErrValidation marks malformed or missing input. Handlers map it to 422.
var ErrValidation = errors.New("validation error")

const minPasswordLen = 8

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func ValidateRegister(name, username, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	if strings.TrimSpace(username) == "" {
		return invalid("username is required")
	}
	if email == "" {
		return invalid("email is required")
	}
	if !validEmail(email) {
		return invalid("email must be a valid email address")
	}
	if password == "" {
		return invalid("password is required")
	}
	if len(password) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func ValidateLogin(email, password string) error {
	if email == "" || password == "" {
		return invalid("email and password are required")
	}
	if !validEmail(email) {
		return invalid("email must be a valid email address")
	}
	return nil
}

// ValidateUpdate checks the optional fields of an update payload. The same
// constraints as registration apply, minus the required-field ones.
func ValidateUpdate(name, username, email, password *string) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return invalid("name must not be empty")
	}
	if username != nil && strings.TrimSpace(*username) == "" {
		return invalid("username must not be empty")
	}
	if email != nil && !validEmail(*email) {
		return invalid("email must be a valid email address")
	}
	if password != nil && len(*password) < minPasswordLen {
		return invalid("password must be at least %d characters", minPasswordLen)
	}
	return nil
}
