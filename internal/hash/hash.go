package hash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptCredential means the stored hash is not a valid bcrypt value.
var ErrCorruptCredential = errors.New("corrupt credential hash")

func HashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashBytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordErr distinguishes a plain mismatch from a malformed stored
// hash, which callers must treat as a server-side failure.
func CheckPasswordErr(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrCorruptCredential
}
