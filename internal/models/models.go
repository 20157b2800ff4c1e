package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name         string    `gorm:"not null"              json:"name"`
	Username     string    `gorm:"not null"              json:"username"`
	Email        string    `gorm:"unique;not null"       json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// RevokedToken is a refresh token invalidated before its natural expiry.
// Rows are keyed by the sha256 of the raw token and may only be evicted
// once ExpiresAt has passed.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	TokenHash string    `gorm:"unique;not null" json:"token_hash"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"index;not null"  json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
