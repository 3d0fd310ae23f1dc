package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is an account identified by its normalized email address.
type User struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       string         `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Name        string         `json:"name" gorm:"type:varchar(255)"`
	Password    string         `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	IsActive    bool           `json:"-" gorm:"not null;default:true"`
	IsStaff     bool           `json:"-" gorm:"not null;default:false"`
	IsSuperuser bool           `json:"-" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// AuthToken is the server-side record of a bearer token. A user holds at
// most one token at a time.
type AuthToken struct {
	Key       string    `gorm:"column:token_key;primaryKey;type:varchar(512)"`
	UserID    string    `gorm:"uniqueIndex;type:varchar(36);not null"`
	CreatedAt time.Time
}

// NormalizeEmail trims the address and lower-cases it. Lookups and the
// unique index both operate on the normalized form, which makes emails
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
