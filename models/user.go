package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a post author. IsAdmin grants full content-management capability;
// everyone else is read-only.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"type:boolean;not null;default:false"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`
}
