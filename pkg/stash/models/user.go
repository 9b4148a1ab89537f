package models

import (
	"time"

	"gorm.io/gorm"
)

// Role represents a user's system-wide role
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents an account in the system. Every other entity is scoped
// to exactly one owning user.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string         `json:"-"`
	Role         Role           `gorm:"type:varchar(20);default:'user'" json:"role"`
	Active       bool           `gorm:"default:true" json:"active"`
}
