package models

import (
	"time"

	"gorm.io/gorm"
)

type AccessType string

const (
	AccessView AccessType = "VIEW"
	AccessEdit AccessType = "EDIT"
)

// Valid reports whether the value is one of the grantable access types.
func (a AccessType) Valid() bool {
	return a == AccessView || a == AccessEdit
}

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"size:191;not null;index" json:"email"`
	Name         string         `gorm:"size:150" json:"name,omitempty"`
	PasswordHash string         `gorm:"size:191;not null" json:"-"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}
