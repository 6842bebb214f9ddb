package models

import (
	"time"

	"gorm.io/gorm"
)

type Note struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content,omitempty"`
	IsPublic  bool           `gorm:"not null;default:false" json:"isPublic"`
	OwnerID   uint           `gorm:"not null;index" json:"ownerId"`
	CreatedBy uint           `gorm:"not null" json:"createdBy"`
	UpdatedBy uint           `gorm:"not null" json:"updatedBy"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`

	// Foreign key relationships
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// UserNoteAccess is the junction table recording a VIEW or EDIT grant
// from a note's owner to another user. Revoking a grant soft-deletes it;
// at most one non-deleted row exists per (user, note) pair.
type UserNoteAccess struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"userId"`
	NoteID     uint           `gorm:"not null;index" json:"noteId"`
	AccessType AccessType     `gorm:"size:10;not null" json:"accessType"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deletedAt"`

	// Foreign key relationships
	Note Note `gorm:"foreignKey:NoteID" json:"-"`
}
