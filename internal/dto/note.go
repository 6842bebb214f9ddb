package dto

import "notes_service/internal/models"

type CreateNoteRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	IsPublic bool   `json:"isPublic"`
}

// UpdateNoteRequest is a patch: nil fields stay untouched.
type UpdateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"isPublic"`
}

type ShareNoteRequest struct {
	// Grantee is an email address or a numeric user id
	Grantee    string            `json:"grantee" binding:"required"`
	AccessType models.AccessType `json:"accessType" binding:"required"`
}

type ListNotesRequest struct {
	Skip           int    `form:"skip"`
	Take           int    `form:"take"`
	Search         string `form:"search"`
	OrderBy        string `form:"orderBy"`
	SortOrder      string `form:"sortOrder"`
	AccessFilter   string `form:"accessFilter"`
	IncludeDeleted bool   `form:"includeDeleted"`
}
