package repositories

import (
	"strings"

	"notes_service/internal/models"

	"gorm.io/gorm"
)

// AccessFilter selects which relationship to the requester a listed note
// must have. The zero value means "anything visible": owned, granted or
// public.
type AccessFilter string

const (
	FilterDefault AccessFilter = ""
	FilterOwned   AccessFilter = "owned"
	FilterEdit    AccessFilter = "edit"
	FilterView    AccessFilter = "view"
	FilterPublic  AccessFilter = "public"
)

const (
	defaultTake = 10
	maxTake     = 100
)

type ListNotesQuery struct {
	Skip           int
	Take           int
	Search         string
	OrderBy        string
	SortOrder      string
	AccessFilter   AccessFilter
	IncludeDeleted bool
}

// normalized clamps pagination into the documented range instead of
// erroring: take <= 0 falls back to the default page size, take > 100
// clamps to 100, negative skip becomes 0.
func (q ListNotesQuery) normalized() ListNotesQuery {
	if q.Take <= 0 {
		q.Take = defaultTake
	}
	if q.Take > maxTake {
		q.Take = maxTake
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

var sortColumns = map[string]string{
	"title":     "notes.title",
	"createdAt": "notes.created_at",
	"updatedAt": "notes.updated_at",
}

// orderClause whitelists the sortable columns. An explicit column sorts
// ascending unless told otherwise; no column (or an unrecognized one)
// falls back to newest first.
func orderClause(orderBy, sortOrder string) string {
	col, ok := sortColumns[orderBy]
	if !ok {
		if orderBy != "" || sortOrder == "" {
			return "notes.created_at DESC"
		}
		col = "notes.created_at"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}

func accessScope(requesterID uint, filter AccessFilter) func(*gorm.DB) *gorm.DB {
	grantExists := `EXISTS (
		SELECT 1 FROM user_note_accesses a
		WHERE a.note_id = notes.id AND a.user_id = ? AND a.deleted_at IS NULL`

	return func(db *gorm.DB) *gorm.DB {
		switch filter {
		case FilterOwned:
			return db.Where("notes.owner_id = ?", requesterID)
		case FilterEdit:
			return db.Where(grantExists+" AND a.access_type = ?)", requesterID, models.AccessEdit)
		case FilterView:
			return db.Where(grantExists+" AND a.access_type = ?)", requesterID, models.AccessView)
		case FilterPublic:
			return db.Where("notes.is_public = ?", true)
		default:
			return db.Where("notes.owner_id = ? OR notes.is_public = ? OR "+grantExists+")",
				requesterID, true, requesterID)
		}
	}
}

func searchScope(search string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + strings.ToLower(search) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN users ON users.id = notes.owner_id").
			Where("LOWER(notes.title) LIKE ? OR LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ?",
				pattern, pattern, pattern)
	}
}
