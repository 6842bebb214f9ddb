package access

import (
	"errors"
	"fmt"

	"notes_service/internal/models"

	"gorm.io/gorm"
)

// ErrPermissionDenied is returned whenever a check fails, including when the
// note does not exist or has been soft-deleted. Callers must not be able to
// tell a missing note apart from one they cannot see.
var ErrPermissionDenied = errors.New("permission denied")

// Level is the effective permission a user holds over a note.
type Level int

const (
	LevelNone Level = iota
	LevelPublic
	LevelView
	LevelEdit
	LevelOwner
)

func (l Level) String() string {
	switch l {
	case LevelOwner:
		return "OWNER"
	case LevelEdit:
		return "EDIT"
	case LevelView:
		return "VIEW"
	case LevelPublic:
		return "PUBLIC"
	default:
		return "NONE"
	}
}

const activeGrantExists = `EXISTS (
	SELECT 1 FROM user_note_accesses a
	WHERE a.note_id = notes.id AND a.user_id = ? AND a.deleted_at IS NULL`

// Evaluator answers "can this user perform this operation on this note".
// Each check runs as a single predicate against the store, so owner,
// grant and public state are read in one snapshot rather than probed
// with separate sequential queries.
type Evaluator struct {
	db *gorm.DB
}

func NewEvaluator(db *gorm.DB) *Evaluator {
	return &Evaluator{db: db}
}

// AuthorizeOwn succeeds only for the owner of a live note. Used for
// destructive operations: delete and share management.
func (e *Evaluator) AuthorizeOwn(noteID, userID uint) error {
	return e.check(noteID, "notes.owner_id = ?", userID)
}

// AuthorizeEdit succeeds for the owner or a holder of an active EDIT grant.
func (e *Evaluator) AuthorizeEdit(noteID, userID uint) error {
	cond := "notes.owner_id = ? OR " + activeGrantExists + " AND a.access_type = ?)"
	return e.check(noteID, cond, userID, userID, models.AccessEdit)
}

// AuthorizeView succeeds for the owner, any active grant holder, or anyone
// when the note is public.
func (e *Evaluator) AuthorizeView(noteID, userID uint) error {
	cond := "notes.owner_id = ? OR notes.is_public = ? OR " + activeGrantExists + ")"
	return e.check(noteID, cond, userID, true, userID)
}

func (e *Evaluator) check(noteID uint, cond string, args ...interface{}) error {
	var count int64
	err := e.db.Model(&models.Note{}).
		Where("notes.id = ?", noteID).
		Where(cond, args...).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if count == 0 {
		return ErrPermissionDenied
	}
	return nil
}

// Resolve computes the highest permission level the user holds over the
// note. A missing or soft-deleted note resolves to NONE.
func (e *Evaluator) Resolve(noteID, userID uint) (Level, error) {
	var note models.Note
	err := e.db.Select("id", "owner_id", "is_public").First(&note, "id = ?", noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, fmt.Errorf("permission check failed: %w", err)
	}

	if note.OwnerID == userID {
		return LevelOwner, nil
	}

	var grant models.UserNoteAccess
	err = e.db.First(&grant, "note_id = ? AND user_id = ?", noteID, userID).Error
	if err == nil {
		if grant.AccessType == models.AccessEdit {
			return LevelEdit, nil
		}
		return LevelView, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LevelNone, fmt.Errorf("permission check failed: %w", err)
	}

	if note.IsPublic {
		return LevelPublic, nil
	}
	return LevelNone, nil
}
