package services

import (
	"errors"
	"fmt"

	"notes_service/internal/access"

	"gorm.io/gorm"
)

// The stable error kinds callers see across the service boundary. Store
// errors are mapped into these exactly once, here; constraint names and
// driver details never cross the boundary.
var (
	// ErrPermissionDenied covers both "you lack access" and "the note does
	// not exist or is deleted" — callers cannot probe for note existence.
	ErrPermissionDenied = access.ErrPermissionDenied

	// ErrNotFound is used where existence leakage is not a concern: an
	// unknown owner or grantee, or a note vanishing after authorization
	// already succeeded.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a uniqueness violation surfaced from the store:
	// duplicate active email or duplicate active grant.
	ErrConflict = errors.New("conflict")
)

// mapStoreErr translates a store failure into the taxonomy, wrapping
// anything unexpected so the cause stays attached for the logs.
func mapStoreErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
