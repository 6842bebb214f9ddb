package repositories

import (
	"notes_service/internal/models"

	"gorm.io/gorm"
)

// NoteRepository defines the persistence operations for notes and their
// access grants. "Delete" always means stamping deleted_at; the only
// hard-delete path in the system belongs to users.
type NoteRepository interface {
	Create(note *models.Note) error
	FindByID(id uint) (*models.Note, error)
	FindByIDAny(id uint) (*models.Note, error)
	FindDetail(id uint) (*models.Note, error)
	List(requesterID uint, q ListNotesQuery) ([]models.Note, error)
	UpdateAuthorized(id, requesterID uint, fields map[string]interface{}) (int64, error)
	SoftDeleteOwned(id, ownerID uint) (int64, error)
	Restore(id uint) error
	ActiveGrant(noteID, userID uint) (*models.UserNoteAccess, error)
	ActiveGrantsFor(userID uint, noteIDs []uint) ([]models.UserNoteAccess, error)
	UpsertGrant(noteID, userID uint, accessType models.AccessType) (*models.UserNoteAccess, error)
	RevokeGrant(noteID, userID uint) (int64, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *models.Note) error {
	return r.db.Create(note).Error
}

func (r *noteRepository) FindByID(id uint) (*models.Note, error) {
	var note models.Note
	if err := r.db.First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByIDAny returns the note regardless of its deletion state.
func (r *noteRepository) FindByIDAny(id uint) (*models.Note, error) {
	var note models.Note
	if err := r.db.Unscoped().First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindDetail returns the full note including content, with the owner row
// attached even when the owner account has since been soft-deleted.
func (r *noteRepository) FindDetail(id uint) (*models.Note, error) {
	var note models.Note
	err := r.db.
		Preload("Owner", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&note, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// listColumns is the summary projection: content stays out of list
// responses to keep payloads small.
const listColumns = "notes.id, notes.title, notes.is_public, notes.owner_id, " +
	"notes.created_by, notes.updated_by, notes.created_at, notes.updated_at, notes.deleted_at"

func (r *noteRepository) List(requesterID uint, q ListNotesQuery) ([]models.Note, error) {
	q = q.normalized()

	tx := r.db.Model(&models.Note{})
	if q.IncludeDeleted {
		tx = tx.Unscoped()
	}
	tx = tx.Scopes(accessScope(requesterID, q.AccessFilter))
	if q.Search != "" {
		tx = tx.Scopes(searchScope(q.Search))
	}

	var notes []models.Note
	err := tx.
		Select(listColumns).
		Order(orderClause(q.OrderBy, q.SortOrder)).
		Offset(q.Skip).
		Limit(q.Take).
		Preload("Owner", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Find(&notes).Error
	return notes, err
}

// UpdateAuthorized applies the patch with the edit permission folded into
// the WHERE clause, so the permission snapshot and the write are a single
// statement. Returns the number of rows touched; zero means the note
// vanished or access was revoked since the caller's check.
func (r *noteRepository) UpdateAuthorized(id, requesterID uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Note{}).
		Where("notes.id = ?", id).
		Where(`notes.owner_id = ? OR EXISTS (
			SELECT 1 FROM user_note_accesses a
			WHERE a.note_id = notes.id AND a.user_id = ? AND a.access_type = ? AND a.deleted_at IS NULL)`,
			requesterID, requesterID, models.AccessEdit).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// SoftDeleteOwned soft-deletes the note and every active grant on it in
// one transaction. Grants die with their note but stay on record.
func (r *noteRepository) SoftDeleteOwned(id, ownerID uint) (int64, error) {
	var affected int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&models.UserNoteAccess{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Note{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// Restore clears deleted_at. Grants revoked by the delete are not
// resurrected; the owner re-shares explicitly.
func (r *noteRepository) Restore(id uint) error {
	return r.db.Unscoped().Model(&models.Note{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

func (r *noteRepository) ActiveGrant(noteID, userID uint) (*models.UserNoteAccess, error) {
	var grant models.UserNoteAccess
	err := r.db.Where("note_id = ? AND user_id = ?", noteID, userID).First(&grant).Error
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *noteRepository) ActiveGrantsFor(userID uint, noteIDs []uint) ([]models.UserNoteAccess, error) {
	if len(noteIDs) == 0 {
		return nil, nil
	}
	var grants []models.UserNoteAccess
	err := r.db.Where("user_id = ? AND note_id IN ?", userID, noteIDs).Find(&grants).Error
	return grants, err
}

// UpsertGrant keeps at most one active grant per (user, note): an
// existing grant has its access type replaced, otherwise a new row is
// inserted. The partial unique index backs this up against races.
func (r *noteRepository) UpsertGrant(noteID, userID uint, accessType models.AccessType) (*models.UserNoteAccess, error) {
	var grant models.UserNoteAccess
	err := r.db.Where("note_id = ? AND user_id = ?", noteID, userID).First(&grant).Error
	if err == nil {
		if grant.AccessType != accessType {
			if err := r.db.Model(&grant).Update("access_type", accessType).Error; err != nil {
				return nil, err
			}
			grant.AccessType = accessType
		}
		return &grant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	grant = models.UserNoteAccess{
		NoteID:     noteID,
		UserID:     userID,
		AccessType: accessType,
	}
	if err := r.db.Create(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

func (r *noteRepository) RevokeGrant(noteID, userID uint) (int64, error) {
	res := r.db.Where("note_id = ? AND user_id = ?", noteID, userID).
		Delete(&models.UserNoteAccess{})
	return res.RowsAffected, res.Error
}
