package services

import (
	"testing"

	"notes_service/internal/models"
	"notes_service/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)

	token, logged, err := svc.Login("dana@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, logged.ID)

	// wrong password and unknown email look the same to the caller
	_, _, err = svc.Login("dana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, _, err = svc.Login("nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestRegisterDuplicateActiveEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	_, err := svc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register("dana@example.com", "Imposter", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSoftDeleteFreesEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	first, err := svc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(first.ID))

	// the email is only unique among live accounts
	second, err := svc.Register("dana@example.com", "New Dana", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// restoring the old account would collide with the new one
	_, err = svc.RestoreByCredentials("dana@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRestoreByCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, svc.SoftDelete(user.ID))

	_, err = svc.GetProfile(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// wrong password does not restore
	_, err = svc.RestoreByCredentials("dana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	restored, err := svc.RestoreByCredentials("dana@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, restored.ID)
	assert.False(t, restored.DeletedAt.Valid)

	_, err = svc.GetProfile(user.ID)
	assert.NoError(t, err)
}

func TestSoftDeletingUserKeepsOwnedNotes(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db)
	noteSvc := NewNoteService(db, nil)

	user, err := userSvc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)
	note, err := noteSvc.Create(user.ID, "Kept", "survives the owner", false)
	require.NoError(t, err)

	require.NoError(t, userSvc.SoftDelete(user.ID))

	// the note is not cascaded; the ownership chain stays intact
	var kept models.Note
	require.NoError(t, db.First(&kept, "id = ?", note.ID).Error)
	assert.Equal(t, user.ID, kept.OwnerID)
	assert.False(t, kept.DeletedAt.Valid)
}

func TestHardDeleteIsTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("dana@example.com", "Dana", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, svc.HardDelete(user.ID))

	repo := repositories.NewUserRepository(db)
	_, err = repo.FindByIDAny(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.HardDelete(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
