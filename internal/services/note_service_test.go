package services

import (
	"strconv"
	"testing"

	"notes_service/internal/database"
	"notes_service/internal/models"
	"notes_service/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, name string) models.User {
	t.Helper()
	user := models.User{Email: email, Name: name, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func activeGrantCount(t *testing.T, db *gorm.DB, noteID, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.UserNoteAccess{}).
		Where("note_id = ? AND user_id = ?", noteID, userID).
		Count(&count).Error)
	return count
}

func strPtr(s string) *string { return &s }

// User A shares a private note with user B, first as VIEW, then upgraded
// to EDIT.
func TestShareUpgradeScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Draft", "work in progress", false)
	require.NoError(t, err)

	// B cannot see the private note
	_, err = svc.GetDetails(note.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// A shares as VIEW; B can now read the content
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessView)
	require.NoError(t, err)

	view, err := svc.GetDetails(note.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "work in progress", view.Content)
	require.NotNil(t, view.UserAccess)
	assert.Equal(t, models.AccessView, view.UserAccess.AccessType)

	// VIEW is not EDIT
	_, err = svc.Update(note.ID, bob.ID, NotePatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// A upgrades the grant; the update goes through and stamps the editor
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessEdit)
	require.NoError(t, err)

	updated, err := svc.Update(note.ID, bob.ID, NotePatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", updated.Title)
	assert.Equal(t, "work in progress", updated.Content)
	assert.Equal(t, bob.ID, updated.UpdatedBy)
	assert.Equal(t, alice.ID, updated.OwnerID)

	// still exactly one active grant after the upgrade
	assert.EqualValues(t, 1, activeGrantCount(t, db, note.ID, bob.ID))
}

func TestPublicNoteIsViewOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	carol := seedUser(t, db, "carol@example.com", "Carol")

	note, err := svc.Create(alice.ID, "Announcement", "hello all", true)
	require.NoError(t, err)

	view, err := svc.GetDetails(note.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello all", view.Content)
	assert.Nil(t, view.UserAccess)

	_, err = svc.Update(note.ID, carol.ID, NotePatch{Title: strPtr("defaced")})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Delete(note.ID, carol.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteRestoreRoundtrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Keeper", "precious", false)
	require.NoError(t, err)

	deleted, err := svc.Delete(note.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted.DeletedAt.Valid)

	// deleted note is invisible even to the owner through normal reads
	_, err = svc.GetDetails(note.ID, alice.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// only the former owner may restore
	_, err = svc.Restore(note.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	restored, err := svc.Restore(note.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, restored.DeletedAt.Valid)
	assert.Equal(t, "precious", restored.Content)
	assert.Equal(t, "Keeper", restored.Title)

	view, err := svc.GetDetails(note.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "precious", view.Content)
}

func TestRestoreUnknownNoteIsPermissionDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")

	_, err := svc.Restore(12345, alice.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestShareIsIdempotentPerPair(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Shared", "body", false)
	require.NoError(t, err)

	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessView)
	require.NoError(t, err)
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessView)
	require.NoError(t, err)

	assert.EqualValues(t, 1, activeGrantCount(t, db, note.ID, bob.ID))
}

func TestShareEdgeCases(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Shared", "body", false)
	require.NoError(t, err)

	// only the owner can share
	_, err = svc.Share(note.ID, bob.ID, "bob@example.com", models.AccessView)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// unknown grantee
	_, err = svc.Share(note.ID, alice.ID, "nobody@example.com", models.AccessView)
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner already outranks any grant
	_, err = svc.Share(note.ID, alice.ID, "alice@example.com", models.AccessEdit)
	assert.ErrorIs(t, err, ErrConflict)

	// grantee may be given as a numeric id
	grant, err := svc.Share(note.ID, alice.ID, strconv.FormatUint(uint64(bob.ID), 10), models.AccessEdit)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, grant.UserID)
	assert.Equal(t, models.AccessEdit, grant.AccessType)
}

func TestRevokeShare(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Shared", "body", false)
	require.NoError(t, err)
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessView)
	require.NoError(t, err)

	// only the owner can revoke
	err = svc.RevokeShare(note.ID, bob.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.RevokeShare(note.ID, alice.ID, bob.ID))

	_, err = svc.GetDetails(note.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// revoking an absent grant reports not found
	err = svc.RevokeShare(note.ID, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// re-sharing after a revoke creates a fresh active grant
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessEdit)
	require.NoError(t, err)
	assert.EqualValues(t, 1, activeGrantCount(t, db, note.ID, bob.ID))
}

func TestDeleteCascadesOverGrants(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	note, err := svc.Create(alice.ID, "Shared", "body", false)
	require.NoError(t, err)
	_, err = svc.Share(note.ID, alice.ID, "bob@example.com", models.AccessEdit)
	require.NoError(t, err)

	_, err = svc.Delete(note.ID, alice.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, activeGrantCount(t, db, note.ID, bob.ID))

	// the revoked grant stays on record
	var total int64
	require.NoError(t, db.Unscoped().Model(&models.UserNoteAccess{}).
		Where("note_id = ?", note.ID).Count(&total).Error)
	assert.EqualValues(t, 1, total)

	// restoring the note does not resurrect the grant
	_, err = svc.Restore(note.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.GetDetails(note.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateRequiresExistingOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)

	_, err := svc.Create(42, "Orphan", "no owner", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAppliesPatchSubset(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")

	note, err := svc.Create(alice.ID, "Title", "body", false)
	require.NoError(t, err)

	public := true
	updated, err := svc.Update(note.ID, alice.ID, NotePatch{IsPublic: &public})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, "Title", updated.Title)
	assert.Equal(t, "body", updated.Content)
	assert.Equal(t, alice.ID, updated.CreatedBy)
}

func TestListVisibleAttachesUserAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	own, err := svc.Create(bob.ID, "bob-own", "x", false)
	require.NoError(t, err)
	shared, err := svc.Create(alice.ID, "alice-shared", "x", false)
	require.NoError(t, err)
	public, err := svc.Create(alice.ID, "alice-public", "x", true)
	require.NoError(t, err)
	_, err = svc.Share(shared.ID, alice.ID, "bob@example.com", models.AccessEdit)
	require.NoError(t, err)

	views, err := svc.ListVisible(bob.ID, repositories.ListNotesQuery{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	byID := make(map[uint]NoteView, len(views))
	for _, v := range views {
		byID[v.ID] = v
		// list projection leaves content out
		assert.Empty(t, v.Content)
	}

	assert.Nil(t, byID[own.ID].UserAccess)
	require.NotNil(t, byID[shared.ID].UserAccess)
	assert.Equal(t, models.AccessEdit, byID[shared.ID].UserAccess.AccessType)
	assert.Nil(t, byID[public.ID].UserAccess)
}

func TestListVisibleOwnedFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewNoteService(db, nil)
	alice := seedUser(t, db, "alice@example.com", "Alice")
	bob := seedUser(t, db, "bob@example.com", "Bob")

	_, err := svc.Create(alice.ID, "alice-own", "x", false)
	require.NoError(t, err)
	shared, err := svc.Create(bob.ID, "bob-shared", "x", false)
	require.NoError(t, err)
	_, err = svc.Create(bob.ID, "bob-public", "x", true)
	require.NoError(t, err)
	_, err = svc.Share(shared.ID, bob.ID, "alice@example.com", models.AccessView)
	require.NoError(t, err)

	views, err := svc.ListVisible(alice.ID, repositories.ListNotesQuery{
		AccessFilter: repositories.FilterOwned,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice-own", views[0].Title)
	assert.Equal(t, alice.ID, views[0].OwnerID)
}
