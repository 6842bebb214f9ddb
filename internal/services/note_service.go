package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"notes_service/internal/access"
	"notes_service/internal/events"
	"notes_service/internal/kafka"
	"notes_service/internal/models"
	"notes_service/internal/repositories"

	"gorm.io/gorm"
)

// NotePatch carries the updatable fields; nil means "leave unchanged".
type NotePatch struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

// UserAccessInfo tells a caller which grant they are viewing a note
// under, as opposed to seeing it because it is public or their own.
type UserAccessInfo struct {
	AccessType models.AccessType `json:"accessType"`
}

// NoteView is a note plus the requester's own grant, if any.
type NoteView struct {
	models.Note
	UserAccess *UserAccessInfo `json:"userAccess,omitempty"`
}

// NoteService orchestrates the note lifecycle. Every operation takes the
// requester's id explicitly and checks the access policy before touching
// anything; the id is trusted as-is, credential checks happen upstream.
type NoteService struct {
	notes    repositories.NoteRepository
	users    repositories.UserRepository
	policy   *access.Evaluator
	producer *kafka.Producer
}

// NewNoteService wires the service. producer may be nil; events are
// best-effort and never fail a request.
func NewNoteService(db *gorm.DB, producer *kafka.Producer) *NoteService {
	return &NoteService{
		notes:    repositories.NewNoteRepository(db),
		users:    repositories.NewUserRepository(db),
		policy:   access.NewEvaluator(db),
		producer: producer,
	}
}

// Create inserts a new note owned by ownerID. The owner must be a live
// user; audit fields start out pointing at the owner.
func (s *NoteService) Create(ownerID uint, title, content string, isPublic bool) (*models.Note, error) {
	if err := s.users.EnsureExists(ownerID); err != nil {
		return nil, mapStoreErr("verify owner", err)
	}

	note := &models.Note{
		Title:     title,
		Content:   content,
		IsPublic:  isPublic,
		OwnerID:   ownerID,
		CreatedBy: ownerID,
		UpdatedBy: ownerID,
	}
	if err := s.notes.Create(note); err != nil {
		return nil, mapStoreErr("create note", err)
	}

	s.publish(events.NewNoteEvent(events.NoteCreated, note.ID, note.OwnerID, ownerID))
	return note, nil
}

// Update applies the patch on behalf of requesterID. Requires edit
// access; ownerId and createdBy are never touched. The permission
// predicate is repeated inside the update's WHERE clause, so a grant
// revoked between the check and the write makes the write a no-op
// instead of sneaking through.
func (s *NoteService) Update(noteID, requesterID uint, patch NotePatch) (*models.Note, error) {
	if err := s.policy.AuthorizeEdit(noteID, requesterID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"updated_by": requesterID}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.IsPublic != nil {
		fields["is_public"] = *patch.IsPublic
	}

	affected, err := s.notes.UpdateAuthorized(noteID, requesterID, fields)
	if err != nil {
		return nil, mapStoreErr("update note", err)
	}
	if affected == 0 {
		return nil, ErrPermissionDenied
	}

	note, err := s.notes.FindByID(noteID)
	if err != nil {
		return nil, mapStoreErr("reload note", err)
	}

	s.publish(events.NewNoteEvent(events.NoteUpdated, note.ID, note.OwnerID, requesterID))
	return note, nil
}

// Delete soft-deletes the note and cascades over its active grants.
// Owner only. Returns the note in its deleted state.
func (s *NoteService) Delete(noteID, requesterID uint) (*models.Note, error) {
	if err := s.policy.AuthorizeOwn(noteID, requesterID); err != nil {
		return nil, err
	}

	affected, err := s.notes.SoftDeleteOwned(noteID, requesterID)
	if err != nil {
		return nil, mapStoreErr("delete note", err)
	}
	if affected == 0 {
		return nil, ErrPermissionDenied
	}

	note, err := s.notes.FindByIDAny(noteID)
	if err != nil {
		return nil, mapStoreErr("reload note", err)
	}

	s.publish(events.NewNoteEvent(events.NoteDeleted, note.ID, note.OwnerID, requesterID))
	return note, nil
}

// Restore clears a soft-deleted note's deletion stamp. AuthorizeOwn only
// sees live notes, so the ownership check runs against the unscoped row:
// the former owner may restore, nobody else learns the note ever existed.
func (s *NoteService) Restore(noteID, requesterID uint) (*models.Note, error) {
	note, err := s.notes.FindByIDAny(noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPermissionDenied
	}
	if err != nil {
		return nil, mapStoreErr("load note", err)
	}
	if note.OwnerID != requesterID {
		return nil, ErrPermissionDenied
	}

	if err := s.notes.Restore(noteID); err != nil {
		return nil, mapStoreErr("restore note", err)
	}

	note, err = s.notes.FindByID(noteID)
	if err != nil {
		return nil, mapStoreErr("reload note", err)
	}

	s.publish(events.NewNoteEvent(events.NoteRestored, note.ID, note.OwnerID, requesterID))
	return note, nil
}

// ListVisible returns the notes the requester may see under the given
// criteria, each annotated with the requester's own grant when one
// exists. The list projection omits content.
func (s *NoteService) ListVisible(requesterID uint, q repositories.ListNotesQuery) ([]NoteView, error) {
	notes, err := s.notes.List(requesterID, q)
	if err != nil {
		return nil, mapStoreErr("list notes", err)
	}

	ids := make([]uint, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	grants, err := s.notes.ActiveGrantsFor(requesterID, ids)
	if err != nil {
		return nil, mapStoreErr("load grants", err)
	}
	grantByNote := make(map[uint]models.AccessType, len(grants))
	for _, g := range grants {
		grantByNote[g.NoteID] = g.AccessType
	}

	views := make([]NoteView, len(notes))
	for i, n := range notes {
		views[i] = NoteView{Note: n}
		if t, ok := grantByNote[n.ID]; ok {
			views[i].UserAccess = &UserAccessInfo{AccessType: t}
		}
	}
	return views, nil
}

// GetDetails returns the full note, content included, after a view
// check. A note that disappears between the check and the fetch is an
// internal-consistency fault and reported as ErrNotFound, distinct from
// the authorization failure.
func (s *NoteService) GetDetails(noteID, requesterID uint) (*NoteView, error) {
	if err := s.policy.AuthorizeView(noteID, requesterID); err != nil {
		return nil, err
	}

	note, err := s.notes.FindDetail(noteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, mapStoreErr("load note", err)
	}

	view := &NoteView{Note: *note}
	grant, err := s.notes.ActiveGrant(noteID, requesterID)
	if err == nil {
		view.UserAccess = &UserAccessInfo{AccessType: grant.AccessType}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mapStoreErr("load grant", err)
	}
	return view, nil
}

// Share grants VIEW or EDIT on a note to another user, replacing any
// existing grant for that pair. Owner only. The grantee may be given as
// an email or a numeric id.
func (s *NoteService) Share(noteID, requesterID uint, grantee string, accessType models.AccessType) (*models.UserNoteAccess, error) {
	if err := s.policy.AuthorizeOwn(noteID, requesterID); err != nil {
		return nil, err
	}

	user, err := s.resolveGrantee(grantee)
	if err != nil {
		return nil, err
	}
	if user.ID == requesterID {
		// the owner already outranks any grant
		return nil, ErrConflict
	}

	grant, err := s.notes.UpsertGrant(noteID, user.ID, accessType)
	if err != nil {
		return nil, mapStoreErr("share note", err)
	}

	s.publish(events.NewNoteSharingEvent(events.NoteShared, noteID, requesterID, requesterID, user.ID, string(accessType)))
	return grant, nil
}

// RevokeShare soft-deletes the grantee's grant. Owner only.
func (s *NoteService) RevokeShare(noteID, requesterID, granteeID uint) error {
	if err := s.policy.AuthorizeOwn(noteID, requesterID); err != nil {
		return err
	}

	affected, err := s.notes.RevokeGrant(noteID, granteeID)
	if err != nil {
		return mapStoreErr("revoke share", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.publish(events.NewNoteSharingEvent(events.NoteUnshared, noteID, requesterID, requesterID, granteeID, ""))
	return nil
}

func (s *NoteService) resolveGrantee(grantee string) (*models.User, error) {
	if id, err := strconv.ParseUint(grantee, 10, 64); err == nil {
		user, err := s.users.FindByID(uint(id))
		if err != nil {
			return nil, mapStoreErr("resolve grantee", err)
		}
		return user, nil
	}
	user, err := s.users.FindByEmail(grantee)
	if err != nil {
		return nil, mapStoreErr("resolve grantee", err)
	}
	return user, nil
}

func (s *NoteService) publish(event *events.NoteEvent) {
	if s.producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.producer.PublishNoteEvent(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.EventType, err)
	}
}
