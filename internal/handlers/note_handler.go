package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"notes_service/internal/dto"
	"notes_service/internal/repositories"
	"notes_service/internal/services"
	"notes_service/pkg/responses"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	service *services.NoteService
}

func NewNoteHandler(service *services.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		log.Println("Missing user_id in request context")
		c.JSON(http.StatusUnauthorized, responses.NewErrorResponse("Authentication required", ""))
		return 0, false
	}
	return v.(uint), true
}

func noteIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("noteId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		log.Printf("Invalid note ID format: %s", idStr)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid note ID format", ""))
		return 0, false
	}
	return uint(id), true
}

// writeServiceError translates the service error taxonomy into HTTP
// statuses. Permission failures and unknown notes both land on 403; the
// internal detail goes to the log, never to the client.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, responses.NewErrorResponse("You don't have permission to perform this action", ""))
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, responses.NewErrorResponse("Resource not found", ""))
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, responses.NewErrorResponse("Conflict with existing data", ""))
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, responses.NewErrorResponse("Something went wrong", ""))
	}
}

// CreateNote creates a new note owned by the requester
func (h *NoteHandler) CreateNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	note, err := h.service.Create(requesterID, req.Title, req.Content, req.IsPublic)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Note created successfully", note))
}

// ListNotes lists the notes visible to the requester
func (h *NoteHandler) ListNotes(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ListNotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Printf("Invalid query parameters: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid query parameters", err.Error()))
		return
	}

	query := repositories.ListNotesQuery{
		Skip:           req.Skip,
		Take:           req.Take,
		Search:         req.Search,
		OrderBy:        req.OrderBy,
		SortOrder:      req.SortOrder,
		AccessFilter:   repositories.AccessFilter(req.AccessFilter),
		IncludeDeleted: req.IncludeDeleted,
	}

	notes, err := h.service.ListVisible(requesterID, query)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Notes retrieved successfully", notes))
}

// GetNote retrieves a note with its content
func (h *NoteHandler) GetNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := h.service.GetDetails(noteID, requesterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Note retrieved successfully", note))
}

// UpdateNote updates a note's title, content or visibility
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	note, err := h.service.Update(noteID, requesterID, services.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		IsPublic: req.IsPublic,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Note updated successfully", note))
}

// DeleteNote soft-deletes a note
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := h.service.Delete(noteID, requesterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Note deleted successfully", note))
}

// RestoreNote clears a note's deletion stamp
func (h *NoteHandler) RestoreNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	note, err := h.service.Restore(noteID, requesterID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Note restored successfully", note))
}

// ShareNote grants another user access to a note
func (h *NoteHandler) ShareNote(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	var req dto.ShareNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid request format", err.Error()))
		return
	}

	if !req.AccessType.Valid() {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid access type. Must be 'VIEW' or 'EDIT'", ""))
		return
	}

	grant, err := h.service.Share(noteID, requesterID, req.Grantee, req.AccessType)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, responses.NewSuccessResponse("Note shared successfully", grant))
}

// RevokeNoteSharing removes a user's grant on a note
func (h *NoteHandler) RevokeNoteSharing(c *gin.Context) {
	requesterID, ok := currentUserID(c)
	if !ok {
		return
	}
	noteID, ok := noteIDParam(c)
	if !ok {
		return
	}

	userIDStr := c.Param("userId")
	granteeID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		log.Printf("Invalid user ID format: %s", userIDStr)
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("Invalid user ID format", ""))
		return
	}

	if err := h.service.RevokeShare(noteID, requesterID, uint(granteeID)); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewSuccessResponse("Note sharing revoked successfully", nil))
}
