package router

import (
	"notes_service/internal/handlers"

	"github.com/gin-gonic/gin"
)

// NoteRoutes defines routes for note management
func NoteRoutes(rg *gin.RouterGroup, noteHandler *handlers.NoteHandler) {
	notes := rg.Group("/notes")
	{
		notes.GET("", noteHandler.ListNotes)
		notes.POST("", noteHandler.CreateNote)
		notes.GET("/:noteId", noteHandler.GetNote)
		notes.PUT("/:noteId", noteHandler.UpdateNote)
		notes.DELETE("/:noteId", noteHandler.DeleteNote)
		notes.POST("/:noteId/restore", noteHandler.RestoreNote)

		// Sharing
		notes.POST("/:noteId/share", noteHandler.ShareNote)
		notes.DELETE("/:noteId/share/:userId", noteHandler.RevokeNoteSharing)
	}
}
