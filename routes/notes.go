package routes

import (
	"errors"
	"net/http"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/logger"
	"cornelius-notes/cornelius/markup"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
)

type linkRequest struct {
	LinkedNoteIds []string `json:"linkedNoteIds"`
}

func RegisterNoteRoutes(group *gin.RouterGroup, db *database.Database, noteService services.NoteServiceInterface, linkService services.LinkServiceInterface) {
	group.GET("/notes", func(c *gin.Context) { ListNotes(c, db, noteService) })
	group.POST("/notes", func(c *gin.Context) { CreateNote(c, db, noteService) })

	group.GET("/notes/:id", func(c *gin.Context) { GetNoteById(c, db, noteService) })
	group.PUT("/notes/:id", func(c *gin.Context) { UpdateNote(c, db, noteService) })
	group.DELETE("/notes/:id", func(c *gin.Context) { DeleteNote(c, db, noteService) })

	group.POST("/notes/:id/links", func(c *gin.Context) { ReplaceNoteLinks(c, db, linkService) })
}

func ListNotes(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if categoryID := c.Query("category_id"); categoryID != "" {
		params["category_id"] = categoryID
	}
	if tag := c.Query("tag"); tag != "" {
		params["tag"] = tag
	}

	notes, err := noteService.ListNotes(db, userID, params)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to list notes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notes"})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func CreateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteService.CreateNote(db, userID, noteData)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		logger.Log.Error().Err(err).Msg("failed to create note")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, note)
}

func GetNoteById(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Note")
	if !ok {
		return
	}

	detail, err := noteService.GetNoteDetail(db, userID, id)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		logger.Log.Error().Err(err).Msg("failed to fetch note")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch note"})
		return
	}

	// The editor can ask for its HTML representation directly.
	if c.Query("format") == "html" {
		detail.Content = markup.MarkdownToHTML(detail.Content)
		detail.CueColumn = markup.MarkdownToHTML(detail.CueColumn)
		detail.Summary = markup.MarkdownToHTML(detail.Summary)
	}

	c.JSON(http.StatusOK, detail)
}

func UpdateNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Note")
	if !ok {
		return
	}

	var noteData map[string]interface{}
	if err := c.ShouldBindJSON(&noteData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := noteService.UpdateNote(db, userID, id, noteData)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note payload"})
		default:
			logger.Log.Error().Err(err).Msg("failed to update note")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
		}
		return
	}

	c.JSON(http.StatusOK, note)
}

func DeleteNote(c *gin.Context, db *database.Database, noteService services.NoteServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Note")
	if !ok {
		return
	}

	if err := noteService.DeleteNote(db, userID, id); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			return
		}
		logger.Log.Error().Err(err).Msg("failed to delete note")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func ReplaceNoteLinks(c *gin.Context, db *database.Database, linkService services.LinkServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Note")
	if !ok {
		return
	}

	var request linkRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	linkedNotes, err := linkService.ReplaceLinks(db, userID, id, request.LinkedNoteIds)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
		case errors.Is(err, services.ErrInvalidLinkTarget):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note IDs"})
		default:
			logger.Log.Error().Err(err).Msg("failed to replace note links")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link notes"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"linkedNotes": linkedNotes})
}
