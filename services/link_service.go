package services

import (
	"errors"

	"cornelius-notes/cornelius/broker"
	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LinkServiceInterface interface {
	ReplaceLinks(db *database.Database, userID, noteID uuid.UUID, targetIDs []string) ([]models.LinkedNote, error)
	GetLinkedNotes(db *database.Database, userID, noteID uuid.UUID) ([]models.LinkedNote, error)
}

type LinkService struct{}

// ReplaceLinks swaps the full outgoing edge set of a note for the given
// targets in one transaction. Any invalid target rejects the whole
// operation with no partial mutation. Self-links are rejected and
// duplicate targets collapse to one edge.
func (s *LinkService) ReplaceLinks(db *database.Database, userID, noteID uuid.UUID, targetIDs []string) ([]models.LinkedNote, error) {
	targets := make([]uuid.UUID, 0, len(targetIDs))
	seen := make(map[uuid.UUID]struct{}, len(targetIDs))
	for _, raw := range targetIDs {
		target, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrInvalidLinkTarget
		}
		if target == noteID {
			return nil, ErrInvalidLinkTarget
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var note models.Note
	if err := tx.Where("id = ? AND user_id = ?", noteID, userID).First(&note).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}

	if len(targets) > 0 {
		var owned int64
		if err := tx.Model(&models.Note{}).Where("id IN ? AND user_id = ?", targets, userID).Count(&owned).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if owned != int64(len(targets)) {
			tx.Rollback()
			return nil, ErrInvalidLinkTarget
		}
	}

	if err := tx.Where("source_id = ?", noteID).Delete(&models.NoteLink{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(targets) > 0 {
		links := make([]models.NoteLink, 0, len(targets))
		for _, target := range targets {
			links = append(links, models.NoteLink{SourceID: noteID, TargetID: target})
		}
		if err := tx.Create(&links).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	broker.Publish(broker.LinkEventsTopic, broker.NewEvent(broker.LinksReplaced, "note", userID, map[string]interface{}{
		"note_id":      noteID.String(),
		"target_count": len(targets),
	}))

	return linkedNotesFor(db.DB, noteID)
}

func (s *LinkService) GetLinkedNotes(db *database.Database, userID, noteID uuid.UUID) ([]models.LinkedNote, error) {
	var count int64
	if err := db.DB.Model(&models.Note{}).Where("id = ? AND user_id = ?", noteID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoteNotFound
	}
	return linkedNotesFor(db.DB, noteID)
}

// linkedNotesFor builds the directional link view of a note: notes it
// points at, then notes pointing back at it.
func linkedNotesFor(tx *gorm.DB, noteID uuid.UUID) ([]models.LinkedNote, error) {
	linked := []models.LinkedNote{}

	var outgoing []models.Note
	if err := tx.Model(&models.Note{}).
		Joins("JOIN note_links ON note_links.target_id = notes.id").
		Where("note_links.source_id = ?", noteID).
		Find(&outgoing).Error; err != nil {
		return nil, err
	}
	for _, note := range outgoing {
		linked = append(linked, models.LinkedNote{ID: note.ID, Title: note.Title, LinkType: models.LinkOutgoing})
	}

	var incoming []models.Note
	if err := tx.Model(&models.Note{}).
		Joins("JOIN note_links ON note_links.source_id = notes.id").
		Where("note_links.target_id = ?", noteID).
		Find(&incoming).Error; err != nil {
		return nil, err
	}
	for _, note := range incoming {
		linked = append(linked, models.LinkedNote{ID: note.ID, Title: note.Title, LinkType: models.LinkIncoming})
	}

	return linked, nil
}

// NewLinkService creates a new instance of LinkService
func NewLinkService() LinkServiceInterface {
	return &LinkService{}
}

var LinkServiceInstance LinkServiceInterface
