package services

import (
	"encoding/json"
	"errors"
	"strings"

	"cornelius-notes/cornelius/broker"
	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NoteServiceInterface interface {
	ListNotes(db *database.Database, userID uuid.UUID, params map[string]interface{}) ([]models.Note, error)
	CreateNote(db *database.Database, userID uuid.UUID, noteData map[string]interface{}) (models.Note, error)
	GetNoteDetail(db *database.Database, userID, id uuid.UUID) (models.NoteDetail, error)
	UpdateNote(db *database.Database, userID, id uuid.UUID, updatedData map[string]interface{}) (models.Note, error)
	DeleteNote(db *database.Database, userID, id uuid.UUID) error
}

type NoteService struct{}

func (s *NoteService) ListNotes(db *database.Database, userID uuid.UUID, params map[string]interface{}) ([]models.Note, error) {
	query := db.DB.Where("user_id = ?", userID)

	if categoryID, ok := params["category_id"].(string); ok && categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var notes []models.Note
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}

	// Tag filtering happens after deserialization; the column holds a
	// JSON blob, not a relational set.
	if tag, ok := params["tag"].(string); ok && tag != "" {
		filtered := notes[:0]
		for _, note := range notes {
			for _, t := range note.Tags {
				if strings.EqualFold(t, tag) {
					filtered = append(filtered, note)
					break
				}
			}
		}
		notes = filtered
	}

	return notes, nil
}

func (s *NoteService) CreateNote(db *database.Database, userID uuid.UUID, noteData map[string]interface{}) (models.Note, error) {
	title, ok := noteData["title"].(string)
	title = strings.TrimSpace(title)
	if !ok || title == "" || len(title) > 255 {
		return models.Note{}, ErrInvalidInput
	}

	note := models.Note{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
		Tags:   []string{},
	}

	if content, ok := noteData["content"].(string); ok {
		note.Content = content
	}
	if cueColumn, ok := noteData["cue_column"].(string); ok {
		note.CueColumn = cueColumn
	}
	if summary, ok := noteData["summary"].(string); ok {
		note.Summary = summary
	}

	if raw, exists := noteData["tags"]; exists && raw != nil {
		tags, err := parseTags(raw)
		if err != nil {
			return models.Note{}, err
		}
		note.Tags = tags
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	if raw, exists := noteData["category_id"]; exists && raw != nil {
		categoryID, err := parseCategoryID(tx, userID, raw)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		note.CategoryID = categoryID
	}

	if err := tx.Create(&note).Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	broker.Publish(broker.NoteEventsTopic, broker.NewEvent(broker.NoteCreated, "note", userID, map[string]interface{}{
		"note_id": note.ID.String(),
		"title":   note.Title,
	}))

	return note, nil
}

func (s *NoteService) GetNoteDetail(db *database.Database, userID, id uuid.UUID) (models.NoteDetail, error) {
	var note models.Note
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteDetail{}, ErrNoteNotFound
		}
		return models.NoteDetail{}, err
	}

	detail := models.NoteDetail{Note: note, LinkedNotes: []models.LinkedNote{}}

	if note.CategoryID != nil {
		var category models.Category
		if err := db.DB.First(&category, "id = ?", *note.CategoryID).Error; err == nil {
			detail.CategoryName = category.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NoteDetail{}, err
		}
	}

	linked, err := linkedNotesFor(db.DB, note.ID)
	if err != nil {
		return models.NoteDetail{}, err
	}
	detail.LinkedNotes = linked

	return detail, nil
}

// UpdateNote applies a partial update: omitted keys keep their current
// value, explicit nulls clear content, cue_column, summary and
// category_id. Tags, when present, must be an array of strings.
func (s *NoteService) UpdateNote(db *database.Database, userID, id uuid.UUID, updatedData map[string]interface{}) (models.Note, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Note{}, tx.Error
	}

	var note models.Note
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Note{}, ErrNoteNotFound
		}
		return models.Note{}, err
	}

	updates := make(map[string]interface{})

	if raw, exists := updatedData["title"]; exists {
		title, ok := raw.(string)
		title = strings.TrimSpace(title)
		if !ok || title == "" || len(title) > 255 {
			tx.Rollback()
			return models.Note{}, ErrInvalidInput
		}
		updates["title"] = title
	}

	for _, field := range []string{"content", "cue_column", "summary"} {
		raw, exists := updatedData[field]
		if !exists {
			continue
		}
		if raw == nil {
			updates[field] = ""
			continue
		}
		value, ok := raw.(string)
		if !ok {
			tx.Rollback()
			return models.Note{}, ErrInvalidInput
		}
		updates[field] = value
	}

	if raw, exists := updatedData["category_id"]; exists {
		if raw == nil {
			updates["category_id"] = nil
		} else {
			categoryID, err := parseCategoryID(tx, userID, raw)
			if err != nil {
				tx.Rollback()
				return models.Note{}, err
			}
			updates["category_id"] = categoryID
		}
	}

	if raw, exists := updatedData["tags"]; exists {
		tags := []string{}
		if raw != nil {
			parsed, err := parseTags(raw)
			if err != nil {
				tx.Rollback()
				return models.Note{}, err
			}
			tags = parsed
		}
		// Map-based Updates bypasses the field serializer, so store the
		// JSON text the column holds.
		encoded, err := json.Marshal(tags)
		if err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
		updates["tags"] = string(encoded)
	}

	if len(updates) > 0 {
		if err := tx.Model(&note).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.Note{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Note{}, err
	}

	broker.Publish(broker.NoteEventsTopic, broker.NewEvent(broker.NoteUpdated, "note", userID, map[string]interface{}{
		"note_id": note.ID.String(),
		"title":   note.Title,
	}))

	return note, nil
}

// DeleteNote removes the note and every link edge touching it, in both
// directions, atomically. Linked notes themselves are untouched.
func (s *NoteService) DeleteNote(db *database.Database, userID, id uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var note models.Note
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&note).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return err
	}

	if err := tx.Where("source_id = ? OR target_id = ?", note.ID, note.ID).Delete(&models.NoteLink{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&note).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	broker.Publish(broker.NoteEventsTopic, broker.NewEvent(broker.NoteDeleted, "note", userID, map[string]interface{}{
		"note_id": note.ID.String(),
	}))

	return nil
}

func parseTags(raw interface{}) ([]string, error) {
	items, ok := raw.([]interface{})
	if !ok {
		return nil, ErrInvalidInput
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		tag, ok := item.(string)
		if !ok {
			return nil, ErrInvalidInput
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// parseCategoryID checks that the given id is a uuid and references a
// category owned by the user. Ownership is query-level; there is no
// cross-table constraint for it.
func parseCategoryID(tx *gorm.DB, userID uuid.UUID, raw interface{}) (*uuid.UUID, error) {
	str, ok := raw.(string)
	if !ok {
		return nil, ErrInvalidInput
	}
	categoryID, err := uuid.Parse(str)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ? AND user_id = ?", categoryID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrInvalidInput
	}

	return &categoryID, nil
}

// NewNoteService creates a new instance of NoteService
func NewNoteService() NoteServiceInterface {
	return &NoteService{}
}

var NoteServiceInstance NoteServiceInterface
