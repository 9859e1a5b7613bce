package services

import (
	"strings"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
)

// SearchScopes toggles which entity kinds a search touches.
type SearchScopes struct {
	Notes      bool
	Categories bool
	Tags       bool
}

type SearchServiceInterface interface {
	Search(db *database.Database, userID uuid.UUID, query string, scopes SearchScopes) ([]models.SearchResult, error)
}

type SearchService struct{}

type noteSearchRow struct {
	ID           uuid.UUID
	Title        string
	Summary      string
	CategoryName string
}

// Search runs one query per enabled scope and concatenates the results
// in storage order. No ranking.
func (s *SearchService) Search(db *database.Database, userID uuid.UUID, query string, scopes SearchScopes) ([]models.SearchResult, error) {
	results := []models.SearchResult{}
	pattern := "%" + strings.ToLower(query) + "%"

	if scopes.Notes {
		var rows []noteSearchRow
		err := db.DB.Model(&models.Note{}).
			Select("notes.id, notes.title, notes.summary, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = notes.category_id").
			Where("notes.user_id = ?", userID).
			Where("LOWER(notes.title) LIKE ? OR LOWER(notes.content) LIKE ? OR LOWER(notes.summary) LIKE ?", pattern, pattern, pattern).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			results = append(results, models.SearchResult{
				Type:         models.SearchTypeNote,
				ID:           row.ID,
				Title:        row.Title,
				Summary:      row.Summary,
				CategoryName: row.CategoryName,
			})
		}
	}

	if scopes.Categories {
		var categories []models.Category
		err := db.DB.Where("user_id = ?", userID).
			Where("LOWER(name) LIKE ?", pattern).
			Find(&categories).Error
		if err != nil {
			return nil, err
		}
		for _, category := range categories {
			results = append(results, models.SearchResult{
				Type:  models.SearchTypeCategory,
				ID:    category.ID,
				Title: category.Name,
			})
		}
	}

	if scopes.Tags {
		// Narrow candidates in SQL, then do the exact membership test
		// against the decoded array.
		var notes []models.Note
		err := db.DB.Where("user_id = ?", userID).
			Where("LOWER(tags) LIKE ?", pattern).
			Find(&notes).Error
		if err != nil {
			return nil, err
		}
		for _, note := range notes {
			for _, tag := range note.Tags {
				if strings.EqualFold(tag, query) {
					results = append(results, models.SearchResult{
						Type:    models.SearchTypeNote,
						ID:      note.ID,
						Title:   note.Title,
						Summary: note.Summary,
					})
					break
				}
			}
		}
	}

	return results, nil
}

// NewSearchService creates a new instance of SearchService
func NewSearchService() SearchServiceInterface {
	return &SearchService{}
}

var SearchServiceInstance SearchServiceInterface
