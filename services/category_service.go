package services

import (
	"errors"
	"strings"

	"cornelius-notes/cornelius/broker"
	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryServiceInterface interface {
	ListCategories(db *database.Database, userID uuid.UUID) ([]models.Category, error)
	CreateCategory(db *database.Database, userID uuid.UUID, name string) (models.Category, error)
	GetCategoryDetail(db *database.Database, userID, id uuid.UUID) (models.CategoryDetail, error)
	UpdateCategory(db *database.Database, userID, id uuid.UUID, name string) (models.Category, error)
	DeleteCategory(db *database.Database, userID, id uuid.UUID) (int64, error)
}

type CategoryService struct{}

func (s *CategoryService) ListCategories(db *database.Database, userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := db.DB.Where("user_id = ?", userID).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(db *database.Database, userID uuid.UUID, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrInvalidInput
	}

	category := models.Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}

	// Duplicate names are caught by the (user_id, name) unique index.
	if err := db.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrResourceExists
		}
		return models.Category{}, err
	}

	broker.Publish(broker.CategoryEventsTopic, broker.NewEvent(broker.CategoryCreated, "category", userID, map[string]interface{}{
		"category_id": category.ID.String(),
		"name":        category.Name,
	}))

	return category, nil
}

func (s *CategoryService) GetCategoryDetail(db *database.Database, userID, id uuid.UUID) (models.CategoryDetail, error) {
	var category models.Category
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CategoryDetail{}, ErrCategoryNotFound
		}
		return models.CategoryDetail{}, err
	}

	var notes []models.Note
	if err := db.DB.Where("category_id = ? AND user_id = ?", id, userID).Find(&notes).Error; err != nil {
		return models.CategoryDetail{}, err
	}

	return models.CategoryDetail{Category: category, Notes: notes}, nil
}

func (s *CategoryService) UpdateCategory(db *database.Database, userID, id uuid.UUID, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, ErrInvalidInput
	}

	var category models.Category
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}

	if err := db.DB.Model(&category).Update("name", name).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Category{}, ErrResourceExists
		}
		return models.Category{}, err
	}

	broker.Publish(broker.CategoryEventsTopic, broker.NewEvent(broker.CategoryUpdated, "category", userID, map[string]interface{}{
		"category_id": category.ID.String(),
		"name":        category.Name,
	}))

	return category, nil
}

// DeleteCategory removes a category and uncategorizes its notes in one
// transaction. Notes themselves are never deleted here. Returns how
// many notes lost their category.
func (s *CategoryService) DeleteCategory(db *database.Database, userID, id uuid.UUID) (int64, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	var category models.Category
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}

	var affectedNotes int64
	if err := tx.Model(&models.Note{}).Where("category_id = ? AND user_id = ?", id, userID).Count(&affectedNotes).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Model(&models.Note{}).Where("category_id = ? AND user_id = ?", id, userID).Update("category_id", nil).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	broker.Publish(broker.CategoryEventsTopic, broker.NewEvent(broker.CategoryDeleted, "category", userID, map[string]interface{}{
		"category_id":    category.ID.String(),
		"affected_notes": affectedNotes,
	}))

	return affectedNotes, nil
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService() CategoryServiceInterface {
	return &CategoryService{}
}

var CategoryServiceInstance CategoryServiceInterface
