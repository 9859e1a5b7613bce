package services

import (
	"errors"
	"regexp"
	"strings"

	"cornelius-notes/cornelius/broker"
	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserServiceInterface interface {
	Register(db *database.Database, username, email, password string) (models.User, error)
	GetUserById(db *database.Database, id uuid.UUID) (models.User, error)
	UpdateProfile(db *database.Database, id uuid.UUID, updatedData map[string]interface{}) (models.User, error)
	DeleteAccount(db *database.Database, id uuid.UUID) error
	GetStats(db *database.Database, id uuid.UUID) (models.UserStats, error)
}

type UserService struct {
	authService AuthServiceInterface
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{authService: authService}
}

func (s *UserService) Register(db *database.Database, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if username == "" || email == "" || password == "" {
		return models.User{}, ErrInvalidInput
	}
	if !emailPattern.MatchString(email) {
		return models.User{}, ErrInvalidInput
	}
	if len(password) < 6 {
		return models.User{}, ErrInvalidInput
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrResourceExists
		}
		return models.User{}, err
	}

	broker.Publish(broker.UserEventsTopic, broker.NewEvent(broker.UserCreated, "user", user.ID, map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
	}))

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateProfile renames the user and, when both currentPassword and
// newPassword are present, rotates the password after verifying the
// current one.
func (s *UserService) UpdateProfile(db *database.Database, id uuid.UUID, updatedData map[string]interface{}) (models.User, error) {
	username, _ := updatedData["username"].(string)
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, ErrInvalidInput
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	updates := map[string]interface{}{"username": username}

	currentPassword, hasCurrent := updatedData["currentPassword"].(string)
	newPassword, hasNew := updatedData["newPassword"].(string)
	if hasCurrent && hasNew && currentPassword != "" && newPassword != "" {
		if err := s.authService.ComparePasswords(user.PasswordHash, currentPassword); err != nil {
			return models.User{}, ErrInvalidCredentials
		}
		if len(newPassword) < 6 {
			return models.User{}, ErrInvalidInput
		}
		hash, err := s.authService.HashPassword(newPassword)
		if err != nil {
			return models.User{}, err
		}
		updates["password_hash"] = hash
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		return models.User{}, err
	}

	broker.Publish(broker.UserEventsTopic, broker.NewEvent(broker.UserUpdated, "user", user.ID, map[string]interface{}{
		"user_id": user.ID.String(),
	}))

	return user, nil
}

// DeleteAccount removes the user and everything they own in one
// transaction: link edges touching their notes, the notes themselves,
// their categories, then the user row.
func (s *UserService) DeleteAccount(db *database.Database, id uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	noteIDs := tx.Model(&models.Note{}).Select("id").Where("user_id = ?", id)

	if err := tx.Where("source_id IN (?) OR target_id IN (?)", noteIDs, noteIDs).Delete(&models.NoteLink{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", id).Delete(&models.Note{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", id).Delete(&models.Category{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	broker.Publish(broker.UserEventsTopic, broker.NewEvent(broker.UserDeleted, "user", user.ID, map[string]interface{}{
		"user_id": user.ID.String(),
	}))

	return nil
}

func (s *UserService) GetStats(db *database.Database, id uuid.UUID) (models.UserStats, error) {
	var stats models.UserStats

	if err := db.DB.Model(&models.Note{}).Where("user_id = ?", id).Count(&stats.Notes).Error; err != nil {
		return models.UserStats{}, err
	}

	if err := db.DB.Model(&models.Category{}).Where("user_id = ?", id).Count(&stats.Categories).Error; err != nil {
		return models.UserStats{}, err
	}

	var notes []models.Note
	if err := db.DB.Select("tags").Where("user_id = ?", id).Find(&notes).Error; err != nil {
		return models.UserStats{}, err
	}
	distinct := make(map[string]struct{})
	for _, note := range notes {
		for _, tag := range note.Tags {
			distinct[strings.ToLower(tag)] = struct{}{}
		}
	}
	stats.Tags = int64(len(distinct))

	if err := db.DB.Model(&models.Note{}).
		Joins("JOIN note_links ON note_links.source_id = notes.id OR note_links.target_id = notes.id").
		Where("notes.user_id = ?", id).
		Distinct("notes.id").
		Count(&stats.LinkedNotes).Error; err != nil {
		return models.UserStats{}, err
	}

	return stats, nil
}

var UserServiceInstance UserServiceInterface
