package services

import (
	"fmt"
	"testing"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"
	"cornelius-notes/cornelius/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) *database.Database {
	return testutils.SetupTestDB(t)
}

func createTestUser(t *testing.T, db *database.Database) models.User {
	t.Helper()
	id := uuid.New()
	user := models.User{
		ID:           id,
		Username:     "tester",
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func createTestCategory(t *testing.T, db *database.Database, userID uuid.UUID, name string) models.Category {
	t.Helper()
	category := models.Category{ID: uuid.New(), UserID: userID, Name: name}
	require.NoError(t, db.DB.Create(&category).Error)
	return category
}

func createTestNote(t *testing.T, db *database.Database, userID uuid.UUID, title string) models.Note {
	t.Helper()
	note := models.Note{ID: uuid.New(), UserID: userID, Title: title, Tags: []string{}}
	require.NoError(t, db.DB.Create(&note).Error)
	return note
}

func linkCount(t *testing.T, db *database.Database) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.DB.Model(&models.NoteLink{}).Count(&count).Error)
	return count
}
