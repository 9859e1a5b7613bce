package services

import (
	"testing"

	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_Success(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &CategoryService{}

	category, err := service.CreateCategory(db, user.ID, "  Work  ")
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	assert.Equal(t, user.ID, category.UserID)
}

func TestCreateCategory_BlankName(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &CategoryService{}

	_, err := service.CreateCategory(db, user.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCategory_DuplicatePerOwner(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	service := &CategoryService{}

	_, err := service.CreateCategory(db, user.ID, "Work")
	require.NoError(t, err)

	_, err = service.CreateCategory(db, user.ID, "Work")
	assert.ErrorIs(t, err, ErrResourceExists)

	// Same name under a different owner is fine.
	_, err = service.CreateCategory(db, other.ID, "Work")
	assert.NoError(t, err)
}

func TestUpdateCategory_ScopedToOwner(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	category := createTestCategory(t, db, user.ID, "Old")
	service := &CategoryService{}

	_, err := service.UpdateCategory(db, other.ID, category.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	updated, err := service.UpdateCategory(db, user.ID, category.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
}

func TestUpdateCategory_UnknownId(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &CategoryService{}

	_, err := service.UpdateCategory(db, user.ID, uuid.New(), "Name")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteCategory_UncategorizesNotes(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	category := createTestCategory(t, db, user.ID, "Work")
	service := &CategoryService{}

	filed1 := createTestNote(t, db, user.ID, "Filed one")
	filed2 := createTestNote(t, db, user.ID, "Filed two")
	loose := createTestNote(t, db, user.ID, "Loose")
	require.NoError(t, db.DB.Model(&models.Note{}).Where("id IN ?", []uuid.UUID{filed1.ID, filed2.ID}).Update("category_id", category.ID).Error)

	affected, err := service.DeleteCategory(db, user.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var count int64
	require.NoError(t, db.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Notes survive, just uncategorized.
	for _, id := range []uuid.UUID{filed1.ID, filed2.ID, loose.ID} {
		var note models.Note
		require.NoError(t, db.DB.First(&note, "id = ?", id).Error)
		assert.Nil(t, note.CategoryID)
	}
}

func TestDeleteCategory_ScopedToOwner(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	category := createTestCategory(t, db, user.ID, "Work")
	service := &CategoryService{}

	_, err := service.DeleteCategory(db, other.ID, category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	var count int64
	require.NoError(t, db.DB.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetCategoryDetail_IncludesNotes(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	category := createTestCategory(t, db, user.ID, "Work")
	service := &CategoryService{}

	note := createTestNote(t, db, user.ID, "Plan")
	require.NoError(t, db.DB.Model(&note).Update("category_id", category.ID).Error)
	createTestNote(t, db, user.ID, "Unfiled")

	detail, err := service.GetCategoryDetail(db, user.ID, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", detail.Name)
	require.Len(t, detail.Notes, 1)
	assert.Equal(t, "Plan", detail.Notes[0].Title)
}
