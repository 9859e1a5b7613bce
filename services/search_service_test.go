package services

import (
	"testing"

	"cornelius-notes/cornelius/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allScopes = SearchScopes{Notes: true, Categories: true, Tags: true}

func TestSearch_MatchesNoteFields(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	titled := createTestNote(t, db, user.ID, "Gradient descent")
	body := createTestNote(t, db, user.ID, "Lecture 3")
	require.NoError(t, db.DB.Model(&body).Update("content", "covers gradient methods").Error)
	recap := createTestNote(t, db, user.ID, "Lecture 4")
	require.NoError(t, db.DB.Model(&recap).Update("summary", "gradient recap").Error)
	createTestNote(t, db, user.ID, "Unrelated")

	results, err := service.Search(db, user.ID, "gradient", SearchScopes{Notes: true})
	require.NoError(t, err)
	require.Len(t, results, 3)

	ids := map[string]bool{}
	for _, result := range results {
		assert.Equal(t, models.SearchTypeNote, result.Type)
		ids[result.ID.String()] = true
	}
	assert.True(t, ids[titled.ID.String()])
	assert.True(t, ids[body.ID.String()])
	assert.True(t, ids[recap.ID.String()])
}

func TestSearch_CaseInsensitive(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	createTestNote(t, db, user.ID, "Thermodynamics")

	results, err := service.Search(db, user.ID, "THERMO", SearchScopes{Notes: true})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_CategoriesScope(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	category := createTestCategory(t, db, user.ID, "Physics")
	createTestCategory(t, db, user.ID, "History")

	results, err := service.Search(db, user.ID, "phys", SearchScopes{Categories: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.SearchTypeCategory, results[0].Type)
	assert.Equal(t, category.ID, results[0].ID)
	assert.Equal(t, "Physics", results[0].Title)
}

func TestSearch_TagsRequireExactMatch(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	tagged := models.Note{ID: uuid.New(), UserID: user.ID, Title: "Tagged", Tags: []string{"physics"}}
	require.NoError(t, db.DB.Create(&tagged).Error)
	partial := models.Note{ID: uuid.New(), UserID: user.ID, Title: "Partial", Tags: []string{"physicskills"}}
	require.NoError(t, db.DB.Create(&partial).Error)

	// Tag scope is an exact, case-insensitive membership test, not a
	// substring match.
	results, err := service.Search(db, user.ID, "Physics", SearchScopes{Tags: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, tagged.ID, results[0].ID)
}

func TestSearch_NoteResultsCarryCategoryName(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	category := createTestCategory(t, db, user.ID, "Physics")
	note := createTestNote(t, db, user.ID, "Wave equations")
	require.NoError(t, db.DB.Model(&note).Update("category_id", category.ID).Error)

	results, err := service.Search(db, user.ID, "wave", SearchScopes{Notes: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Physics", results[0].CategoryName)
}

func TestSearch_DisabledScopesSkipped(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	createTestNote(t, db, user.ID, "shared term")
	createTestCategory(t, db, user.ID, "shared term")

	results, err := service.Search(db, user.ID, "shared", SearchScopes{Categories: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.SearchTypeCategory, results[0].Type)
}

func TestSearch_ScopedToOwner(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	other := createTestUser(t, db)
	service := &SearchService{}

	createTestNote(t, db, other.ID, "secret plans")
	createTestCategory(t, db, other.ID, "secret stash")

	results, err := service.Search(db, user.ID, "secret", allScopes)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_NoMatchesReturnsEmptySlice(t *testing.T) {
	db := setupServiceTest(t)
	user := createTestUser(t, db)
	service := &SearchService{}

	results, err := service.Search(db, user.ID, "nothing", allScopes)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
