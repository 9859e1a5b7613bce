package routes

import (
	"encoding/json"
	"net/http"
	"testing"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/models"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockSearchService echoes the scopes it was handed so tests can check
// query parameter parsing.
type MockSearchService struct {
	lastQuery  string
	lastScopes services.SearchScopes
}

func (m *MockSearchService) Search(db *database.Database, userID uuid.UUID, query string, scopes services.SearchScopes) ([]models.SearchResult, error) {
	m.lastQuery = query
	m.lastScopes = scopes
	return []models.SearchResult{
		{Type: models.SearchTypeNote, ID: knownID, Title: "Wave equations", CategoryName: "Physics"},
	}, nil
}

func setupSearchRouter(service *MockSearchService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterSearchRoutes(authedAPIGroup(router), &database.Database{}, service)
	return router
}

func TestSearchRoute_DefaultsAllScopesOn(t *testing.T) {
	service := &MockSearchService{}
	router := setupSearchRouter(service)

	w := performJSON(t, router, "GET", "/api/search?query=wave", "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "wave", service.lastQuery)
	assert.Equal(t, services.SearchScopes{Notes: true, Categories: true, Tags: true}, service.lastScopes)

	var results []models.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, models.SearchTypeNote, results[0].Type)
	assert.Equal(t, "Physics", results[0].CategoryName)
}

func TestSearchRoute_ScopeToggles(t *testing.T) {
	service := &MockSearchService{}
	router := setupSearchRouter(service)

	w := performJSON(t, router, "GET", "/api/search?query=wave&searchNotes=false&searchTags=false", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, services.SearchScopes{Notes: false, Categories: true, Tags: false}, service.lastScopes)

	// Only the literal "true" keeps a scope on.
	w = performJSON(t, router, "GET", "/api/search?query=wave&searchCategories=yes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, service.lastScopes.Categories)
	assert.True(t, service.lastScopes.Notes)
}
