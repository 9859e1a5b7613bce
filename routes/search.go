package routes

import (
	"net/http"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/logger"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
)

func RegisterSearchRoutes(group *gin.RouterGroup, db *database.Database, searchService services.SearchServiceInterface) {
	group.GET("/search", func(c *gin.Context) { Search(c, db, searchService) })
}

func Search(c *gin.Context, db *database.Database, searchService services.SearchServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Every scope is on unless explicitly switched off.
	scopes := services.SearchScopes{
		Notes:      c.DefaultQuery("searchNotes", "true") == "true",
		Categories: c.DefaultQuery("searchCategories", "true") == "true",
		Tags:       c.DefaultQuery("searchTags", "true") == "true",
	}

	results, err := searchService.Search(db, userID, c.Query("query"), scopes)
	if err != nil {
		logger.Log.Error().Err(err).Msg("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}
