package routes

import (
	"errors"
	"net/http"

	"cornelius-notes/cornelius/database"
	"cornelius-notes/cornelius/logger"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func RegisterCategoryRoutes(group *gin.RouterGroup, db *database.Database, categoryService services.CategoryServiceInterface) {
	group.GET("/categories", func(c *gin.Context) { ListCategories(c, db, categoryService) })
	group.POST("/categories", func(c *gin.Context) { CreateCategory(c, db, categoryService) })

	group.GET("/categories/:id", func(c *gin.Context) { GetCategoryById(c, db, categoryService) })
	group.PUT("/categories/:id", func(c *gin.Context) { UpdateCategory(c, db, categoryService) })
	group.DELETE("/categories/:id", func(c *gin.Context) { DeleteCategory(c, db, categoryService) })
}

func ListCategories(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	categories, err := categoryService.ListCategories(db, userID)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func CreateCategory(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request categoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := categoryService.CreateCategory(db, userID, request.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		case errors.Is(err, services.ErrResourceExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name already exists"})
		default:
			logger.Log.Error().Err(err).Msg("failed to create category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		}
		return
	}

	c.JSON(http.StatusCreated, category)
}

func GetCategoryById(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Category")
	if !ok {
		return
	}

	detail, err := categoryService.GetCategoryDetail(db, userID, id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		logger.Log.Error().Err(err).Msg("failed to fetch category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func UpdateCategory(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Category")
	if !ok {
		return
	}

	var request categoryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := categoryService.UpdateCategory(db, userID, id, request.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		case errors.Is(err, services.ErrResourceExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name already exists"})
		case errors.Is(err, services.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		default:
			logger.Log.Error().Err(err).Msg("failed to update category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context, db *database.Database, categoryService services.CategoryServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "Category")
	if !ok {
		return
	}

	affectedNotes, err := categoryService.DeleteCategory(db, userID, id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		logger.Log.Error().Err(err).Msg("failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Category deleted successfully",
		"affectedNotes": affectedNotes,
	})
}
