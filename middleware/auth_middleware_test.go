package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"cornelius-notes/cornelius/models"
	"cornelius-notes/cornelius/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() models.User {
	return models.User{ID: uuid.New(), Email: "claims@example.com"}
}

func setupProtectedRouter(authService services.AuthServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	protected := router.Group("/api", AuthMiddleware(authService))
	protected.GET("/whoami", func(c *gin.Context) {
		userID := c.MustGet("userID").(uuid.UUID)
		c.JSON(http.StatusOK, gin.H{"user_id": userID.String(), "email": c.GetString("email")})
	})
	return router
}

func perform(router *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	authService := services.NewAuthService("test-secret", 24)
	router := setupProtectedRouter(authService)

	t.Run("Missing Header", func(t *testing.T) {
		w := perform(router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		w := perform(router, "just-a-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		w := perform(router, "Bearer not-a-real-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid or expired token")
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := services.NewAuthService("another-secret", 24)
		tokenString, err := other.GenerateToken(testUser())
		require.NoError(t, err)

		w := perform(router, "Bearer "+tokenString)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		user := testUser()
		tokenString, err := authService.GenerateToken(user)
		require.NoError(t, err)

		w := perform(router, "Bearer "+tokenString)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
		assert.Contains(t, w.Body.String(), user.Email)
	})
}
