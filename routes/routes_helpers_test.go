package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	testUserID = uuid.Must(uuid.Parse("90a12345-f12a-98c4-a456-513432930000"))
	knownID    = uuid.Must(uuid.Parse("123e4567-e89b-12d3-a456-426614174000"))
)

// authedAPIGroup stands in for the auth middleware: it stamps the test
// user onto every request the way AuthMiddleware does after validating
// a token.
func authedAPIGroup(router *gin.Engine) *gin.RouterGroup {
	group := router.Group("/api")
	group.Use(func(c *gin.Context) {
		c.Set("userID", testUserID)
		c.Next()
	})
	return group
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}
