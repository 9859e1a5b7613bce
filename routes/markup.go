package routes

import (
	"net/http"

	"cornelius-notes/cornelius/markup"

	"github.com/gin-gonic/gin"
)

type renderHTMLRequest struct {
	Markdown string `json:"markdown"`
}

type renderMarkdownRequest struct {
	HTML string `json:"html"`
}

// Markup routes back the rich-text editor: it stores markdown but
// edits HTML, so both conversion directions are exposed.
func RegisterMarkupRoutes(group *gin.RouterGroup) {
	group.POST("/markup/html", RenderHTML)
	group.POST("/markup/markdown", RenderMarkdown)
}

func RenderHTML(c *gin.Context) {
	var request renderHTMLRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": markup.MarkdownToHTML(request.Markdown)})
}

func RenderMarkdown(c *gin.Context) {
	var request renderMarkdownRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	md, err := markup.HTMLToMarkdown(request.HTML)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid HTML"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"markdown": md})
}
