package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-site/internal/content"
)

// APIHandler serves the fixed JSON payloads.
type APIHandler struct {
	content *content.Content
}

func NewAPIHandler(c *content.Content) *APIHandler {
	return &APIHandler{content: c}
}

// Data handles GET /api/data.
func (h *APIHandler) Data(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Course)
}

// Resume handles GET /api/resume.
func (h *APIHandler) Resume(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Resume)
}
