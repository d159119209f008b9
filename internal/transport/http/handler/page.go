package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-site/internal/transport/http/middleware"
)

type PageHandler struct {
	siteName string
	logger   *slog.Logger
}

func NewPageHandler(siteName string, logger *slog.Logger) *PageHandler {
	return &PageHandler{siteName: siteName, logger: logger}
}

func (h *PageHandler) Home(c *gin.Context) {
	data := gin.H{"site": h.siteName}
	if f, ok := middleware.FlashFromContext(c); ok {
		data["flash"] = f
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *PageHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"site": h.siteName, "path": c.Request.URL.Path})
}

// Recover logs the panic value and renders the 500 page.
func (h *PageHandler) Recover(c *gin.Context, recovered any) {
	h.logger.ErrorContext(c.Request.Context(), "panic recovered",
		"error", recovered,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{"site": h.siteName})
	c.Abort()
}
