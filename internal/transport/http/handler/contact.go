package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"portfolio-site/internal/app"
	"portfolio-site/internal/transport/http/middleware"
	"portfolio-site/internal/transport/http/response"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, input app.ContactInput) (*app.SubmitResult, error)
}

type ContactHandler struct {
	contacts ContactSubmitter
	secret   string
	logger   *slog.Logger
}

// ContactRequest binds form-encoded, multipart and JSON bodies alike. Fields
// are read from the body only, never from the query string.
type ContactRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

func NewContactHandler(contacts ContactSubmitter, secret string, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{contacts: contacts, secret: secret, logger: logger}
}

// Submit handles POST /contact. The reply is success whenever the fields are
// present, even if the message could not be written to disk.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindWith(&req, bodyBinding(c.ContentType())); err != nil {
		response.Error(c, http.StatusBadRequest, app.MissingFieldsMessage)
		return
	}

	result, err := h.contacts.Submit(c.Request.Context(), app.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields):
			response.Error(c, http.StatusBadRequest, app.MissingFieldsMessage)
		default:
			response.Error(c, http.StatusInternalServerError, "submit contact message failed")
		}
		return
	}

	if !result.Persisted {
		h.logger.Debug("contact message accepted without persistence", "path", c.FullPath())
	}
	if err := middleware.SetFlash(c, h.secret, response.StatusSuccess, app.ThankYouMessage); err != nil {
		h.logger.Warn("set flash failed", "error", err)
	}
	response.Success(c, app.ThankYouMessage)
}

func bodyBinding(contentType string) binding.Binding {
	switch contentType {
	case binding.MIMEJSON:
		return binding.JSON
	case binding.MIMEMultipartPOSTForm:
		return binding.FormMultipart
	default:
		return binding.FormPost
	}
}
