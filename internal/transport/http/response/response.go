package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  StatusSuccess,
		Message: message,
	})
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, APIResponse{
		Status:  StatusError,
		Message: message,
	})
}
