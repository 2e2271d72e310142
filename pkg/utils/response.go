package utils

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"heartguard-backend/internal/apperrors"
)

// Response is the uniform JSON envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse maps an application error onto the envelope. Raw store
// errors never reach the client; anything unclassified becomes a 500
// with a generic message.
func ErrorResponse(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if apperrors.KindOf(err) == apperrors.KindInternal {
		slog.Error("unhandled error", "path", c.FullPath(), "error", err)
		message = "internal server error"
	}
	APIResponse(c, status, false, message, nil)
}
