package rest

import (
	"errors"
	"net/http"

	"miniblog/internal/service"
	"miniblog/pkg/logger"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform response wrapper. data is omitted for responses
// that carry a message only (delete).
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Message: message, Data: data})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Message: message})
}

// respondServiceError maps domain errors to statuses. Anything that is not a
// validation or not-found failure is a storage-level fault and must not leak
// its details to the caller.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, envelope{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope{Message: "Post not found"})
	case errors.Is(err, service.ErrInternalError):
		logger.FromContext(c.Request.Context()).Error("storage failure", "error", err)
		c.JSON(http.StatusInternalServerError, envelope{Message: "internal server error"})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, envelope{Message: "internal server error"})
	}
}
