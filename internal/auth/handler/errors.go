package handler

import (
	"errors"
	"net/http"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/logger"

	"github.com/gin-gonic/gin"
)

// statusFor maps an identity store error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, auth.ErrSelfModificationForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrEmailAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, auth.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, auth.ErrInvalidProgress),
		errors.Is(err, auth.ErrInvalidCandidate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("request failed", map[string]any{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		})
		c.JSON(status, gin.H{"error": "internal"})
		return
	}

	c.JSON(status, gin.H{
		"error":   auth.Kind(err),
		"message": err.Error(),
	})
}
