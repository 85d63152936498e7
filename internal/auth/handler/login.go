package handler

import (
	"net/http"

	"bibliotech-auth/internal/guard"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the client. The optional ?next= query is echoed
// back, sanitized, so the caller can return to the page it came from.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	s, ok := store(c)
	if !ok {
		return
	}

	user, err := s.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "logged_in",
		"user":   user,
		"next":   guard.ReturnPath(c.Request.URL.Query()),
	})
}
