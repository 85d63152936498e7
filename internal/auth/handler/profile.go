package handler

import (
	"net/http"

	"bibliotech-auth/internal/auth"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UpdateProfile(c *gin.Context) {
	var patch auth.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	s, ok := store(c)
	if !ok {
		return
	}

	user, err := s.UpdateProfile(c.Request.Context(), patch)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

func (h *Handler) UpdateReadingProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Progress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	s, ok := store(c)
	if !ok {
		return
	}

	user, err := s.UpdateReadingProgress(c.Request.Context(), *req.Progress)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
