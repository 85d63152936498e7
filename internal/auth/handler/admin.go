package handler

import (
	"net/http"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/auth/identity"

	"github.com/gin-gonic/gin"
)

// requester returns the identity acting on an admin route. The access
// guard has already run, so an anonymous client here is a wiring error.
func requester(c *gin.Context) (*identity.Store, auth.Identity, bool) {
	s, ok := store(c)
	if !ok {
		return nil, auth.Identity{}, false
	}
	cur := s.Current()
	if cur == nil {
		writeError(c, auth.ErrNotAuthenticated)
		return nil, auth.Identity{}, false
	}
	return s, *cur, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	s, req, ok := requester(c)
	if !ok {
		return
	}

	users, err := s.ListIdentities(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type setRoleRequest struct {
	Role auth.Role `json:"role"`
}

func (h *Handler) SetRole(c *gin.Context) {
	var body setRoleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	s, req, ok := requester(c)
	if !ok {
		return
	}

	if err := s.SetRole(c.Request.Context(), req, c.Param("id"), body.Role); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	s, req, ok := requester(c)
	if !ok {
		return
	}

	if err := s.DeleteIdentity(c.Request.Context(), req, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
