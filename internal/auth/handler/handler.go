package handler

import (
	"net/http"

	"bibliotech-auth/internal/auth/identity"
	"bibliotech-auth/internal/logger"
	"bibliotech-auth/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth *middleware.AuthMiddleware
}

func NewHandler(auth *middleware.AuthMiddleware) *Handler {
	return &Handler{auth: auth}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	load := middleware.GinLoadIdentity(h.auth)

	authGroup := r.Group("/auth", load)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/register", h.Register)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", h.Me)

	api := r.Group("/api", load, middleware.GinRequireAccess(h.auth, false, middleware.Status))
	api.PATCH("/profile", h.UpdateProfile)
	api.PUT("/profile/progress", h.UpdateReadingProgress)

	admin := api.Group("/admin", middleware.GinRequireAccess(h.auth, true, middleware.Status))
	admin.GET("/users", h.ListUsers)
	admin.PUT("/users/:id/role", h.SetRole)
	admin.DELETE("/users/:id", h.DeleteUser)
}

// store returns the request's identity store, answering 500 when the
// route was registered without LoadIdentity.
func store(c *gin.Context) (*identity.Store, bool) {
	s, ok := middleware.Store(c)
	if !ok {
		logger.Error("identity store missing from request", map[string]any{
			"path": c.Request.URL.Path,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
	return s, ok
}

func (h *Handler) Me(c *gin.Context) {
	s, ok := store(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": s.IsAuthenticated(),
		"user":          s.Current(),
		"isAdmin":       s.IsAdmin(),
		"isUser":        s.IsUser(),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	s, ok := store(c)
	if !ok {
		return
	}

	s.Logout(c.Request.Context())

	// Idempotent response
	c.Status(http.StatusNoContent)
}
