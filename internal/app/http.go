package app

import (
	"context"
	"net/http"

	"bibliotech-auth/internal/auth/handler"
	"bibliotech-auth/internal/config"
	"bibliotech-auth/internal/guard"
	"bibliotech-auth/internal/middleware"
	"bibliotech-auth/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	authMiddleware := middleware.NewAuthMiddleware(
		infra.Directory,
		infra.Markers,
		session.CookieOptions{
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	)

	authHandler := handler.NewHandler(authMiddleware)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Auth + API Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	// ----------------------------
	// Views
	// ----------------------------

	registerViews(router, authMiddleware)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}

// registerViews mounts every route of the view table behind the access
// guard. The views themselves only report what they would render.
func registerViews(router *gin.Engine, auth *middleware.AuthMiddleware) {
	load := middleware.GinLoadIdentity(auth)

	for _, route := range guard.Routes {
		chain := []gin.HandlerFunc{load}
		if route.Access != guard.Public {
			chain = append(chain, middleware.GinRequireAccess(auth, route.RequiresAdmin(), middleware.Redirect))
		}
		chain = append(chain, renderView(route))

		router.GET(route.Path, chain...)
	}
}

func renderView(route guard.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := middleware.Store(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
			return
		}

		body := gin.H{
			"view":          route.View,
			"authenticated": s.IsAuthenticated(),
			"isAdmin":       s.IsAdmin(),
			"user":          s.Current(),
		}
		if route.Path == guard.LoginPath {
			body["next"] = guard.ReturnPath(c.Request.URL.Query())
		}

		c.JSON(http.StatusOK, body)
	}
}
