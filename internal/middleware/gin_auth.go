package middleware

import (
	"net/http"

	"bibliotech-auth/internal/auth/identity"

	"github.com/gin-gonic/gin"
)

// bridge adapts a net/http middleware to Gin. The wrapped handler either
// continues the Gin chain or answers the request itself.
func bridge(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		mw(next).ServeHTTP(c.Writer, c.Request)

		// If the middleware already handled the response, stop Gin chain
		if c.Writer.Written() {
			c.Abort()
		}
	}
}

// GinLoadIdentity adapts LoadIdentity to Gin.
func GinLoadIdentity(auth *AuthMiddleware) gin.HandlerFunc {
	return bridge(auth.LoadIdentity)
}

// GinRequireAccess adapts RequireAccess to Gin.
func GinRequireAccess(auth *AuthMiddleware, requiresAdmin bool, mode Mode) gin.HandlerFunc {
	return bridge(auth.RequireAccess(requiresAdmin, mode))
}

// Store returns the identity store attached to a Gin request.
func Store(c *gin.Context) (*identity.Store, bool) {
	return StoreFromContext(c.Request.Context())
}
