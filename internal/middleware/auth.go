package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"bibliotech-auth/internal/auth/identity"
	"bibliotech-auth/internal/directory"
	"bibliotech-auth/internal/guard"
	"bibliotech-auth/internal/logger"
	"bibliotech-auth/internal/session"
)

// unexported, collision-proof context key
type storeContextKeyType struct{}

var storeKey = storeContextKeyType{}

// StoreFromContext returns the identity store attached by LoadIdentity.
func StoreFromContext(ctx context.Context) (*identity.Store, bool) {
	s, ok := ctx.Value(storeKey).(*identity.Store)
	return s, ok
}

// WithStore attaches s to ctx.
func WithStore(ctx context.Context, s *identity.Store) context.Context {
	return context.WithValue(ctx, storeKey, s)
}

// Mode selects how a denied request is answered.
type Mode int

const (
	// Redirect answers with 302 to the guard's location (views).
	Redirect Mode = iota
	// Status answers with 401/403 and a JSON body (API).
	Status
)

type AuthMiddleware struct {
	Directory directory.Directory
	Markers   session.Store
	Cookie    session.CookieOptions
}

func NewAuthMiddleware(dir directory.Directory, markers session.Store, cookie session.CookieOptions) *AuthMiddleware {
	return &AuthMiddleware{
		Directory: dir,
		Markers:   markers,
		Cookie:    cookie,
	}
}

// LoadIdentity binds an identity store to the request's client key,
// issuing a new key when the client has none, and restores it.
func (a *AuthMiddleware) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read or issue client key
		clientKey, ok := session.ClientKey(r)
		if !ok {
			var err error
			clientKey, err = session.GenerateClientKey()
			if err != nil {
				logger.Error("failed to issue client key", map[string]any{
					"error": err.Error(),
				})
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
				return
			}
			session.SetCookie(w, clientKey, a.Cookie)
		}

		// 2. Restore identity
		store := identity.New(a.Directory, a.Markers, clientKey)
		if err := store.Init(r.Context()); err != nil {
			logger.Error("failed to restore identity", map[string]any{
				"error": err.Error(),
			})
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
			return
		}

		// 3. Continue request
		next.ServeHTTP(w, r.WithContext(WithStore(r.Context(), store)))
	})
}

// RequireAccess runs the access guard for the request's target.
// It must run after LoadIdentity.
func (a *AuthMiddleware) RequireAccess(requiresAdmin bool, mode Mode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store, ok := StoreFromContext(r.Context())
			if !ok {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal"})
				return
			}

			d := guard.Check(store, requiresAdmin, r.URL.RequestURI())
			if d.Outcome == guard.Render {
				next.ServeHTTP(w, r)
				return
			}

			deny(w, r, d, mode)
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, d guard.Decision, mode Mode) {
	if d.Outcome == guard.Pending {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "loading"})
		return
	}

	if mode == Redirect {
		http.Redirect(w, r, d.Location, http.StatusFound)
		return
	}

	status, code := http.StatusUnauthorized, "not_authenticated"
	if d.Outcome == guard.RedirectUnauthorized {
		status, code = http.StatusForbidden, "unauthorized"
	}
	writeJSON(w, status, map[string]any{
		"error":    code,
		"location": d.Location,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
