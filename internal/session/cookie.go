package session

import (
	"net/http"
	"time"
)

const (
	CookieName = "__Host-session"

	// CookieLifetime keeps the client key for as long as a browser keeps
	// local storage in practice.
	CookieLifetime = 365 * 24 * time.Hour
)

// CookieOptions defines how client key cookies are issued.
type CookieOptions struct {
	Path     string
	HttpOnly bool
	Secure   bool
	SameSite http.SameSite
	Domain   string // should usually be empty for __Host- cookies
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" {
		o.Path = "/" // required for __Host-
	}
	if !o.HttpOnly {
		o.HttpOnly = true
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// SetCookie issues the client key cookie.
func SetCookie(
	w http.ResponseWriter,
	clientKey string,
	opts CookieOptions,
) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    clientKey,
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   int(CookieLifetime.Seconds()),
		HttpOnly: opts.HttpOnly,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClientKey returns the client key carried by r, if any.
func ClientKey(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
