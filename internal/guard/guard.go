// Package guard decides whether a protected view may render for the
// current identity. Decisions are pure functions of their inputs.
package guard

import (
	"net/url"
	"strings"

	"bibliotech-auth/internal/auth"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"

	// NextParam carries the originally requested location through login.
	NextParam = "next"
)

type Outcome int

const (
	// Pending means the identity store has not finished restoring; show a
	// loading indicator and decide nothing yet.
	Pending Outcome = iota
	Render
	RedirectLogin
	RedirectUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case Pending:
		return "pending"
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Decision is the guard's verdict. Location is set for redirects.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Evaluate decides for a navigation to target.
func Evaluate(current *auth.Identity, requiresAdmin bool, target string) Decision {
	if current == nil {
		return Decision{
			Outcome:  RedirectLogin,
			Location: LoginLocation(target),
		}
	}

	if requiresAdmin && !current.IsAdmin() {
		return Decision{
			Outcome:  RedirectUnauthorized,
			Location: UnauthorizedPath,
		}
	}

	return Decision{Outcome: Render}
}

// Reader is the part of the identity store the guard consults.
type Reader interface {
	Ready() bool
	Current() *auth.Identity
}

// Check evaluates against a store, reporting Pending until it is ready.
func Check(r Reader, requiresAdmin bool, target string) Decision {
	if !r.Ready() {
		return Decision{Outcome: Pending}
	}
	return Evaluate(r.Current(), requiresAdmin, target)
}

// LoginLocation builds the login redirect that returns to target.
func LoginLocation(target string) string {
	target = sanitizeTarget(target)
	if target == "/" {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{NextParam: {target}}.Encode()
}

// ReturnPath extracts where to go after login from a login URL query.
// Only same-site absolute paths are honored; anything else yields "/".
func ReturnPath(query url.Values) string {
	return sanitizeTarget(query.Get(NextParam))
}

func sanitizeTarget(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return "/"
	}
	// "//host" and "/\host" are protocol-relative in browsers
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}

	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return "/"
	}
	return target
}
