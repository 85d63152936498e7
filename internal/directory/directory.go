package directory

import (
	"context"

	"bibliotech-auth/internal/auth"
)

// Directory is the set of known accounts. It is the ONLY place where
// credentials are stored or compared; everything it returns is sanitized.
//
// Lookups by email are exact and case-sensitive.
type Directory interface {
	// Authenticate returns the identity whose email and password both match,
	// or auth.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (auth.Identity, error)

	// Get returns the identity with the given id, or auth.ErrNotFound.
	Get(ctx context.Context, id string) (auth.Identity, error)

	EmailExists(ctx context.Context, email string) (bool, error)

	// Create appends a new account. It fails with
	// auth.ErrEmailAlreadyRegistered if the email is taken.
	Create(ctx context.Context, acct auth.Account) error

	// Update replaces the names and profile of an existing entry.
	// Email, role and credential are left untouched; roles change only
	// through SetRole.
	Update(ctx context.Context, id auth.Identity) error

	SetRole(ctx context.Context, id string, role auth.Role) error
	Delete(ctx context.Context, id string) error

	// List returns every entry in insertion order.
	List(ctx context.Context) ([]auth.Identity, error)
}
