package auth

import "errors"

var (
	ErrInvalidCredentials        = errors.New("invalid email or password")
	ErrEmailAlreadyRegistered    = errors.New("email already registered")
	ErrNotAuthenticated          = errors.New("not authenticated")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrSelfModificationForbidden = errors.New("cannot modify own account")
	ErrNotFound                  = errors.New("user not found")

	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidProgress  = errors.New("reading progress must be between 0 and 100")
	ErrInvalidCandidate = errors.New("email and password are required")
)

var kinds = []struct {
	err  error
	code string
}{
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrEmailAlreadyRegistered, "email_already_registered"},
	{ErrNotAuthenticated, "not_authenticated"},
	{ErrUnauthorized, "unauthorized"},
	{ErrSelfModificationForbidden, "self_modification_forbidden"},
	{ErrNotFound, "not_found"},
	{ErrInvalidRole, "invalid_role"},
	{ErrInvalidProgress, "invalid_progress"},
	{ErrInvalidCandidate, "invalid_candidate"},
}

// Kind returns the stable machine code for err, or "internal" when err is
// not one of the package's sentinel errors.
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return "internal"
}
