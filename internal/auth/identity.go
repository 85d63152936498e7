package auth

import "slices"

// Role is the coarse permission level carried by every identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Profile holds the free-form attributes an identity edits about itself.
type Profile struct {
	Bio            string   `json:"bio,omitempty"`
	FavoriteGenres []string `json:"favoriteGenres,omitempty"`
	Avatar         string   `json:"avatar,omitempty"`
	Books          []string `json:"books,omitempty"`

	// ReadingProgress is a percentage (0..100). Only readers carry it;
	// it stays nil for admins.
	ReadingProgress *int `json:"readingProgress,omitempty"`
}

// Progress returns the reading progress, or 0 when none is recorded.
func (p Profile) Progress() int {
	if p.ReadingProgress == nil {
		return 0
	}
	return *p.ReadingProgress
}

func (p Profile) clone() Profile {
	out := p
	out.FavoriteGenres = slices.Clone(p.FavoriteGenres)
	out.Books = slices.Clone(p.Books)
	if p.ReadingProgress != nil {
		v := *p.ReadingProgress
		out.ReadingProgress = &v
	}
	return out
}

// Identity is an authenticated principal as seen by the rest of the
// application. It never carries a credential.
type Identity struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Role      Role    `json:"role"`
	Profile   Profile `json:"profile"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) IsUser() bool {
	return i.Role == RoleUser
}

func (i Identity) HasRole(role Role) bool {
	return i.Role == role
}

// Clone returns a deep copy so callers cannot alias slices or pointers
// owned by a store.
func (i Identity) Clone() Identity {
	out := i
	out.Profile = i.Profile.clone()
	return out
}

// WithRole returns a copy holding role. Reading progress follows the
// role: readers start at 0 when they had none, admins carry none.
func (i Identity) WithRole(role Role) Identity {
	out := i.Clone()
	out.Role = role
	switch role {
	case RoleAdmin:
		out.Profile.ReadingProgress = nil
	case RoleUser:
		if out.Profile.ReadingProgress == nil {
			zero := 0
			out.Profile.ReadingProgress = &zero
		}
	}
	return out
}

// Account is a directory entry: an identity plus its login credential.
type Account struct {
	Identity
	Password string
}

// Sanitize strips the credential.
func (a Account) Sanitize() Identity {
	return a.Identity.Clone()
}

// Candidate is the input to registration.
type Candidate struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate checks the fields the signup form marks as required.
func (c Candidate) Validate() error {
	if c.Email == "" || c.Password == "" {
		return ErrInvalidCandidate
	}
	return nil
}

// ProfilePatch describes a partial profile update. Nil fields are left
// unchanged.
type ProfilePatch struct {
	FirstName       *string   `json:"firstName,omitempty"`
	LastName        *string   `json:"lastName,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	Avatar          *string   `json:"avatar,omitempty"`
	FavoriteGenres  *[]string `json:"favoriteGenres,omitempty"`
	ReadingProgress *int      `json:"readingProgress,omitempty"`
}

// Apply merges the patch into a copy of id and returns it. Reading
// progress is only applied to readers.
func (p ProfilePatch) Apply(id Identity) (Identity, error) {
	out := id.Clone()

	if p.FirstName != nil {
		out.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		out.LastName = *p.LastName
	}
	if p.Bio != nil {
		out.Profile.Bio = *p.Bio
	}
	if p.Avatar != nil {
		out.Profile.Avatar = *p.Avatar
	}
	if p.FavoriteGenres != nil {
		out.Profile.FavoriteGenres = slices.Clone(*p.FavoriteGenres)
	}
	if p.ReadingProgress != nil && out.IsUser() {
		v := *p.ReadingProgress
		if v < 0 || v > 100 {
			return Identity{}, ErrInvalidProgress
		}
		out.Profile.ReadingProgress = &v
	}

	return out, nil
}
