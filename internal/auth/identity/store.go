// Package identity holds the identity store: the single owner of a client's
// current identity and its persisted session marker, and the only writer of
// the directory.
//
// A Store is bound to one client key. It is not safe for concurrent use;
// the HTTP layer builds one per request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"bibliotech-auth/internal/auth"
	"bibliotech-auth/internal/directory"
	"bibliotech-auth/internal/logger"
	"bibliotech-auth/internal/session"

	"github.com/google/uuid"
)

type Store struct {
	dir     directory.Directory
	markers session.Store
	key     string

	now   func() time.Time
	newID func() string

	current *auth.Identity
	ready   bool
}

type Option func(*Store)

// WithClock overrides the time source used for marker timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how registration assigns identifiers.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(dir directory.Directory, markers session.Store, clientKey string, opts ...Option) *Store {
	s := &Store{
		dir:     dir,
		markers: markers,
		key:     clientKey,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init restores the current identity from the client's marker and marks
// the store ready. A damaged marker is erased and the client starts
// anonymous; only backend failures are returned.
func (s *Store) Init(ctx context.Context) error {
	s.current = nil

	m, err := s.markers.Load(ctx, s.key)
	switch {
	case errors.Is(err, session.ErrCorruptMarker):
		logger.Warn("discarding corrupt session marker", map[string]any{
			"error": err.Error(),
		})
		if err := s.markers.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("identity: reset marker: %w", err)
		}
	case err != nil:
		return fmt.Errorf("identity: restore marker: %w", err)
	case m != nil:
		id := m.Identity.Clone()
		s.current = &id
	}

	s.ready = true
	return nil
}

// Teardown forgets in-memory state without touching persisted data.
func (s *Store) Teardown() {
	s.current = nil
	s.ready = false
}

// Ready reports whether Init has completed.
func (s *Store) Ready() bool {
	return s.ready
}

// Current returns a copy of the current identity, or nil when anonymous.
func (s *Store) Current() *auth.Identity {
	if s.current == nil {
		return nil
	}
	id := s.current.Clone()
	return &id
}

func (s *Store) IsAuthenticated() bool {
	return s.current != nil
}

func (s *Store) IsAdmin() bool {
	return s.current != nil && s.current.IsAdmin()
}

func (s *Store) IsUser() bool {
	return s.current != nil && s.current.IsUser()
}

func (s *Store) HasRole(role auth.Role) bool {
	return s.current != nil && s.current.HasRole(role)
}

func (s *Store) HasAnyRole(roles ...auth.Role) bool {
	return s.current != nil && slices.Contains(roles, s.current.Role)
}

// ----------------------------
// Session lifecycle
// ----------------------------

// Login authenticates against the directory. State changes only on success.
func (s *Store) Login(ctx context.Context, email, password string) (auth.Identity, error) {
	id, err := s.dir.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Info("login rejected", map[string]any{"email": email})
		}
		return auth.Identity{}, err
	}

	if err := s.establish(ctx, id); err != nil {
		return auth.Identity{}, err
	}

	logger.Info("login succeeded", map[string]any{
		"user_id": id.ID,
		"role":    id.Role,
	})
	return id.Clone(), nil
}

// Register creates a reader account and logs it in.
func (s *Store) Register(ctx context.Context, c auth.Candidate) (auth.Identity, error) {
	if err := c.Validate(); err != nil {
		return auth.Identity{}, err
	}

	exists, err := s.dir.EmailExists(ctx, c.Email)
	if err != nil {
		return auth.Identity{}, err
	}
	if exists {
		return auth.Identity{}, auth.ErrEmailAlreadyRegistered
	}

	progress := 0
	acct := auth.Account{
		Identity: auth.Identity{
			ID:        s.newID(),
			Email:     c.Email,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Role:      auth.RoleUser,
			Profile: auth.Profile{
				ReadingProgress: &progress,
				Books:           []string{},
				FavoriteGenres:  []string{},
			},
		},
		Password: c.Password,
	}

	if err := s.dir.Create(ctx, acct); err != nil {
		return auth.Identity{}, err
	}

	id := acct.Sanitize()
	if err := s.establish(ctx, id); err != nil {
		if derr := s.dir.Delete(ctx, id.ID); derr != nil {
			logger.Warn("failed to roll back registration", map[string]any{
				"user_id": id.ID,
				"error":   derr.Error(),
			})
		}
		return auth.Identity{}, err
	}

	logger.Info("user registered", map[string]any{"user_id": id.ID})
	return id.Clone(), nil
}

// Logout clears the current identity and erases the marker. It always
// succeeds; a marker backend failure is logged.
func (s *Store) Logout(ctx context.Context) {
	var userID string
	if s.current != nil {
		userID = s.current.ID
	}
	s.current = nil

	if err := s.markers.Delete(ctx, s.key); err != nil {
		logger.Warn("failed to erase session marker", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// establish persists the marker before exposing id as current.
func (s *Store) establish(ctx context.Context, id auth.Identity) error {
	snapshot := id.Clone()
	if err := s.markers.Save(ctx, s.key, session.Marker{
		Identity: snapshot,
		SavedAt:  s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("identity: persist marker: %w", err)
	}
	s.current = &snapshot
	return nil
}

// ----------------------------
// Self-service
// ----------------------------

// UpdateProfile merges patch into the directory entry of the current
// identity and refreshes the marker from the result. The role always
// comes from the directory, never from the marker.
func (s *Store) UpdateProfile(ctx context.Context, patch auth.ProfilePatch) (auth.Identity, error) {
	if s.current == nil {
		return auth.Identity{}, auth.ErrNotAuthenticated
	}

	stored, err := s.dir.Get(ctx, s.current.ID)
	if err != nil {
		return auth.Identity{}, err
	}

	next, err := patch.Apply(stored)
	if err != nil {
		return auth.Identity{}, err
	}

	if err := s.dir.Update(ctx, next); err != nil {
		return auth.Identity{}, err
	}
	if err := s.establish(ctx, next); err != nil {
		return auth.Identity{}, err
	}

	return next.Clone(), nil
}

// UpdateReadingProgress records reading progress. Only readers track it.
func (s *Store) UpdateReadingProgress(ctx context.Context, progress int) (auth.Identity, error) {
	if s.current == nil {
		return auth.Identity{}, auth.ErrNotAuthenticated
	}
	if !s.current.IsUser() {
		return auth.Identity{}, auth.ErrUnauthorized
	}
	return s.UpdateProfile(ctx, auth.ProfilePatch{ReadingProgress: &progress})
}

// ----------------------------
// Administration
// ----------------------------

// authorizeAdmin requires the requester to claim the admin role and to
// still hold it in the directory.
func (s *Store) authorizeAdmin(ctx context.Context, requester auth.Identity) error {
	if !requester.IsAdmin() {
		return auth.ErrUnauthorized
	}

	stored, err := s.dir.Get(ctx, requester.ID)
	if errors.Is(err, auth.ErrNotFound) {
		return auth.ErrUnauthorized
	}
	if err != nil {
		return err
	}
	if !stored.IsAdmin() {
		return auth.ErrUnauthorized
	}
	return nil
}

func (s *Store) ListIdentities(ctx context.Context, requester auth.Identity) ([]auth.Identity, error) {
	if err := s.authorizeAdmin(ctx, requester); err != nil {
		return nil, err
	}
	return s.dir.List(ctx)
}

// SetRole changes targetID's role. Reading progress is cleared on
// promotion and starts at 0 on demotion.
func (s *Store) SetRole(ctx context.Context, requester auth.Identity, targetID string, role auth.Role) error {
	if err := s.authorizeAdmin(ctx, requester); err != nil {
		return err
	}
	if targetID == requester.ID {
		return auth.ErrSelfModificationForbidden
	}
	if !role.Valid() {
		return auth.ErrInvalidRole
	}

	target, err := s.dir.Get(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.dir.Update(ctx, target.WithRole(role)); err != nil {
		return err
	}
	if err := s.dir.SetRole(ctx, targetID, role); err != nil {
		return err
	}

	logger.Info("role changed", map[string]any{
		"by":     requester.ID,
		"target": targetID,
		"role":   role,
	})
	return nil
}

// DeleteIdentity removes targetID from the directory. Markers held by
// other clients for that identity are not touched.
func (s *Store) DeleteIdentity(ctx context.Context, requester auth.Identity, targetID string) error {
	if err := s.authorizeAdmin(ctx, requester); err != nil {
		return err
	}
	if targetID == requester.ID {
		return auth.ErrSelfModificationForbidden
	}

	if err := s.dir.Delete(ctx, targetID); err != nil {
		return err
	}

	logger.Info("user deleted", map[string]any{
		"by":     requester.ID,
		"target": targetID,
	})
	return nil
}
