package session

import (
	"context"
	"errors"
	"time"

	"bibliotech-auth/internal/auth"
)

// ErrCorruptMarker is returned by Load when a stored marker cannot be
// decoded. Callers should treat the client as anonymous and delete it.
var ErrCorruptMarker = errors.New("session: corrupt marker")

// Marker is the persisted record that lets a login survive a restart.
// It holds a sanitized identity snapshot and nothing else.
type Marker struct {
	Identity auth.Identity `json:"identity"`
	SavedAt  time.Time     `json:"savedAt"`
}

// Store persists one marker per client key.
// Only the identity store may read or write markers.
type Store interface {
	// Load returns the marker for key, or (nil, nil) when none exists.
	Load(ctx context.Context, key string) (*Marker, error)
	Save(ctx context.Context, key string, m Marker) error
	Delete(ctx context.Context, key string) error
}
