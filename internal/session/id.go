package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// clientKeyBytes is the entropy behind a client key.
const clientKeyBytes = 32

// GenerateClientKey returns a fresh URL-safe key naming a client's marker.
// It is stored in the session cookie and never derived from the identity.
func GenerateClientKey() (string, error) {
	b := make([]byte, clientKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate client key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
