package credentials

import "crypto/subtle"

// Matches reports whether supplied equals the stored credential exactly.
// The comparison time does not depend on where the strings differ.
func Matches(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
