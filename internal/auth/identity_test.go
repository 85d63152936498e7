package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("librarian").Valid())
	assert.False(t, Role("").Valid())
}

func TestProfileProgressDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, Profile{}.Progress())
	assert.Equal(t, 35, Profile{ReadingProgress: ptr(35)}.Progress())
}

func TestSanitizeDoesNotAlias(t *testing.T) {
	acct := Account{
		Identity: Identity{
			ID:      "2",
			Email:   "john.doe@email.com",
			Role:    RoleUser,
			Profile: Profile{Books: []string{"book1"}, ReadingProgress: ptr(10)},
		},
		Password: "user123",
	}

	id := acct.Sanitize()
	id.Profile.Books[0] = "changed"
	*id.Profile.ReadingProgress = 99

	assert.Equal(t, "book1", acct.Profile.Books[0])
	assert.Equal(t, 10, acct.Profile.Progress())
}

func TestCandidateValidate(t *testing.T) {
	assert.NoError(t, Candidate{Email: "a@b.c", Password: "x"}.Validate())
	assert.ErrorIs(t, Candidate{Email: "a@b.c"}.Validate(), ErrInvalidCandidate)
	assert.ErrorIs(t, Candidate{Password: "x"}.Validate(), ErrInvalidCandidate)
}

func TestProfilePatchApply(t *testing.T) {
	reader := Identity{ID: "2", FirstName: "John", Role: RoleUser, Profile: Profile{ReadingProgress: ptr(35)}}
	admin := Identity{ID: "1", FirstName: "Admin", Role: RoleAdmin}

	t.Run("merges set fields only", func(t *testing.T) {
		out, err := ProfilePatch{
			LastName:       ptr("Doe"),
			Bio:            ptr("likes novels"),
			FavoriteGenres: ptr([]string{"Fiction", "Poetry"}),
		}.Apply(reader)
		require.NoError(t, err)
		assert.Equal(t, "John", out.FirstName)
		assert.Equal(t, "Doe", out.LastName)
		assert.Equal(t, "likes novels", out.Profile.Bio)
		assert.Equal(t, []string{"Fiction", "Poetry"}, out.Profile.FavoriteGenres)
		assert.Equal(t, 35, out.Profile.Progress())
	})

	t.Run("reading progress for readers", func(t *testing.T) {
		out, err := ProfilePatch{ReadingProgress: ptr(80)}.Apply(reader)
		require.NoError(t, err)
		assert.Equal(t, 80, out.Profile.Progress())
		assert.Equal(t, 35, reader.Profile.Progress())
	})

	t.Run("reading progress ignored for admins", func(t *testing.T) {
		out, err := ProfilePatch{ReadingProgress: ptr(80)}.Apply(admin)
		require.NoError(t, err)
		assert.Nil(t, out.Profile.ReadingProgress)
	})

	t.Run("reading progress out of range", func(t *testing.T) {
		_, err := ProfilePatch{ReadingProgress: ptr(101)}.Apply(reader)
		assert.ErrorIs(t, err, ErrInvalidProgress)
		_, err = ProfilePatch{ReadingProgress: ptr(-1)}.Apply(reader)
		assert.ErrorIs(t, err, ErrInvalidProgress)
	})
}

func TestWithRole(t *testing.T) {
	reader := Identity{ID: "2", Role: RoleUser, Profile: Profile{ReadingProgress: ptr(35), Books: []string{"book1"}}}

	promoted := reader.WithRole(RoleAdmin)
	assert.True(t, promoted.IsAdmin())
	assert.Nil(t, promoted.Profile.ReadingProgress)
	assert.Equal(t, []string{"book1"}, promoted.Profile.Books)
	assert.Equal(t, 35, reader.Profile.Progress())

	demoted := promoted.WithRole(RoleUser)
	require.NotNil(t, demoted.Profile.ReadingProgress)
	assert.Equal(t, 0, *demoted.Profile.ReadingProgress)

	assert.Equal(t, 35, reader.WithRole(RoleUser).Profile.Progress())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "invalid_credentials", Kind(ErrInvalidCredentials))
	assert.Equal(t, "not_found", Kind(fmt.Errorf("directory: %w", ErrNotFound)))
	assert.Equal(t, "self_modification_forbidden", Kind(ErrSelfModificationForbidden))
	assert.Equal(t, "internal", Kind(fmt.Errorf("boom")))
}
