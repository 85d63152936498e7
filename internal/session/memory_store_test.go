package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	got, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, "k", Marker{Identity: reader()}))
	got, err = store.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2", got.Identity.ID)

	require.NoError(t, store.Delete(ctx, "k"))
	got, err = store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	store.Put("k", []byte("garbage"))
	_, err = store.Load(ctx, "k")
	assert.ErrorIs(t, err, ErrCorruptMarker)
}

func TestGenerateClientKey(t *testing.T) {
	a, err := GenerateClientKey()
	require.NoError(t, err)
	b, err := GenerateClientKey()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}

func TestCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCookie(rec, "abc", CookieOptions{Secure: true})

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	key, ok := ClientKey(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", key)

	_, ok = ClientKey(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
