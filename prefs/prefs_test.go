package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Light, ParseTheme("light"))
	assert.Equal(t, Dark, ParseTheme("dark"))
	assert.Equal(t, DefaultTheme, ParseTheme("sepia"))
	assert.Equal(t, DefaultTheme, ParseTheme(""))

	assert.Equal(t, English, ParseLanguage("en"))
	assert.Equal(t, Portuguese, ParseLanguage("pt"))
	assert.Equal(t, DefaultLanguage, ParseLanguage("fr"))
}

func TestToggleIsInvolution(t *testing.T) {
	for _, th := range []Theme{Dark, Light} {
		assert.NotEqual(t, th, th.Toggle())
		assert.Equal(t, th, th.Toggle().Toggle())
	}
	for _, l := range []Language{Portuguese, English} {
		assert.NotEqual(t, l, l.Toggle())
		assert.Equal(t, l, l.Toggle().Toggle())
	}
}

func TestLanguageTag(t *testing.T) {
	assert.Equal(t, "pt-BR", Portuguese.Tag().String())
	assert.Equal(t, "en-US", English.Tag().String())
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		header string
		want   Language
	}{
		{"", Portuguese},
		{"en-US,en;q=0.9", English},
		{"en-GB", English},
		{"pt-PT,pt;q=0.9,en;q=0.5", Portuguese},
		{"fr-FR", Portuguese},
		{"not a header;;", Portuguese},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.header))
		})
	}
}

func TestServiceToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)

	p, err := svc.Get(ctx, "v1", Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)

	p, err = svc.ToggleTheme(ctx, "v1", Defaults())
	require.NoError(t, err)
	assert.Equal(t, Light, p.Theme)

	p, err = svc.ToggleLanguage(ctx, "v1", Defaults())
	require.NoError(t, err)
	assert.Equal(t, Preferences{Theme: Light, Language: English}, p)

	// a fresh service over the same store is a reload
	reloaded, err := NewService(store).Get(ctx, "v1", Defaults())
	require.NoError(t, err)
	assert.Equal(t, p, reloaded)

	p, err = svc.ToggleTheme(ctx, "v1", Defaults())
	require.NoError(t, err)
	p, err = svc.ToggleLanguage(ctx, "v1", Defaults())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)

	other, err := svc.Get(ctx, "v2", Preferences{Theme: Light, Language: "xx"})
	require.NoError(t, err)
	assert.Equal(t, Preferences{Theme: Light, Language: Portuguese}, other)
}

type failingStore struct{}

var errStore = errors.New("store down")

func (failingStore) Load(context.Context, string) (Preferences, bool, error) {
	return Preferences{}, false, errStore
}

func (failingStore) Save(context.Context, string, Preferences) error { return errStore }

func TestServiceSurfacesStoreErrors(t *testing.T) {
	svc := NewService(failingStore{})
	p, err := svc.Get(context.Background(), "v", Preferences{Theme: Light})
	assert.ErrorIs(t, err, errStore)
	assert.Equal(t, Light, p.Theme)

	_, err = svc.ToggleTheme(context.Background(), "v", Defaults())
	assert.ErrorIs(t, err, errStore)
}

func TestMemoryStoreZeroValue(t *testing.T) {
	var m MemoryStore
	require.NoError(t, m.Save(context.Background(), "a", Defaults()))
	p, ok, err := m.Load(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Defaults(), p)
}
