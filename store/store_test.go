package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	_, ok, err := db.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.False(t, ok)

	want := prefs.Preferences{Theme: prefs.Light, Language: prefs.English}
	require.NoError(t, db.Save(ctx, "visitor", want))
	got, ok, err := db.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	want.Theme = prefs.Dark
	require.NoError(t, db.Save(ctx, "visitor", want))
	got, _, err = db.Load(ctx, "visitor")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestServiceOverSQLiteSurvivesReload(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	p, err := prefs.NewService(db).ToggleLanguage(ctx, "v", prefs.Defaults())
	require.NoError(t, err)
	assert.Equal(t, prefs.English, p.Language)

	reloaded, err := prefs.NewService(db).Get(ctx, "v", prefs.Defaults())
	require.NoError(t, err)
	assert.Equal(t, p, reloaded)
}

func TestVisitorsAndStats(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

	visits := []Visitor{
		{HashedIP: "a", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "a", Path: "/sections/projects", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "b", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "c", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, db.TrackVisitor(ctx, v))
	}
	require.NoError(t, db.Save(ctx, "x", prefs.Preferences{Theme: prefs.Light, Language: prefs.English}))
	require.NoError(t, db.Save(ctx, "y", prefs.Defaults()))
	_, err := db.SaveMessage(ctx, Message{Name: "n", Email: "e@example.com", Body: "hi"})
	require.NoError(t, err)

	stats, err := db.Stats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	assert.EqualValues(t, 1, stats.Messages)
	assert.Equal(t, map[string]int64{"light": 1, "dark": 1}, stats.Themes)
	assert.Equal(t, map[string]int64{"en": 1, "pt": 1}, stats.Languages)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathCount{Path: "/", Views: 3}, stats.TopPaths[0])
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "a", stats.RecentVisitors[0].HashedIP)
	assert.Equal(t, now.Add(-time.Hour), stats.RecentVisitors[0].Timestamp)

	removed, err := db.CleanupVisitors(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	id, err := db.SaveMessage(ctx, Message{Name: "Ana", Email: "ana@example.com", Body: "Olá"})
	require.NoError(t, err)
	require.NoError(t, db.MarkDelivered(ctx, id))

	msgs, err := db.Messages(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Ana", msgs[0].Name)
	assert.True(t, msgs[0].Delivered)
	assert.NoError(t, db.Ping(ctx))
}
