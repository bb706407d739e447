package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestLoadBothLanguages(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	pt := c.For(prefs.Portuguese)
	en := c.For(prefs.English)
	assert.Equal(t, "sobre", pt.Nav.About)
	assert.Equal(t, "about", en.Nav.About)
	assert.Equal(t, "Transformando dados em", pt.Hero.Title)
	assert.Equal(t, "Featured Projects", en.Projects.Title)
	assert.Equal(t, prefs.English, en.Lang)

	// same structure in both languages
	assert.Len(t, en.Projects.Items, len(pt.Projects.Items))
	assert.Len(t, en.Education.Items, len(pt.Education.Items))
	assert.Len(t, en.Skills.Categories, len(pt.Skills.Categories))
	for i := range pt.Projects.Items {
		assert.Equal(t, pt.Projects.Items[i].URL, en.Projects.Items[i].URL)
	}

	assert.Same(t, pt, c.For("xx"))
}

func TestNavItemsKeepAnchors(t *testing.T) {
	c := MustLoad()
	pt := c.For(prefs.Portuguese).Nav.Items()
	en := c.For(prefs.English).Nav.Items()
	require.Len(t, en, 6)
	for i := range pt {
		assert.Equal(t, pt[i].ID, en[i].ID)
	}
	assert.Equal(t, NavItem{"projetos", "projects"}, en[3])
}

func TestProjectsVisible(t *testing.T) {
	p := MustLoad().For(prefs.English).Projects
	require.True(t, p.HasMore())
	assert.Len(t, p.Visible(false), FeaturedProjects)
	assert.Len(t, p.Visible(true), len(p.Items))
}

func TestFooterYear(t *testing.T) {
	f := MustLoad().For(prefs.English).Footer
	assert.Equal(t, "© 2026 Pedro Henrique Simão Soares. All rights reserved.", f.RightsFor(2026))
}

func TestFormatDuration(t *testing.T) {
	now := date(2026, time.March)
	tests := []struct {
		start, end string
		lang       prefs.Language
		want       string
	}{
		{"2024-01", "2025-06", prefs.Portuguese, "1a5m"},
		{"2024-01", "2025-06", prefs.English, "1y5m"},
		{"2025-08", "", prefs.Portuguese, "7m"},
		{"2024-03", "", prefs.Portuguese, "2a"},
		{"2025-11", "2025-02", prefs.Portuguese, "0m"},
	}
	for _, tt := range tests {
		got, err := FormatDuration(tt.start, tt.end, tt.lang, now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s..%s", tt.start, tt.end)
	}

	_, err := FormatDuration("2024/01", "", prefs.Portuguese, now)
	assert.Error(t, err)
}

func TestFormatPeriod(t *testing.T) {
	got, err := FormatPeriod("2025-08", "", prefs.Portuguese)
	require.NoError(t, err)
	assert.Equal(t, "Ago/25 - Hoje", got)

	got, err = FormatPeriod("2025-08", "", prefs.English)
	require.NoError(t, err)
	assert.Equal(t, "Aug/25 - Present", got)

	got, err = FormatPeriod("2023-01", "2024-06", prefs.Portuguese)
	require.NoError(t, err)
	assert.Equal(t, "Jan/23 - Jun/24", got)

	_, err = FormatPeriod("2023-01", "2024-13", prefs.English)
	assert.Error(t, err)
}

func TestSemesterProgress(t *testing.T) {
	p, err := SemesterProgress("2025-02", "2026-12", 4, date(2027, time.January))
	require.NoError(t, err)
	assert.Equal(t, Progress{Current: 4, Total: 4, Percent: 100}, p)

	p, err = SemesterProgress("2025-02", "2026-12", 4, date(2024, time.January))
	require.NoError(t, err)
	assert.Equal(t, Progress{Current: 0, Total: 4, Percent: 0}, p)

	p, err = SemesterProgress("2025-01", "2027-01", 4, date(2026, time.January))
	require.NoError(t, err)
	assert.Equal(t, 2, p.Current)
	assert.InDelta(t, 50, p.Percent, 1)
}

func TestCoursesAndJobs(t *testing.T) {
	d := MustLoad().For(prefs.Portuguese)
	courses, err := d.Courses(date(2026, time.March))
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Em andamento", courses[0].Status)
	assert.Equal(t, "Fev/25 - Dez/26", courses[0].Period)
	assert.Equal(t, "Concluído", courses[1].Status)

	jobs, err := d.Jobs(date(2026, time.March))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Current())
	assert.Equal(t, "Ago/25 - Hoje", jobs[0].Period)
	assert.Equal(t, "7m", jobs[0].Duration)
}
