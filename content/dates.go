package content

import (
	"fmt"
	"math"
	"time"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

const monthLayout = "2006-01"

// ParseMonth parses a "YYYY-MM" date as the first day of that month, UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return t, nil
}

// endOrNow parses end, or returns now when end is empty.
func endOrNow(end string, now time.Time) (time.Time, error) {
	if end == "" {
		return now, nil
	}
	return ParseMonth(end)
}

// Duration returns whole years and months between start and end. An empty
// end means now.
func Duration(start, end string, now time.Time) (years, months int, err error) {
	s, err := ParseMonth(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := endOrNow(end, now)
	if err != nil {
		return 0, 0, err
	}
	if e.Before(s) {
		return 0, 0, nil
	}
	years = e.Year() - s.Year()
	months = int(e.Month()) - int(s.Month())
	if months < 0 {
		years--
		months += 12
	}
	return years, months, nil
}

var yearSuffix = map[prefs.Language]string{
	prefs.Portuguese: "a",
	prefs.English:    "y",
}

// FormatDuration renders a tenure compactly: "5m", "2a", "1a5m" in
// Portuguese, with "y" for years in English.
func FormatDuration(start, end string, lang prefs.Language, now time.Time) (string, error) {
	y, m, err := Duration(start, end, now)
	if err != nil {
		return "", err
	}
	suffix := yearSuffix[prefs.ParseLanguage(string(lang))]
	switch {
	case y == 0:
		return fmt.Sprintf("%dm", m), nil
	case m == 0:
		return fmt.Sprintf("%d%s", y, suffix), nil
	}
	return fmt.Sprintf("%d%s%dm", y, suffix, m), nil
}

var (
	monthNames = map[prefs.Language][12]string{
		prefs.Portuguese: {"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"},
		prefs.English:    {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	}
	presentText = map[prefs.Language]string{
		prefs.Portuguese: "Hoje",
		prefs.English:    "Present",
	}
)

func shortMonth(t time.Time, lang prefs.Language) string {
	return fmt.Sprintf("%s/%02d", monthNames[lang][t.Month()-1], t.Year()%100)
}

// FormatPeriod renders "Ago/25 - Hoje" style periods. An empty end is the
// present.
func FormatPeriod(start, end string, lang prefs.Language) (string, error) {
	lang = prefs.ParseLanguage(string(lang))
	s, err := ParseMonth(start)
	if err != nil {
		return "", err
	}
	to := presentText[lang]
	if end != "" {
		e, err := ParseMonth(end)
		if err != nil {
			return "", err
		}
		to = shortMonth(e, lang)
	}
	return shortMonth(s, lang) + " - " + to, nil
}

// Progress is how far a course has gone.
type Progress struct {
	Current int
	Total   int
	Percent int
}

// SemesterProgress estimates the current semester of a course from elapsed
// time.
func SemesterProgress(start, end string, total int, now time.Time) (Progress, error) {
	s, err := ParseMonth(start)
	if err != nil {
		return Progress{}, err
	}
	e, err := ParseMonth(end)
	if err != nil {
		return Progress{}, err
	}
	switch {
	case !now.Before(e):
		return Progress{Current: total, Total: total, Percent: 100}, nil
	case now.Before(s):
		return Progress{Current: 0, Total: total, Percent: 0}, nil
	}

	ratio := float64(now.Sub(s)) / float64(e.Sub(s))
	return Progress{
		Current: min(total, int(math.Ceil(ratio*float64(total)))),
		Total:   total,
		Percent: int(math.Round(min(100, max(0, ratio*100)))),
	}, nil
}
