package store

import (
	"context"
	"fmt"
	"time"
)

// Visitor is one tracked page view. The IP is stored hashed.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Language  string    `json:"language,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// PathCount is a path with its view count.
type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats is what the admin dashboard shows.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	Themes           map[string]int64 `json:"themes"`
	Languages        map[string]int64 `json:"languages"`
	Messages         int64            `json:"messages"`
	TopPaths         []PathCount      `json:"top_paths"`
	RecentVisitors   []Visitor        `json:"recent_visitors"`
}

// TrackVisitor records a page view.
func (d *DB) TrackVisitor(ctx context.Context, v Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, language, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Language, v.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

// CleanupVisitors deletes visits older than cutoff and returns how many
// were removed.
func (d *DB) CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}

// RecentVisitors returns the latest visits, newest first.
func (d *DB) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), COALESCE(language, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Language, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}

func (d *DB) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := d.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *DB) grouped(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, rows.Err()
}

// Stats gathers dashboard statistics as of now.
func (d *DB) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if stats.TotalVisitors, err = d.count(ctx, `SELECT COUNT(*) FROM visitors`); err != nil {
		return nil, fmt.Errorf("total visitors: %w", err)
	}
	if stats.UniqueVisitors, err = d.count(ctx, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`); err != nil {
		return nil, fmt.Errorf("unique visitors: %w", err)
	}
	if stats.VisitorsToday, err = d.count(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, today.Unix()); err != nil {
		return nil, fmt.Errorf("visitors today: %w", err)
	}
	if stats.VisitorsThisWeek, err = d.count(ctx,
		`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, now.Add(-7*24*time.Hour).Unix()); err != nil {
		return nil, fmt.Errorf("visitors this week: %w", err)
	}
	if stats.Messages, err = d.count(ctx, `SELECT COUNT(*) FROM messages`); err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	if stats.Themes, err = d.grouped(ctx, `SELECT theme, COUNT(*) FROM preferences GROUP BY theme`); err != nil {
		return nil, fmt.Errorf("theme counts: %w", err)
	}
	if stats.Languages, err = d.grouped(ctx, `SELECT language, COUNT(*) FROM preferences GROUP BY language`); err != nil {
		return nil, fmt.Errorf("language counts: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if stats.RecentVisitors, err = d.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}
