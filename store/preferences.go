package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PedroHSSoares-Dev/portfolio/prefs"
)

var _ prefs.Store = (*DB)(nil)

// Load implements prefs.Store.
func (d *DB) Load(ctx context.Context, id string) (prefs.Preferences, bool, error) {
	var theme, lang string
	err := d.db.QueryRowContext(ctx,
		`SELECT theme, language FROM preferences WHERE visitor_id = ?`, id,
	).Scan(&theme, &lang)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs.Preferences{}, false, nil
	}
	if err != nil {
		return prefs.Preferences{}, false, fmt.Errorf("load preferences: %w", err)
	}
	return prefs.Preferences{Theme: prefs.Theme(theme), Language: prefs.Language(lang)}, true, nil
}

// Save implements prefs.Store.
func (d *DB) Save(ctx context.Context, id string, p prefs.Preferences) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_id, theme, language, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(visitor_id) DO UPDATE SET
			theme = excluded.theme,
			language = excluded.language,
			updated_at = excluded.updated_at
	`, id, string(p.Theme), string(p.Language), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
