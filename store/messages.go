package store

import (
	"context"
	"fmt"
	"time"
)

// Message is a contact form submission.
type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveMessage stores a submission and returns its id.
func (d *DB) SaveMessage(ctx context.Context, m Message) (int64, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	res, err := d.db.ExecContext(ctx, `
		INSERT INTO messages (name, email, body, delivered, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.Email, m.Body, m.Delivered, m.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("save message: %w", err)
	}
	return res.LastInsertId()
}

// MarkDelivered flags a message as sent by mail.
func (d *DB) MarkDelivered(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `UPDATE messages SET delivered = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark message %d delivered: %w", id, err)
	}
	return nil
}

// Messages returns submissions, newest first.
func (d *DB) Messages(ctx context.Context, limit int) ([]Message, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name, email, body, delivered, created_at
		FROM messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var ts int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.Delivered, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}
