// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Message model and repository methods for the welcome
// messages served by the root endpoint. Exactly one message is active at a
// time; the active one is what GET / returns.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
)

// DefaultWelcome is the row seeded into an empty messages table so the root
// endpoint always has something to serve on a fresh database.
const DefaultWelcome = "Welcome to the two-tier demo application"

// Message represents a welcome message persisted in the database. The ID
// field is the primary key and is auto-incremented by the DB.
type Message struct {
	ID        uint64 // ID is the unique identifier of the message
	Body      string // Body is the text returned to clients
	IsActive  bool   // IsActive marks the single message served by GET /
	CreatedAt string // CreatedAt stores when the row was created (timestamp in DB timezone)
	UpdatedAt string // UpdatedAt stores when the row was last updated
}

// ErrMessageNotFound is returned when no matching message exists in the DB.
var ErrMessageNotFound = errors.New("message not found")

// MessageRepo encapsulates all database queries related to welcome messages.
// It depends on a sql.DB connection which should be configured elsewhere.
type MessageRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMessageRepo constructs a MessageRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.  There is no initialization logic beyond assigning the field.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// EnsureSchema creates the messages table when it does not exist and seeds
// the default welcome row when the table is empty. Both statements are
// idempotent so the method is safe to run on every startup.
func (r *MessageRepo) EnsureSchema(ctx context.Context) error {
	const qCreate = `CREATE TABLE IF NOT EXISTS messages (
	    id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	    body TEXT NOT NULL,
	    is_active TINYINT(1) NOT NULL DEFAULT 0,
	    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`
	if _, err := r.db.ExecContext(ctx, qCreate); err != nil {
		return err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (body, is_active) VALUES (?, 1)", DefaultWelcome)
	return err
}

// Active returns the body of the currently active welcome message.  It
// returns ErrMessageNotFound when no message is marked active, which the
// handler translates into a 404 rather than a crash.
func (r *MessageRepo) Active(ctx context.Context) (string, error) {
	const q = "SELECT body FROM messages WHERE is_active = 1 ORDER BY id DESC LIMIT 1"
	var body string
	if err := r.db.QueryRowContext(ctx, q).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMessageNotFound
		}
		return "", err
	}
	return body, nil
}

// GetByID fetches a message by its ID.  It returns ErrMessageNotFound if no
// row is found.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (*Message, error) {
	const q = "SELECT id, body, is_active, created_at, updated_at FROM messages WHERE id = ?"
	var m Message
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Body, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all messages ordered by id.
func (r *MessageRepo) List(ctx context.Context) ([]*Message, error) {
	const q = `SELECT id, body, is_active, created_at, updated_at
	           FROM messages ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Message
	for rows.Next() {
		m := new(Message)
		if err := rows.Scan(&m.ID, &m.Body, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new inactive message into the database.  On success the
// message's ID field will be populated with the auto-generated value.  After
// the insert, a SELECT is executed to populate the timestamp fields so that
// callers receive a fully populated record.
func (r *MessageRepo) Create(ctx context.Context, m *Message) error {
	const qInsert = "INSERT INTO messages (body, is_active) VALUES (?, 0)"
	res, err := r.db.ExecContext(ctx, qInsert, m.Body)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	const qSelect = "SELECT body, is_active, created_at, updated_at FROM messages WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, qSelect, m.ID).Scan(&m.Body, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// Activate marks the given message as the one served by GET / and clears the
// flag on every other row. Both statements run inside a transaction so
// readers never observe zero or two active messages.  ErrMessageNotFound is
// returned when the id does not exist.
func (r *MessageRepo) Activate(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	// Verify the target exists before touching any flags.
	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM messages WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMessageNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "UPDATE messages SET is_active = 0 WHERE is_active = 1"); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE messages SET is_active = 1, updated_at = CURRENT_TIMESTAMP WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
