package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

const (
	keyToken     = "token"
	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

// Get returns the stored session. A store without a token counts as empty.
func (r *SQLiteRepository) Get(ctx context.Context) (*Session, error) {
	token, err := r.get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	s := &Session{Token: token}

	if v, err := r.get(ctx, keyUserID); err != nil {
		return nil, err
	} else if v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt session user id %q: %w", v, err)
		}
		s.User.ID = id
	}

	if s.User.Name, err = r.get(ctx, keyUserName); err != nil {
		return nil, err
	}
	if s.User.Email, err = r.get(ctx, keyUserEmail); err != nil {
		return nil, err
	}
	return s, nil
}

// Set stores the session atomically, replacing any previous one.
func (r *SQLiteRepository) Set(ctx context.Context, s *Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session write: %w", err)
	}
	defer tx.Rollback()

	pairs := map[string]string{
		keyToken:     s.Token,
		keyUserID:    strconv.FormatInt(s.User.ID, 10),
		keyUserName:  s.User.Name,
		keyUserEmail: s.User.Email,
	}
	for key, value := range pairs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set session[%s]: %w", key, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
