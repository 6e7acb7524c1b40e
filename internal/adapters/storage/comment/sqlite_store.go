package comment

import (
	"context"
	"fmt"
	"time"

	storage "github.com/crazyman1830/jsonformatter/internal/adapters/storage"
	domain "github.com/crazyman1830/jsonformatter/internal/domain/comment"
)

type sqliteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore returns a Store backed by SQLite.
func NewSQLiteStore(db storage.SQLDB) Store {
	return &sqliteStore{db: db}
}

// Save replaces the stored lines for a session.
// PRE: set.SessionID passes domain.ValidateSessionID
// POST: comment_line holds exactly set.Lines for the session, last writer wins
func (s *sqliteStore) Save(ctx context.Context, set domain.Set) error {
	if err := domain.ValidateSessionID(set.SessionID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("comment save begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comment_line WHERE session_id = ?`, set.SessionID); err != nil {
		return fmt.Errorf("comment save clear: %w", err)
	}

	updatedAt := set.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	stamp := updatedAt.UTC().Format(time.RFC3339)

	for i, line := range set.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comment_line (session_id, idx, body, updated_at)
			VALUES (?,?,?,?)`,
			set.SessionID, i, line, stamp,
		); err != nil {
			return fmt.Errorf("comment save line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("comment save commit: %w", err)
	}
	return nil
}

// Load retrieves the stored lines for a session.
// PRE: sessionID passes domain.ValidateSessionID
// POST: returns lines in index order; unknown sessions yield an empty Set
func (s *sqliteStore) Load(ctx context.Context, sessionID string) (domain.Set, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return domain.Set{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT body, updated_at FROM comment_line
		WHERE session_id = ? ORDER BY idx`, sessionID)
	if err != nil {
		return domain.Set{}, fmt.Errorf("comment load: %w", err)
	}
	defer rows.Close()

	set := domain.Set{SessionID: sessionID}
	for rows.Next() {
		var body, stamp string
		if err := rows.Scan(&body, &stamp); err != nil {
			return domain.Set{}, fmt.Errorf("comment load scan: %w", err)
		}
		set.Lines = append(set.Lines, body)
		set.UpdatedAt, _ = time.Parse(time.RFC3339, stamp)
	}
	if err := rows.Err(); err != nil {
		return domain.Set{}, fmt.Errorf("comment load rows: %w", err)
	}
	return set, nil
}

// Clear removes all stored lines for a session.
// PRE: sessionID passes domain.ValidateSessionID
// POST: the session holds no lines; clearing an unknown session is a no-op
func (s *sqliteStore) Clear(ctx context.Context, sessionID string) error {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM comment_line WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("comment clear: %w", err)
	}
	return nil
}

// Exists reports whether a session holds at least one line.
func (s *sqliteStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	if err := domain.ValidateSessionID(sessionID); err != nil {
		return false, err
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comment_line WHERE session_id = ?`, sessionID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("comment exists: %w", err)
	}
	return n > 0, nil
}
