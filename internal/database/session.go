package database

import (
	"context"
	"database/sql"
	"errors"
)

// Querier represents a database query executor.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is a live handle to one database transaction. Sessions are created by
// a SessionFactory, tracked on a Context's session stack, and released exactly
// once through Close regardless of commit/rollback outcome.
type Session struct {
	tx *sql.Tx
}

// SessionFactory creates a new Session backed by a fresh transaction.
type SessionFactory func(ctx context.Context) (*Session, error)

// NewSessionFactory returns a SessionFactory that begins transactions on db.
func NewSessionFactory(db *sql.DB) SessionFactory {
	return func(ctx context.Context) (*Session, error) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		return &Session{tx: tx}, nil
	}
}

// Commit commits the session's transaction.
func (s *Session) Commit() error {
	return s.tx.Commit()
}

// Rollback rolls back the session's transaction.
func (s *Session) Rollback() error {
	return s.tx.Rollback()
}

// Close releases the session. A transaction that was neither committed nor
// rolled back is rolled back; a finished transaction is left alone.
func (s *Session) Close() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// ExecContext executes a query within the session's transaction.
func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.tx.ExecContext(ctx, query, args...)
}

// QueryContext executes a query within the session's transaction.
func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.tx.QueryContext(ctx, query, args...)
}

// QueryRowContext executes a single-row query within the session's transaction.
func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.tx.QueryRowContext(ctx, query, args...)
}
