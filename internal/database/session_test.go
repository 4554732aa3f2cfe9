package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockFactory(t *testing.T) (SessionFactory, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSessionFactory(db), mock
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSessionFactory(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	session, err := factory(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CommitThenClose(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	session, err := factory(context.Background())
	require.NoError(t, err)

	assert.NoError(t, session.Commit())
	// The transaction is already finished; Close must not surface ErrTxDone.
	assert.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_RollbackThenClose(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	session, err := factory(context.Background())
	require.NoError(t, err)

	assert.NoError(t, session.Rollback())
	assert.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CloseRollsBackActiveTransaction(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	session, err := factory(context.Background())
	require.NoError(t, err)

	assert.NoError(t, session.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_CloseError(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(assert.AnError)

	session, err := factory(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, session.Close(), assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
