package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_DBSession_Empty(t *testing.T) {
	factory, _ := newMockFactory(t)
	appCtx := NewContext(factory, testLogger())

	session, err := appCtx.DBSession()
	assert.Nil(t, session)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestContext_WithSession(t *testing.T) {
	t.Run("pushes and always releases", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appCtx := NewContext(factory, testLogger())

		err := appCtx.WithSession(context.Background(), func(session *Session) error {
			current, err := appCtx.DBSession()
			require.NoError(t, err)
			assert.Same(t, session, current)
			assert.Equal(t, 1, appCtx.SessionCount())
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 0, appCtx.SessionCount())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("releases on error and returns it", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appCtx := NewContext(factory, testLogger())

		err := appCtx.WithSession(context.Background(), func(*Session) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, appCtx.SessionCount())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("factory failure leaves the stack untouched", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin().WillReturnError(assert.AnError)

		appCtx := NewContext(factory, testLogger())

		err := appCtx.WithSession(context.Background(), func(*Session) error {
			t.Fatal("fn must not run when the session cannot be opened")
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, appCtx.SessionCount())
	})
}

func TestContext_AutocommitScope(t *testing.T) {
	t.Run("commits exactly once on success", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		appCtx := NewContext(factory, testLogger())

		err := appCtx.AutocommitScope(context.Background(), func(*Session) error {
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 0, appCtx.SessionCount())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the original error", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		appCtx := NewContext(factory, testLogger())

		err := appCtx.AutocommitScope(context.Background(), func(*Session) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, appCtx.SessionCount())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback failure masks the original error", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		rollbackErr := errors.New("rollback failed")
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rollbackErr)

		appCtx := NewContext(factory, testLogger())

		err := appCtx.AutocommitScope(context.Background(), func(*Session) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, rollbackErr)
		assert.NotErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, appCtx.SessionCount())
	})

	t.Run("commit failure propagates", func(t *testing.T) {
		factory, mock := newMockFactory(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(assert.AnError)

		appCtx := NewContext(factory, testLogger())

		err := appCtx.AutocommitScope(context.Background(), func(*Session) error {
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, appCtx.SessionCount())
	})
}

func TestContext_Autocommit(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	appCtx := NewContext(factory, testLogger())

	called := false
	err := appCtx.Autocommit(context.Background(), func(ctx context.Context, c *Context) error {
		called = true
		assert.Same(t, appCtx, c)
		// fn observes the scope's session as the current one.
		_, err := c.DBSession()
		return err
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContext_AutocommitScope_QueryInsideScope(t *testing.T) {
	factory, mock := newMockFactory(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	appCtx := NewContext(factory, testLogger())

	err := appCtx.AutocommitScope(context.Background(), func(session *Session) error {
		_, err := session.ExecContext(context.Background(), "UPDATE users SET name = $1", "x")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
