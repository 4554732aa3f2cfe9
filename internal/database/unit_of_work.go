package database

import (
	"context"
	"errors"
)

// ErrUnitOfWorkActive is returned by Enter when the unit of work already holds
// a session.
var ErrUnitOfWorkActive = errors.New("unit of work already entered")

// UnitOfWork coordinates exactly one transaction against its Context. Enter
// pushes a fresh session onto the Context's stack; Exit commits or rolls back,
// always closes the session, and removes it from the stack by identity.
type UnitOfWork struct {
	appCtx  *Context
	factory SessionFactory
	session *Session
}

// Enter opens a new session and records it as the session for this unit of
// work. Calling Enter twice without an intervening Exit is a usage error.
func (u *UnitOfWork) Enter(ctx context.Context) (*Session, error) {
	if u.session != nil {
		return nil, ErrUnitOfWorkActive
	}
	session, err := u.factory(ctx)
	if err != nil {
		return nil, err
	}
	u.appCtx.push(session)
	u.session = session
	return session, nil
}

// Exit finishes the unit of work. When outcome is nil the session commits;
// otherwise it rolls back. The session is closed in both cases, and stack
// removal plus handle clearing happen even when commit, rollback, or close
// fail. Exit on a unit of work that was never entered is a no-op.
func (u *UnitOfWork) Exit(outcome error) (err error) {
	if u.session == nil {
		return nil
	}
	session := u.session
	defer func() {
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		u.appCtx.remove(session)
		u.session = nil
	}()
	if outcome == nil {
		return session.Commit()
	}
	return session.Rollback()
}

// Session returns the session held by this unit of work, or nil outside an
// Enter/Exit pair.
func (u *UnitOfWork) Session() *Session {
	return u.session
}
