package database

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoActiveSession is returned by DBSession when no unit of work is open.
var ErrNoActiveSession = errors.New("no active database session: open a unit of work first")

// Context is the request-scoped access point for database sessions. It holds a
// session factory, a LIFO stack of currently-open sessions, and a logger. One
// Context is created per inbound request and must not be shared across requests.
type Context struct {
	factory SessionFactory
	stack   []*Session
	logger  *slog.Logger
}

// NewContext creates a Context bound to the given session factory and logger.
func NewContext(factory SessionFactory, logger *slog.Logger) *Context {
	return &Context{factory: factory, logger: logger}
}

// Logger returns the logger bound to this request.
func (c *Context) Logger() *slog.Logger {
	return c.logger
}

// SessionFactory returns the factory used to open new sessions.
func (c *Context) SessionFactory() SessionFactory {
	return c.factory
}

// DBSession returns the innermost open session. Calling it with no open unit
// of work is a usage error.
func (c *Context) DBSession() (*Session, error) {
	if len(c.stack) == 0 {
		return nil, ErrNoActiveSession
	}
	return c.stack[len(c.stack)-1], nil
}

// WithSession opens a new session, pushes it onto the stack, and runs fn with
// it. On every exit path the session is removed from the stack and closed. No
// commit or rollback happens at this level.
func (c *Context) WithSession(ctx context.Context, fn func(session *Session) error) (err error) {
	session, ferr := c.factory(ctx)
	if ferr != nil {
		return ferr
	}
	c.push(session)
	defer func() {
		c.remove(session)
		if closeErr := session.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(session)
}

// AutocommitScope runs fn within a session, committing on success and rolling
// back on error. A rollback failure propagates and masks the original error.
func (c *Context) AutocommitScope(ctx context.Context, fn func(session *Session) error) error {
	return c.WithSession(ctx, func(session *Session) error {
		if err := fn(session); err != nil {
			if rbErr := session.Rollback(); rbErr != nil {
				return rbErr
			}
			return err
		}
		return session.Commit()
	})
}

// Autocommit runs fn with this Context inside an AutocommitScope.
func (c *Context) Autocommit(ctx context.Context, fn func(ctx context.Context, c *Context) error) error {
	return c.AutocommitScope(ctx, func(*Session) error {
		return fn(ctx, c)
	})
}

// UnitOfWork returns a new unit of work bound to this Context. Unlike
// AutocommitScope it is an explicit handle that callers can hold across
// multiple calls.
func (c *Context) UnitOfWork() *UnitOfWork {
	return &UnitOfWork{appCtx: c, factory: c.factory}
}

// SessionCount reports how many sessions are currently open on the stack.
func (c *Context) SessionCount() int {
	return len(c.stack)
}

func (c *Context) push(session *Session) {
	c.stack = append(c.stack, session)
}

// remove takes session off the stack by identity. The top-of-stack case is the
// common one; the linear fallback keeps bookkeeping correct when units of work
// are interleaved out of strict nesting order. Removal of an absent session is
// a no-op.
func (c *Context) remove(session *Session) {
	if n := len(c.stack); n > 0 && c.stack[n-1] == session {
		c.stack = c.stack[:n-1]
		return
	}
	for i, s := range c.stack {
		if s == session {
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			return
		}
	}
}
