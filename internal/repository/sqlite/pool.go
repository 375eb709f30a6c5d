package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"punchclock/internal/errors"

	_ "modernc.org/sqlite"
)

// Pool is a bounded set of reusable connections to one database file. The
// size is fixed at construction. The pool is safe to share across
// goroutines; a checked-out Conn belongs to its borrower until released.
type Pool struct {
	db *sql.DB
}

// NewPool opens the database file at path with WAL journaling and the given
// busy timeout applied to every connection.
func NewPool(path string, size int, busyTimeout time.Duration) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewPoolError("open database", err)
	}

	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)
	db.SetConnMaxLifetime(0)

	return &Pool{db: db}, nil
}

// Acquire checks a connection out of the pool, blocking until one is free
// or ctx is done. Callers must Release the returned Conn.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := p.db.Conn(ctx)
	if err != nil {
		return nil, errors.NewPoolError("acquire connection", err)
	}
	return &Conn{conn: conn}, nil
}

// Prepare compiles a statement managed at the pool level. The statement
// borrows a free connection for each execution, so it can be shared and
// reused across calls.
func (p *Pool) Prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := p.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, errors.NewDatabaseError("prepare statement", err)
	}
	return stmt, nil
}

// Close releases all pooled connections.
func (p *Pool) Close() error {
	return p.db.Close()
}

// Conn is one checked-out connection.
type Conn struct {
	conn *sql.Conn
}

// ExecContext executes a statement on this connection.
func (c *Conn) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.conn.ExecContext(ctx, query, args...)
}

// QueryContext runs a query on this connection.
func (c *Conn) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return c.conn.QueryContext(ctx, query, args...)
}

// QueryRowContext runs a single-row query on this connection.
func (c *Conn) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return c.conn.QueryRowContext(ctx, query, args...)
}

// Release returns the connection to the pool.
func (c *Conn) Release() error {
	return c.conn.Close()
}
