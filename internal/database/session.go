package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// Session is a scoped unit of work against the database. *sql.Tx satisfies it.
type Session interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Connector hands out sessions. The session passed to fn is committed when fn
// returns nil and rolled back when it returns an error or panics.
type Connector interface {
	WithSession(ctx context.Context, fn func(Session) error) error
}

type connector struct {
	db *sql.DB
}

// NewConnector returns a Connector backed by db.
func NewConnector(db *sql.DB) Connector {
	return &connector{db: db}
}

func (c *connector) WithSession(ctx context.Context, fn func(Session) error) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin session: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		rollback(tx)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}
	return nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		log.Error("Failed to roll back session", "error", err)
	}
}
