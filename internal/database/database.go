package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the tournament database and migrates it to the latest schema.
// An empty primaryUrl selects a local SQLite file (or ":memory:"); otherwise
// the remote Turso database at primaryUrl is used.
// The returned teardown closes the handle.
func InitDB(dbPath string, primaryUrl string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	db, err := open(dbPath, primaryUrl, authToken)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, migrationsDir); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func open(dbPath string, primaryUrl string, authToken string) (*sql.DB, error) {
	if primaryUrl == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
		if err != nil {
			return nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// A single connection keeps ":memory:" one database and serialises writers.
		db.SetMaxOpenConns(1)

		// Foreign key support is not enabled by default in SQLite
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		return db, nil
	}

	log.Info("Initializing Turso database", "url", primaryUrl)
	db, err := sql.Open("libsql", primaryUrl+"?authToken="+authToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db %s: %w", primaryUrl, err)
	}
	return db, nil
}

func migrate(db *sql.DB, migrationsDir string) error {
	goose.SetBaseFS(nil)
	goose.SetLogger(log.Default().WithPrefix("goose"))

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations from %s: %w", migrationsDir, err)
	}
	return nil
}
