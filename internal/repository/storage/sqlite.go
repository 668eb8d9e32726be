package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	Connection *sqlx.DB
}

func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	conn, err := sqlx.ConnectContext(ctx, "sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	return &SQLiteStorage{Connection: conn}, nil
}

// Init - creates the tables used by the repositories.
func (that *SQLiteStorage) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS results (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id     TEXT     NOT NULL,
		winner      TEXT     NOT NULL,
		human_mark  TEXT     NOT NULL,
		difficulty  TEXT     NOT NULL,
		finished_at DATETIME NOT NULL
	)`

	if _, err := that.Connection.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
