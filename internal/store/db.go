package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"go.uber.org/zap"
)

const historyDBFile = "history.duckdb"

// NewDB opens a DuckDB database. path is a database file, a folder (the history
// database file is created in it) or ":memory:".
func NewDB(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" && path != "" {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			dsn = filepath.Join(path, historyDBFile)
		}
	}
	if dsn == ":memory:" {
		dsn = ""
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb at %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping duckdb at %q: %w", path, err)
	}
	return db, nil
}

// QueryInterceptor is the subset of *sql.DB the stores use.
type QueryInterceptor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// loggingInterceptor logs every statement at debug level.
type loggingInterceptor struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func newLoggingInterceptor(db *sql.DB) *loggingInterceptor {
	return &loggingInterceptor{db: db, logger: zap.S().Named("store")}
}

func (i *loggingInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.db.QueryContext(ctx, query, args...)
	i.logger.Debugw("query", "sql", query, "args", args, "duration", time.Since(start), "error", err)
	return rows, err
}

func (i *loggingInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := i.db.QueryRowContext(ctx, query, args...)
	i.logger.Debugw("query row", "sql", query, "args", args, "duration", time.Since(start))
	return row
}

func (i *loggingInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := i.db.ExecContext(ctx, query, args...)
	i.logger.Debugw("exec", "sql", query, "args", args, "duration", time.Since(start), "error", err)
	return res, err
}
