package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kubev2v/jobrunner/internal/models"
	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
)

// HistoryStore persists finished jobs and tasks.
type HistoryStore struct {
	db QueryInterceptor
}

func NewHistoryStore(db QueryInterceptor) *HistoryStore {
	return &HistoryStore{db: db}
}

// Save inserts the entry and returns it with the id assigned by the database.
func (s *HistoryStore) Save(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error) {
	var started any
	if entry.StartedAt != nil {
		started = entry.StartedAt.UTC()
	}

	err := s.db.QueryRowContext(ctx, queryInsertHistory,
		string(entry.Kind),
		entry.WorkID,
		entry.Name,
		entry.User,
		string(entry.Status),
		entry.Error,
		entry.SubmittedAt.UTC(),
		started,
		entry.FinishedAt.UTC(),
	).Scan(&entry.ID)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("failed to save history entry for %s %q: %w", entry.Kind, entry.WorkID, err)
	}
	return entry, nil
}

func (s *HistoryStore) Get(ctx context.Context, id int64) (models.HistoryEntry, error) {
	query, args, err := sq.Select(historyColumns...).From("history").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.HistoryEntry{}, err
	}

	entry, err := scanHistory(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.HistoryEntry{}, srvErrors.NewResourceNotFoundError("history entry", fmt.Sprintf("%d", id))
	}
	return entry, err
}

func (s *HistoryStore) List(ctx context.Context, opts ...ListOption) ([]models.HistoryEntry, error) {
	builder := sq.Select(historyColumns...).From("history")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count takes filter options. Paging is ignored; sort options must not be passed.
func (s *HistoryStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("history")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.RemoveLimit().RemoveOffset().ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// DeleteOlderThan removes entries finished before t and returns how many were removed.
func (s *HistoryStore) DeleteOlderThan(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryDeleteHistoryBefore, t.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHistory(row scanner) (models.HistoryEntry, error) {
	var (
		e       models.HistoryEntry
		kind    string
		status  string
		started sql.NullTime
	)
	err := row.Scan(
		&e.ID,
		&kind,
		&e.WorkID,
		&e.Name,
		&e.User,
		&status,
		&e.Error,
		&e.SubmittedAt,
		&started,
		&e.FinishedAt,
	)
	if err != nil {
		return models.HistoryEntry{}, err
	}
	e.Kind = models.WorkKind(kind)
	e.Status = models.HistoryStatus(status)
	if started.Valid {
		t := started.Time
		e.StartedAt = &t
	}
	return e, nil
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByKind(kinds ...models.WorkKind) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(kinds) == 0 {
			return b
		}
		values := make([]string, 0, len(kinds))
		for _, k := range kinds {
			values = append(values, string(k))
		}
		return b.Where(sq.Eq{"kind": values})
	}
}

func ByStatus(statuses ...models.HistoryStatus) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		return b.Where(sq.Eq{"status": values})
	}
}

// ByName matches names containing the given text, case-insensitively.
func ByName(name string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if name == "" {
			return b
		}
		return b.Where(sq.ILike{"name": "%" + name + "%"})
	}
}

func ByUser(user string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if user == "" {
			return b
		}
		return b.Where(sq.Eq{"username": user})
	}
}

func FinishedAfter(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"finished_at": t.UTC()})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// WithDefaultSort orders newest first.
func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("finished_at DESC", "id DESC")
	}
}
