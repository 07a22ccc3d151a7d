package store

import "database/sql"

// Store provides access to all storage repositories.
type Store struct {
	db      *sql.DB
	history *HistoryStore
}

func NewStore(db *sql.DB) *Store {
	qi := newLoggingInterceptor(db)
	return &Store{
		db:      db,
		history: NewHistoryStore(qi),
	}
}

func (s *Store) History() *HistoryStore {
	return s.history
}

func (s *Store) Close() error {
	return s.db.Close()
}
