// Package store implements the history persistence layer of the jobrunner daemon.
//
// Finished jobs and tasks are written to a DuckDB database so they can be listed
// after the in-memory registries forgot them. The database may live in a folder or
// in memory.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────┐
//	│              Store (facade)             │
//	├─────────────────────────────────────────┤
//	│              HistoryStore               │
//	│                    ▼                    │
//	│                 history                 │
//	├─────────────────────────────────────────┤
//	│     QueryInterceptor (debug logging)    │
//	└─────────────────────────────────────────┘
//
// # Tables
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  history           │  One row per finished job or terminal task  │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization
//
//	db, err := store.NewDB(dataFolder)   // or ":memory:"
//	err = migrations.Run(ctx, db)
//	s := store.NewStore(db)
//
// # Queries
//
// List and Count are built with squirrel. Filters are ListOption values that
// decorate the select builder:
//
//	entries, err := s.History().List(ctx,
//	    store.ByKind(models.WorkKindJob),
//	    store.ByStatus(models.HistoryStatusFailed),
//	    store.WithDefaultSort(),
//	    store.WithLimit(50),
//	)
//
// Get returns a ResourceNotFoundError from pkg/errors when the id is unknown.
package store
