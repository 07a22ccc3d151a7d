package services

import (
	"context"

	"github.com/kubev2v/jobrunner/internal/models"
	"github.com/kubev2v/jobrunner/internal/store"
)

type HistoryService struct {
	store *store.Store
}

func NewHistoryService(st *store.Store) *HistoryService {
	return &HistoryService{store: st}
}

type HistoryListParams struct {
	Kinds    []models.WorkKind
	Statuses []models.HistoryStatus
	Name     string
	User     string
	Limit    uint64
	Offset   uint64
}

type HistoryListResult struct {
	Entries []models.HistoryEntry
	Total   int
}

func (s *HistoryService) List(ctx context.Context, params HistoryListParams) (*HistoryListResult, error) {
	filters := s.buildFilters(params)

	opts := append([]store.ListOption{}, filters...)
	opts = append(opts, store.WithDefaultSort())
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	entries, err := s.store.History().List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	// Get total count without pagination
	total, err := s.store.History().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	return &HistoryListResult{
		Entries: entries,
		Total:   total,
	}, nil
}

func (s *HistoryService) Get(ctx context.Context, id int64) (models.HistoryEntry, error) {
	return s.store.History().Get(ctx, id)
}

func (s *HistoryService) buildFilters(params HistoryListParams) []store.ListOption {
	var opts []store.ListOption

	if len(params.Kinds) > 0 {
		opts = append(opts, store.ByKind(params.Kinds...))
	}
	if len(params.Statuses) > 0 {
		opts = append(opts, store.ByStatus(params.Statuses...))
	}
	if params.Name != "" {
		opts = append(opts, store.ByName(params.Name))
	}
	if params.User != "" {
		opts = append(opts, store.ByUser(params.User))
	}

	return opts
}
