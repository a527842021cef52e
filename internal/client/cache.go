package client

import (
	"context"
	"sync"

	"tracker-backend/internal/board"
	"tracker-backend/internal/models"
)

// Cache holds the fetched board state: application list, column
// configuration, distinct statuses. Reads come from the cache; writes are
// either optimistic local patches or a full invalidate-and-refetch after a
// mutation settles. Last response to settle wins; a refresh reconciles to
// server truth.
type Cache struct {
	client   *Client
	pageSize int

	mu       sync.Mutex
	apps     []models.Application
	cols     []models.ColumnConfig
	statuses []string
	loaded   bool
	stale    bool
}

func NewCache(c *Client) *Cache {
	return &Cache{client: c, pageSize: 100}
}

// Refresh refetches the application list, the profile's column configuration
// and the distinct-status list, replacing the cached snapshot.
func (s *Cache) Refresh(ctx context.Context) error {
	apps, err := s.client.ListApplications(ctx, "", 1, s.pageSize)
	if err != nil {
		return err
	}
	user, err := s.client.GetProfile(ctx)
	if err != nil {
		return err
	}
	statuses, err := s.client.DistinctStatuses(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = apps
	s.cols = user.TrackerConfig.Columns
	s.statuses = statuses
	s.loaded = true
	s.stale = false
	return nil
}

// Invalidate marks the snapshot stale; the next read refetches.
func (s *Cache) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *Cache) ensure(ctx context.Context) error {
	s.mu.Lock()
	fresh := s.loaded && !s.stale
	s.mu.Unlock()
	if fresh {
		return nil
	}
	return s.Refresh(ctx)
}

// Applications returns the cached list, refetching if stale.
func (s *Cache) Applications(ctx context.Context) ([]models.Application, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Application, len(s.apps))
	copy(out, s.apps)
	return out, nil
}

// Columns returns the cached column configuration, falling back to the
// defaults when the profile has none.
func (s *Cache) Columns(ctx context.Context) ([]models.ColumnConfig, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cols) == 0 {
		return board.DefaultColumns(), nil
	}
	out := make([]models.ColumnConfig, len(s.cols))
	copy(out, s.cols)
	return out, nil
}

// Statuses returns the cached distinct-status list.
func (s *Cache) Statuses(ctx context.Context) ([]string, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.statuses))
	copy(out, s.statuses)
	return out, nil
}

// PatchStatus rewrites the cached copy of one application's status. Local
// only: this is the optimistic half of a transition, applied before the
// network round-trip settles.
func (s *Cache) PatchStatus(id, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps[i].Status = status
			return
		}
	}
}

// Buckets reconciles the cached state into the rendered kanban columns.
func (s *Cache) Buckets(ctx context.Context) ([]board.Bucket, error) {
	apps, err := s.Applications(ctx)
	if err != nil {
		return nil, err
	}
	cols, err := s.Columns(ctx)
	if err != nil {
		return nil, err
	}
	return board.Buckets(cols, apps), nil
}
