package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/subplane/subplane/internal/domain/edition"
	ierr "github.com/subplane/subplane/internal/errors"
)

type InMemoryEditionStore struct {
	mu       sync.RWMutex
	editions map[string]*edition.Edition
}

func NewInMemoryEditionStore() *InMemoryEditionStore {
	return &InMemoryEditionStore{
		editions: make(map[string]*edition.Edition),
	}
}

func (s *InMemoryEditionStore) Create(ctx context.Context, e *edition.Edition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.editions[e.ID]; exists {
		return ierr.NewError("edition already exists").
			WithReportableDetails(map[string]any{"edition_id": e.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	s.editions[e.ID] = e
	return nil
}

func (s *InMemoryEditionStore) Get(ctx context.Context, id string) (*edition.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, exists := s.editions[id]
	if !exists {
		return nil, ierr.NewError("edition not found").
			WithReportableDetails(map[string]any{"edition_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return e, nil
}

func (s *InMemoryEditionStore) List(ctx context.Context) ([]*edition.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*edition.Edition, 0, len(s.editions))
	for _, e := range s.editions {
		result = append(result, e)
	}
	sortEditions(result)
	return result, nil
}

func (s *InMemoryEditionStore) ListActive(ctx context.Context) ([]*edition.Edition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*edition.Edition, 0, len(s.editions))
	for _, e := range s.editions {
		if e.IsActive {
			result = append(result, e)
		}
	}
	sortEditions(result)
	return result, nil
}

func (s *InMemoryEditionStore) Update(ctx context.Context, e *edition.Edition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.editions[e.ID]; !exists {
		return ierr.NewError("edition not found").
			WithReportableDetails(map[string]any{"edition_id": e.ID}).
			Mark(ierr.ErrNotFound)
	}
	s.editions[e.ID] = e
	return nil
}

func (s *InMemoryEditionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.editions[id]; !exists {
		return ierr.NewError("edition not found").
			WithReportableDetails(map[string]any{"edition_id": id}).
			Mark(ierr.ErrNotFound)
	}
	delete(s.editions, id)
	return nil
}

func (s *InMemoryEditionStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editions), nil
}

func (s *InMemoryEditionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editions = make(map[string]*edition.Edition)
}

func sortEditions(editions []*edition.Edition) {
	sort.Slice(editions, func(i, j int) bool {
		if editions[i].DisplayOrder != editions[j].DisplayOrder {
			return editions[i].DisplayOrder < editions[j].DisplayOrder
		}
		return editions[i].Name < editions[j].Name
	})
}
