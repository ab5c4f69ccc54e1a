package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/subplane/subplane/internal/domain/subscription"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
)

type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscriptions[sub.ID]; exists {
		return ierr.NewError("subscription already exists").
			WithReportableDetails(map[string]any{"subscription_id": sub.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, exists := s.subscriptions[id]
	if !exists {
		return nil, ierr.NewError("subscription not found").
			WithReportableDetails(map[string]any{"subscription_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, spec types.Specification[*subscription.Subscription]) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if spec == nil || spec.IsSatisfiedBy(sub) {
			result = append(result, sub)
		}
	}
	sortSubscriptions(result)
	return result, nil
}

func (s *InMemorySubscriptionStore) ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if sub.Status == status {
			result = append(result, sub)
		}
	}
	sortSubscriptions(result)
	return result, nil
}

func (s *InMemorySubscriptionStore) FindActiveByTenantID(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subscriptions {
		if sub.TenantID == nil || *sub.TenantID != tenantID {
			continue
		}
		switch sub.Status {
		case types.SubscriptionStatusTrial, types.SubscriptionStatusActive, types.SubscriptionStatusSuspended:
			return sub, nil
		}
	}
	return nil, ierr.NewError("no active subscription for tenant").
		WithReportableDetails(map[string]any{"tenant_id": tenantID}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscriptions[sub.ID]; !exists {
		return ierr.NewError("subscription not found").
			WithReportableDetails(map[string]any{"subscription_id": sub.ID}).
			Mark(ierr.ErrNotFound)
	}
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.subscriptions[id]; !exists {
		return ierr.NewError("subscription not found").
			WithReportableDetails(map[string]any{"subscription_id": id}).
			Mark(ierr.ErrNotFound)
	}
	delete(s.subscriptions, id)
	return nil
}

func (s *InMemorySubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = make(map[string]*subscription.Subscription)
}

// ULID ids sort by creation time.
func sortSubscriptions(subs []*subscription.Subscription) {
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
}
