package subscription

import (
	"context"

	"github.com/subplane/subplane/internal/types"
)

// Repository is the persistence contract for subscriptions.
//
// The "one active subscription per tenant" rule is checked read-then-decide in
// the service layer; implementations must back it with a storage-level unique
// constraint on (tenant_id) for active rows, since the check alone races
// under concurrent provisioning of the same tenant.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	Get(ctx context.Context, id string) (*Subscription, error)
	List(ctx context.Context, spec types.Specification[*Subscription]) ([]*Subscription, error)
	ListByStatus(ctx context.Context, status types.SubscriptionStatus) ([]*Subscription, error)
	FindActiveByTenantID(ctx context.Context, tenantID string) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	Delete(ctx context.Context, id string) error
}
