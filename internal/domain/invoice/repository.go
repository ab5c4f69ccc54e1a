package invoice

import (
	"context"

	"github.com/subplane/subplane/internal/types"
)

// Repository is the persistence contract for invoices. Invoice numbers are
// unique per tenant; implementations enforce that with a storage-level unique
// constraint, since the sequence is derived read-then-decide in the service
// layer.
type Repository interface {
	Create(ctx context.Context, i *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, spec types.Specification[*Invoice]) ([]*Invoice, error)
	ListByTenantID(ctx context.Context, tenantID string) ([]*Invoice, error)
	ListBySubscriptionID(ctx context.Context, subscriptionID string) ([]*Invoice, error)
	// LastByTenantID returns the most recently created invoice for the
	// tenant, or ErrNotFound when the tenant has none.
	LastByTenantID(ctx context.Context, tenantID string) (*Invoice, error)
	Update(ctx context.Context, i *Invoice) error
	Delete(ctx context.Context, id string) error
}
