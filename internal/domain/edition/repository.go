package edition

import "context"

// Repository is the persistence contract for editions. Implementations live
// outside the billing core.
type Repository interface {
	Create(ctx context.Context, e *Edition) error
	Get(ctx context.Context, id string) (*Edition, error)
	List(ctx context.Context) ([]*Edition, error)
	ListActive(ctx context.Context) ([]*Edition, error)
	Update(ctx context.Context, e *Edition) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
