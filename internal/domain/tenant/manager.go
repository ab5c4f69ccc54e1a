package tenant

import "context"

// Manager is the contract to the external tenant management service. Create
// returns ErrAlreadyExists when the name is taken; name uniqueness is owned
// by the remote service, not checked here.
type Manager interface {
	Create(ctx context.Context, name string) (*Tenant, error)
	Get(ctx context.Context, id string) (*Tenant, error)
	Delete(ctx context.Context, id string) error
}
