package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/subplane/subplane/internal/domain/tenant"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
)

// InMemoryTenantManager stands in for the external tenant management service.
// Names are unique, case-insensitively, the way the real service enforces it.
type InMemoryTenantManager struct {
	mu      sync.RWMutex
	tenants map[string]*tenant.Tenant

	// FailCreate makes the next Create return a system error, for testing
	// provisioning failure paths.
	FailCreate bool
}

func NewInMemoryTenantManager() *InMemoryTenantManager {
	return &InMemoryTenantManager{
		tenants: make(map[string]*tenant.Tenant),
	}
}

func (m *InMemoryTenantManager) Create(ctx context.Context, name string) (*tenant.Tenant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCreate {
		m.FailCreate = false
		return nil, ierr.NewError("tenant service unavailable").
			Mark(ierr.ErrSystem)
	}

	for _, t := range m.tenants {
		if strings.EqualFold(t.Name, name) {
			return nil, ierr.NewError("tenant name already taken").
				WithReportableDetails(map[string]any{"name": name}).
				Mark(ierr.ErrAlreadyExists)
		}
	}

	t, err := tenant.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		name,
		types.GetDefaultBaseModel(ctx),
	)
	if err != nil {
		return nil, err
	}
	m.tenants[t.ID] = t
	return t, nil
}

func (m *InMemoryTenantManager) Get(ctx context.Context, id string) (*tenant.Tenant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, exists := m.tenants[id]
	if !exists {
		return nil, ierr.NewError("tenant not found").
			WithReportableDetails(map[string]any{"tenant_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return t, nil
}

func (m *InMemoryTenantManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tenants[id]; !exists {
		return ierr.NewError("tenant not found").
			WithReportableDetails(map[string]any{"tenant_id": id}).
			Mark(ierr.ErrNotFound)
	}
	delete(m.tenants, id)
	return nil
}

func (m *InMemoryTenantManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenants = make(map[string]*tenant.Tenant)
}
