package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/subplane/subplane/internal/domain/invoice"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
)

type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range s.invoices {
		if existing.InvoiceNumber == inv.InvoiceNumber {
			return ierr.NewError("invoice number already exists").
				WithReportableDetails(map[string]any{"invoice_number": inv.InvoiceNumber}).
				Mark(ierr.ErrAlreadyExists)
		}
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, exists := s.invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, spec types.Specification[*invoice.Invoice]) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*invoice.Invoice
	for _, inv := range s.invoices {
		if spec == nil || spec.IsSatisfiedBy(inv) {
			result = append(result, inv)
		}
	}
	sortInvoices(result)
	return result, nil
}

func (s *InMemoryInvoiceStore) ListByTenantID(ctx context.Context, tenantID string) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*invoice.Invoice
	for _, inv := range s.invoices {
		if invoiceTenant(inv) == tenantID {
			result = append(result, inv)
		}
	}
	sortInvoices(result)
	return result, nil
}

func (s *InMemoryInvoiceStore) ListBySubscriptionID(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*invoice.Invoice
	for _, inv := range s.invoices {
		if inv.SubscriptionID == subscriptionID {
			result = append(result, inv)
		}
	}
	sortInvoices(result)
	return result, nil
}

func (s *InMemoryInvoiceStore) LastByTenantID(ctx context.Context, tenantID string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var last *invoice.Invoice
	for _, inv := range s.invoices {
		if invoiceTenant(inv) != tenantID {
			continue
		}
		if last == nil || inv.ID > last.ID {
			last = inv
		}
	}
	if last == nil {
		return nil, ierr.NewError("tenant has no invoices").
			WithReportableDetails(map[string]any{"tenant_id": tenantID}).
			Mark(ierr.ErrNotFound)
	}
	return last, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[inv.ID]; !exists {
		return ierr.NewError("invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrNotFound)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[id]; !exists {
		return ierr.NewError("invoice not found").
			WithReportableDetails(map[string]any{"invoice_id": id}).
			Mark(ierr.ErrNotFound)
	}
	delete(s.invoices, id)
	return nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[string]*invoice.Invoice)
}

// Host-level invoices (nil tenant) are filed under the default tenant id,
// matching how the invoice service numbers them.
func invoiceTenant(inv *invoice.Invoice) string {
	if inv.TenantID == nil {
		return types.DefaultTenantID
	}
	return *inv.TenantID
}

// ULID ids sort by creation time.
func sortInvoices(invoices []*invoice.Invoice) {
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].ID < invoices[j].ID
	})
}
