package invoice

import (
	"time"

	"github.com/subplane/subplane/internal/types"
)

// OverdueSpec selects invoices unpaid past their due date at the given
// instant, whether or not they have been flagged overdue yet.
func OverdueSpec(asOf time.Time) types.Specification[*Invoice] {
	return types.SpecificationFunc[*Invoice](func(i *Invoice) bool {
		return i.IsOverdue(asOf)
	})
}

// TenantOutstandingSpec selects a tenant's unpaid invoices, the ones that
// count toward its outstanding balance.
func TenantOutstandingSpec(tenantID string) types.Specification[*Invoice] {
	return types.SpecificationFunc[*Invoice](func(i *Invoice) bool {
		if i.TenantID == nil || *i.TenantID != tenantID {
			return false
		}
		return i.Status == types.InvoiceStatusPending || i.Status == types.InvoiceStatusOverdue
	})
}

// DueWithinSpec selects pending invoices due within the given number of days.
func DueWithinSpec(asOf time.Time, days int) types.Specification[*Invoice] {
	threshold := asOf.AddDate(0, 0, days)
	return types.SpecificationFunc[*Invoice](func(i *Invoice) bool {
		return i.Status == types.InvoiceStatusPending &&
			!i.DueDate.Before(asOf) &&
			!i.DueDate.After(threshold)
	})
}
