package invoice

import (
	"time"

	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/types"
)

// Invoice is a billing document for one subscription. Amount is negative only
// for credit notes; regular invoices always carry a non-negative Money built
// through its constructor.
type Invoice struct {
	ID               string              `json:"id"`
	InvoiceNumber    Number              `json:"invoice_number"`
	SubscriptionID   string              `json:"subscription_id"`
	TenantID         *string             `json:"tenant_id,omitempty"`
	Amount           types.Money         `json:"amount"`
	IssueDate        time.Time           `json:"issue_date"`
	DueDate          time.Time           `json:"due_date"`
	PaidDate         *time.Time          `json:"paid_date,omitempty"`
	Status           types.InvoiceStatus `json:"status"`
	Description      string              `json:"description"`
	PaymentMethod    *string             `json:"payment_method,omitempty"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	Notes            *string             `json:"notes,omitempty"`
	types.BaseModel
}

// New constructs a pending invoice. The due date may equal the issue date
// (credit notes) but never precede it.
func New(
	id string,
	number Number,
	subscriptionID string,
	tenantID *string,
	amount types.Money,
	issueDate time.Time,
	dueDate time.Time,
	description string,
	base types.BaseModel,
) (*Invoice, error) {
	if subscriptionID == "" {
		return nil, ierr.NewError("subscription id cannot be empty").
			WithHint("An invoice must reference a subscription").
			Mark(ierr.ErrValidation)
	}
	if number == "" {
		return nil, ierr.NewError("invoice number cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if dueDate.Before(issueDate) {
		return nil, ierr.NewError("due date cannot be before issue date").
			WithReportableDetails(map[string]any{
				"issue_date": issueDate,
				"due_date":   dueDate,
			}).
			Mark(ierr.ErrValidation)
	}

	return &Invoice{
		ID:             id,
		InvoiceNumber:  number,
		SubscriptionID: subscriptionID,
		TenantID:       tenantID,
		Amount:         amount,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Status:         types.InvoiceStatusPending,
		Description:    description,
		BaseModel:      base,
	}, nil
}

// MarkAsPaid settles the invoice and returns the payment event for the caller
// to publish. Paying an already-paid invoice is rejected, not silently
// absorbed, so a duplicate payment surfaces at the call site.
func (i *Invoice) MarkAsPaid(method, reference string, at time.Time) (*events.InvoicePaid, error) {
	if !i.CanBePaid() {
		return nil, ierr.NewError("invoice cannot be paid in its current status").
			WithHintf("Invoice %s is %s", i.InvoiceNumber, i.Status).
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if method == "" {
		return nil, ierr.NewError("payment method cannot be empty").
			Mark(ierr.ErrValidation)
	}

	i.Status = types.InvoiceStatusPaid
	i.PaidDate = &at
	i.PaymentMethod = &method
	i.PaymentReference = types.ToNillableString(reference)

	return &events.InvoicePaid{
		InvoiceID:        i.ID,
		SubscriptionID:   i.SubscriptionID,
		TenantID:         i.TenantID,
		Amount:           i.Amount,
		PaidDate:         at,
		PaymentMethod:    method,
		PaymentReference: reference,
		InvoiceNumber:    i.InvoiceNumber.String(),
	}, nil
}

// MarkAsOverdue flags a pending invoice past its due date.
func (i *Invoice) MarkAsOverdue(now time.Time) error {
	if i.Status != types.InvoiceStatusPending {
		return ierr.NewError("only pending invoices can become overdue").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	if !now.After(i.DueDate) {
		return ierr.NewError("invoice is not yet past its due date").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"due_date":   i.DueDate,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	i.Status = types.InvoiceStatusOverdue
	return nil
}

// Cancel voids a pending invoice. Paid and overdue invoices stay on the
// books.
func (i *Invoice) Cancel(reason string) error {
	if !i.CanBeCancelled() {
		return ierr.NewError("invoice cannot be cancelled in its current status").
			WithHintf("Invoice %s is %s", i.InvoiceNumber, i.Status).
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	i.Status = types.InvoiceStatusCancelled
	if reason != "" {
		i.AddNotes(reason)
	}
	return nil
}

// AddNotes appends free-form text to the invoice notes.
func (i *Invoice) AddNotes(notes string) {
	if notes == "" {
		return
	}
	if i.Notes == nil || *i.Notes == "" {
		i.Notes = &notes
		return
	}
	combined := *i.Notes + "\n" + notes
	i.Notes = &combined
}

func (i *Invoice) CanBePaid() bool {
	return i.Status == types.InvoiceStatusPending || i.Status == types.InvoiceStatusOverdue
}

func (i *Invoice) CanBeCancelled() bool {
	return i.Status == types.InvoiceStatusPending
}

// IsOverdue reports whether the invoice is unpaid past its due date,
// regardless of whether it has been flagged yet.
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status == types.InvoiceStatusOverdue {
		return true
	}
	return i.Status == types.InvoiceStatusPending && now.After(i.DueDate)
}

// DaysOverdue returns whole days past due, zero when not overdue.
func (i *Invoice) DaysOverdue(now time.Time) int {
	if !i.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(i.DueDate).Hours() / 24)
}

// DaysUntilDue returns whole days until the due date, zero once due.
func (i *Invoice) DaysUntilDue(now time.Time) int {
	if now.After(i.DueDate) {
		return 0
	}
	return int(i.DueDate.Sub(now).Hours() / 24)
}

// IsCreditNote reports whether this invoice is a credit back to the tenant.
func (i *Invoice) IsCreditNote() bool {
	return i.Amount.IsNegative()
}
