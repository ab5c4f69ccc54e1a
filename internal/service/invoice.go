package service

import (
	"context"
	"fmt"
	"time"

	"github.com/subplane/subplane/internal/domain/invoice"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
	"github.com/subplane/subplane/internal/validator"
)

// InvoiceService issues and settles invoices for subscriptions.
type InvoiceService interface {
	GenerateSubscriptionInvoice(ctx context.Context, subscriptionID string) (*invoice.Invoice, error)
	GenerateProratedInvoice(ctx context.Context, req ProratedInvoiceRequest) (*invoice.Invoice, error)
	GenerateCreditNote(ctx context.Context, req CreditNoteRequest) (*invoice.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)
	ProcessPayment(ctx context.Context, req PaymentRequest) (*invoice.Invoice, error)
	ProcessOverdueInvoices(ctx context.Context) (int, error)
	ListInvoicesDueWithin(ctx context.Context, days int) ([]*invoice.Invoice, error)
	ListSubscriptionInvoices(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error)
	CalculateOutstandingBalance(ctx context.Context, tenantID string) (types.Money, error)
	CancelInvoice(ctx context.Context, id string, reason string) error
	CanCancelInvoice(ctx context.Context, id string) (bool, error)
	GetNextInvoiceSequenceNumber(ctx context.Context, tenantID string) (int, error)
}

type ProratedInvoiceRequest struct {
	SubscriptionID string      `json:"subscription_id" validate:"required"`
	Amount         types.Money `json:"amount"`
	Description    string      `json:"description" validate:"required"`
}

type CreditNoteRequest struct {
	SubscriptionID string      `json:"subscription_id" validate:"required"`
	Amount         types.Money `json:"amount"`
	Reason         string      `json:"reason" validate:"required"`
}

type PaymentRequest struct {
	InvoiceID        string `json:"invoice_id" validate:"required"`
	PaymentMethod    string `json:"payment_method" validate:"required"`
	PaymentReference string `json:"payment_reference"`
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

// GenerateSubscriptionInvoice bills one full cycle of an active subscription
// at its current price, due in the standard term.
func (s *invoiceService) GenerateSubscriptionInvoice(ctx context.Context, subscriptionID string) (*invoice.Invoice, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != types.SubscriptionStatusActive {
		return nil, ierr.NewError("only active subscriptions can be invoiced").
			WithHintf("Subscription is %s", sub.Status).
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"status":          sub.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.Now()
	description := fmt.Sprintf("Subscription charge for %s (%s)",
		sub.SubscriptionPeriod.String(), sub.BillingPeriod)

	inv, err := s.createInvoice(ctx, sub.TenantID, sub.ID, sub.Price,
		now, now.AddDate(0, 0, s.Config.Billing.InvoiceDueDays), description)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated subscription invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"subscription_id", sub.ID,
		"amount", inv.Amount.String(),
	)
	return inv, nil
}

// GenerateProratedInvoice bills a partial-cycle amount, typically the charge
// produced by a mid-cycle plan change. Zero amounts are rejected; a no-op
// charge should simply not be invoiced.
func (s *invoiceService) GenerateProratedInvoice(ctx context.Context, req ProratedInvoiceRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() {
		return nil, ierr.NewError("prorated amount cannot be zero").
			WithHint("Skip invoicing when there is nothing to charge").
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	inv, err := s.createInvoice(ctx, sub.TenantID, sub.ID, req.Amount,
		now, now.AddDate(0, 0, s.Config.Billing.ProratedDueDays), req.Description)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated prorated invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"subscription_id", sub.ID,
		"amount", inv.Amount.String(),
	)
	return inv, nil
}

// GenerateCreditNote issues a negative invoice crediting the tenant and
// settles it immediately; a credit is never collected on. The request amount
// is the positive credit value.
func (s *invoiceService) GenerateCreditNote(ctx context.Context, req CreditNoteRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() || req.Amount.IsNegative() {
		return nil, ierr.NewError("credit amount must be positive").
			WithReportableDetails(map[string]any{
				"amount": req.Amount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	inv, err := s.createInvoice(ctx, sub.TenantID, sub.ID, req.Amount.Negate(),
		now, now, "Credit note: "+req.Reason)
	if err != nil {
		return nil, err
	}

	ev, err := inv.MarkAsPaid("credit", "", now)
	if err != nil {
		return nil, err
	}
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.EventPublisher.Publish(ctx, ev); err != nil {
		return nil, err
	}

	s.Logger.Infow("generated credit note",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"subscription_id", sub.ID,
		"amount", inv.Amount.String(),
	)
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *invoiceService) ProcessPayment(ctx context.Context, req PaymentRequest) (*invoice.Invoice, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	ev, err := inv.MarkAsPaid(req.PaymentMethod, req.PaymentReference, now)
	if err != nil {
		return nil, err
	}
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.EventPublisher.Publish(ctx, ev); err != nil {
		return nil, err
	}

	s.Logger.Infow("processed payment",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"amount", inv.Amount.String(),
		"payment_method", req.PaymentMethod,
	)
	return inv, nil
}

// ProcessOverdueInvoices is the scheduler entry point that flags pending
// invoices past their due date. The first failure aborts the batch and
// returns the count flagged so far; the sweep is idempotent and the next run
// picks up the remainder.
func (s *invoiceService) ProcessOverdueInvoices(ctx context.Context) (int, error) {
	now := s.Clock.Now()
	due, err := s.InvoiceRepo.List(ctx, invoice.OverdueSpec(now))
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, inv := range due {
		if inv.Status != types.InvoiceStatusPending {
			continue
		}
		if err := inv.MarkAsOverdue(now); err != nil {
			return flagged, err
		}
		inv.Touch(ctx, now)
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return flagged, err
		}
		flagged++
	}

	if flagged > 0 {
		s.Logger.Infow("flagged overdue invoices", "count", flagged)
	}
	return flagged, nil
}

// ListInvoicesDueWithin returns pending invoices due in the next days, for
// payment-reminder processing.
func (s *invoiceService) ListInvoicesDueWithin(ctx context.Context, days int) ([]*invoice.Invoice, error) {
	return s.InvoiceRepo.List(ctx, invoice.DueWithinSpec(s.Clock.Now(), days))
}

// ListSubscriptionInvoices returns the billing history of one subscription.
func (s *invoiceService) ListSubscriptionInvoices(ctx context.Context, subscriptionID string) ([]*invoice.Invoice, error) {
	return s.InvoiceRepo.ListBySubscriptionID(ctx, subscriptionID)
}

// CalculateOutstandingBalance sums a tenant's pending and overdue invoices.
// Credit notes never appear here; they are settled on issue.
func (s *invoiceService) CalculateOutstandingBalance(ctx context.Context, tenantID string) (types.Money, error) {
	outstanding, err := s.InvoiceRepo.List(ctx, invoice.TenantOutstandingSpec(tenantID))
	if err != nil {
		return types.Money{}, err
	}

	total := types.ZeroMoney(s.Config.Billing.DefaultCurrency)
	for _, inv := range outstanding {
		total, err = total.Add(inv.Amount)
		if err != nil {
			return types.Money{}, err
		}
	}
	return total, nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, id string, reason string) error {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := inv.Cancel(reason); err != nil {
		return err
	}
	inv.Touch(ctx, s.Clock.Now())
	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}
	s.Logger.Infow("cancelled invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"reason", reason,
	)
	return nil
}

func (s *invoiceService) CanCancelInvoice(ctx context.Context, id string) (bool, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return inv.CanBeCancelled(), nil
}

// GetNextInvoiceSequenceNumber derives the next per-tenant sequence from the
// tenant's most recent invoice number, starting at 1 for a fresh tenant.
func (s *invoiceService) GetNextInvoiceSequenceNumber(ctx context.Context, tenantID string) (int, error) {
	last, err := s.InvoiceRepo.LastByTenantID(ctx, tenantID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return 1, nil
		}
		return 0, err
	}
	seq, err := last.InvoiceNumber.SequenceOf()
	if err != nil {
		return 0, err
	}
	return seq + 1, nil
}

// createInvoice builds and stores an invoice for a subscription, numbering it
// in the tenant's sequence. Host-level subscriptions (nil tenant) are
// numbered under the default tenant id.
func (s *invoiceService) createInvoice(
	ctx context.Context,
	tenantID *string,
	subscriptionID string,
	amount types.Money,
	issueDate, dueDate time.Time,
	description string,
) (*invoice.Invoice, error) {
	numberingTenant := types.DefaultTenantID
	if tenantID != nil {
		numberingTenant = *tenantID
	}

	seq, err := s.GetNextInvoiceSequenceNumber(ctx, numberingTenant)
	if err != nil {
		return nil, err
	}
	number, err := invoice.GenerateNumber(numberingTenant, issueDate, seq)
	if err != nil {
		return nil, err
	}

	inv, err := invoice.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		number,
		subscriptionID,
		tenantID,
		amount,
		issueDate,
		dueDate,
		description,
		types.NewBaseModel(ctx, issueDate),
	)
	if err != nil {
		return nil, err
	}
	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
