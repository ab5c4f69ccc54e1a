package types

import (
	"time"

	"github.com/samber/lo"

	ierr "github.com/subplane/subplane/internal/errors"
)

// BillingPeriod is the cadence a subscription is billed on.
type BillingPeriod string

const (
	BillingPeriodMonthly BillingPeriod = "MONTHLY"
	BillingPeriodYearly  BillingPeriod = "YEARLY"
	// BillingPeriodOneTime is used for one-off invoices such as proration
	// charges and credit notes, never for recurring subscriptions.
	BillingPeriodOneTime BillingPeriod = "ONE_TIME"
)

func (p BillingPeriod) String() string {
	return string(p)
}

func (p BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BillingPeriodMonthly,
		BillingPeriodYearly,
		BillingPeriodOneTime,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid billing period").
			WithHint("Please provide a valid billing period").
			WithReportableDetails(map[string]any{
				"billing_period": p,
				"allowed":        allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PeriodEnd returns the end of one billing cycle starting at the given date.
// Uses native month/year arithmetic, so a monthly cycle starting Jan 31 ends
// on the calendar-adjusted date rather than a fixed 30 days later.
func (p BillingPeriod) PeriodEnd(start time.Time) time.Time {
	switch p {
	case BillingPeriodYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// CycleDays is the fixed proration denominator for the period: 30 for monthly,
// 365 for yearly. Deliberately not calendar-accurate; changing this silently
// changes every prorated amount, so keep it in lockstep with billing history.
func (p BillingPeriod) CycleDays() int {
	if p == BillingPeriodYearly {
		return 365
	}
	return 30
}

// SubscriptionStatus is the lifecycle status of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "TRIAL"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusSuspended SubscriptionStatus = "SUSPENDED"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusTrial,
		SubscriptionStatusActive,
		SubscriptionStatusSuspended,
		SubscriptionStatusExpired,
		SubscriptionStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceStatus represents the current state of an invoice in its lifecycle.
type InvoiceStatus string

const (
	// InvoiceStatusPending indicates the invoice awaits payment
	InvoiceStatusPending InvoiceStatus = "PENDING"
	// InvoiceStatusPaid indicates payment was received; terminal for the pay path
	InvoiceStatusPaid InvoiceStatus = "PAID"
	// InvoiceStatusOverdue indicates the due date passed while still pending
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
	// InvoiceStatusCancelled indicates the invoice was voided before payment
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusPending,
		InvoiceStatusPaid,
		InvoiceStatusOverdue,
		InvoiceStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
