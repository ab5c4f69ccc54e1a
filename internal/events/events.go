// Package events defines the serializable payloads the billing core publishes
// for other services. The JSON shapes are wire contracts: renaming a field is
// a breaking change for every consumer.
package events

import (
	"time"

	"github.com/subplane/subplane/internal/types"
)

// Event names used as message metadata and for consumer routing.
const (
	EventSubscriptionCancelled = "subscription.cancelled"
	EventSubscriptionRenewed   = "subscription.renewed"
	EventInvoicePaid           = "invoice.paid"
	EventEditionActivated      = "edition.activated"
	EventTenantProvisioned     = "tenant.provisioned"
)

type SubscriptionCancelled struct {
	SubscriptionID      string    `json:"subscription_id"`
	TenantID            *string   `json:"tenant_id,omitempty"`
	EditionID           string    `json:"edition_id"`
	SubscriptionEndDate time.Time `json:"subscription_end_date"`
	CancelledAt         time.Time `json:"cancelled_at"`
	CancellationReason  string    `json:"cancellation_reason,omitempty"`
}

func (SubscriptionCancelled) EventName() string { return EventSubscriptionCancelled }

type SubscriptionRenewed struct {
	SubscriptionID string              `json:"subscription_id"`
	TenantID       *string             `json:"tenant_id,omitempty"`
	EditionID      string              `json:"edition_id"`
	OldEndDate     time.Time           `json:"old_end_date"`
	NewEndDate     time.Time           `json:"new_end_date"`
	Price          types.Money         `json:"price"`
	BillingPeriod  types.BillingPeriod `json:"billing_period"`
	RenewedAt      time.Time           `json:"renewed_at"`
}

func (SubscriptionRenewed) EventName() string { return EventSubscriptionRenewed }

type InvoicePaid struct {
	InvoiceID        string      `json:"invoice_id"`
	SubscriptionID   string      `json:"subscription_id"`
	TenantID         *string     `json:"tenant_id,omitempty"`
	Amount           types.Money `json:"amount"`
	PaidDate         time.Time   `json:"paid_date"`
	PaymentMethod    string      `json:"payment_method"`
	PaymentReference string      `json:"payment_reference,omitempty"`
	InvoiceNumber    string      `json:"invoice_number"`
}

func (InvoicePaid) EventName() string { return EventInvoicePaid }

type EditionActivated struct {
	EditionID   string    `json:"edition_id"`
	EditionName string    `json:"edition_name"`
	IsActivated bool      `json:"is_activated"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (EditionActivated) EventName() string { return EventEditionActivated }

// TenantProvisioned is the cross-service ETO consumed by the identity service
// to create the tenant's admin account. Provisioning of tenant, subscription
// and invoice is NOT atomic with admin-account creation: delivery is
// at-least-once and asynchronous, and a consumer failure leaves the tenant
// without an admin until remediated.
//
// The admin password travels in clear text inside this payload; the identity
// service hashes it on arrival.
type TenantProvisioned struct {
	TenantID            string    `json:"tenant_id"`
	TenantName          string    `json:"tenant_name"`
	SubscriptionID      string    `json:"subscription_id"`
	EditionID           string    `json:"edition_id"`
	AdminEmail          string    `json:"admin_email"`
	AdminUserName       string    `json:"admin_user_name"`
	AdminPassword       string    `json:"admin_password"`
	IsTrialSubscription bool      `json:"is_trial_subscription"`
	TrialDays           *int      `json:"trial_days,omitempty"`
	ProvisionedAt       time.Time `json:"provisioned_at"`
}

func (TenantProvisioned) EventName() string { return EventTenantProvisioned }

// Event is implemented by every payload in this package.
type Event interface {
	EventName() string
}
