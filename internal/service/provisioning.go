package service

import (
	"context"

	"github.com/samber/lo"

	"github.com/subplane/subplane/internal/domain/subscription"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/types"
	"github.com/subplane/subplane/internal/validator"
)

// ProvisioningService onboards a new customer in one operation: tenant record,
// subscription, first invoice, and the provisioning event the identity
// service consumes to create the admin account.
//
// Provisioning is not atomic with admin-account creation. The event is
// delivered at least once and asynchronously; if the consumer fails, the
// tenant exists without an admin until remediated.
type ProvisioningService interface {
	ProvisionTenant(ctx context.Context, req ProvisionTenantRequest) (*ProvisionTenantResult, error)
	DeprovisionTenant(ctx context.Context, tenantID string, reason string) error
}

type ProvisionTenantRequest struct {
	TenantName    string              `json:"tenant_name" validate:"required,max=64"`
	EditionID     string              `json:"edition_id" validate:"required"`
	BillingPeriod types.BillingPeriod `json:"billing_period" validate:"required"`
	AutoRenew     bool                `json:"auto_renew"`
	TrialDays     *int                `json:"trial_days,omitempty"`

	// Admin credentials travel onward in the TenantProvisioned payload in
	// clear text; the identity service hashes the password on arrival.
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminUserName string `json:"admin_user_name" validate:"required"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
}

type ProvisionTenantResult struct {
	TenantID     string                     `json:"tenant_id"`
	Subscription *subscription.Subscription `json:"subscription"`
	// FirstInvoiceID is empty for trial signups; nothing is billed until the
	// trial converts.
	FirstInvoiceID string `json:"first_invoice_id,omitempty"`
}

type provisioningService struct {
	ServiceParams
	subscriptions SubscriptionService
	invoices      InvoiceService
}

func NewProvisioningService(params ServiceParams) ProvisioningService {
	return &provisioningService{
		ServiceParams: params,
		subscriptions: NewSubscriptionService(params),
		invoices:      NewInvoiceService(params),
	}
}

func (s *provisioningService) ProvisionTenant(ctx context.Context, req ProvisionTenantRequest) (*ProvisionTenantResult, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	// Checked up front so a dead edition fails before any side effect.
	ed, err := s.EditionRepo.Get(ctx, req.EditionID)
	if err != nil {
		return nil, err
	}
	if !ed.IsActive {
		return nil, ierr.NewError("edition is not available for new tenants").
			WithHintf("Edition %s is deactivated", ed.Name).
			WithReportableDetails(map[string]any{
				"edition_id": ed.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	// Signups that do not ask for a trial still get the configured default
	// trial, when one is set.
	trialDays := req.TrialDays
	if trialDays == nil && s.Config.Billing.DefaultTrialDays > 0 {
		trialDays = lo.ToPtr(s.Config.Billing.DefaultTrialDays)
	}

	t, err := s.TenantMgr.Create(ctx, req.TenantName)
	if err != nil {
		return nil, err
	}
	ctx = types.SetTenantID(ctx, t.ID)

	sub, err := s.subscriptions.CreateSubscription(ctx, CreateSubscriptionRequest{
		TenantID:      &t.ID,
		EditionID:     req.EditionID,
		BillingPeriod: req.BillingPeriod,
		AutoRenew:     req.AutoRenew,
		TrialDays:     trialDays,
	})
	if err != nil {
		return nil, err
	}

	result := &ProvisionTenantResult{
		TenantID:     t.ID,
		Subscription: sub,
	}

	if !sub.IsTrial() {
		inv, err := s.invoices.GenerateSubscriptionInvoice(ctx, sub.ID)
		if err != nil {
			return nil, err
		}
		result.FirstInvoiceID = inv.ID
	}

	ev := &events.TenantProvisioned{
		TenantID:            t.ID,
		TenantName:          t.Name,
		SubscriptionID:      sub.ID,
		EditionID:           ed.ID,
		AdminEmail:          req.AdminEmail,
		AdminUserName:       req.AdminUserName,
		AdminPassword:       req.AdminPassword,
		IsTrialSubscription: sub.IsTrial(),
		TrialDays:           trialDays,
		ProvisionedAt:       s.Clock.Now(),
	}
	if err := s.EventPublisher.Publish(ctx, ev); err != nil {
		return nil, err
	}

	s.Logger.Infow("provisioned tenant",
		"tenant_id", t.ID,
		"tenant_name", t.Name,
		"subscription_id", sub.ID,
		"edition_id", ed.ID,
		"trial", sub.IsTrial(),
	)
	return result, nil
}

// DeprovisionTenant winds a tenant down: the active subscription is cancelled
// and any collectible invoices are voided. Paid history stays on the books.
func (s *provisioningService) DeprovisionTenant(ctx context.Context, tenantID string, reason string) error {
	sub, err := s.SubRepo.FindActiveByTenantID(ctx, tenantID)
	if err != nil && !ierr.IsNotFound(err) {
		return err
	}
	if sub != nil {
		if err := s.subscriptions.CancelSubscription(ctx, sub.ID, reason); err != nil {
			return err
		}
	}

	invoices, err := s.InvoiceRepo.ListByTenantID(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, inv := range invoices {
		if !inv.CanBeCancelled() {
			continue
		}
		if err := s.invoices.CancelInvoice(ctx, inv.ID, reason); err != nil {
			return err
		}
	}

	if err := s.TenantMgr.Delete(ctx, tenantID); err != nil {
		return err
	}

	s.Logger.Infow("deprovisioned tenant",
		"tenant_id", tenantID,
		"reason", reason,
	)
	return nil
}
