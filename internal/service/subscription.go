package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subplane/subplane/internal/domain/edition"
	"github.com/subplane/subplane/internal/domain/subscription"
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
	"github.com/subplane/subplane/internal/validator"
)

// SubscriptionService drives the subscription lifecycle: creation, renewal,
// plan changes and the scheduled expiry sweep.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*subscription.Subscription, error)
	GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error)
	RenewSubscription(ctx context.Context, id string) (*subscription.Subscription, error)
	UpgradeSubscription(ctx context.Context, req ChangeEditionRequest) (*UpgradeResult, error)
	DowngradeSubscription(ctx context.Context, req ChangeEditionRequest) (*subscription.Subscription, error)
	SuspendSubscription(ctx context.Context, id string, reason string) error
	ResumeSubscription(ctx context.Context, id string) error
	CancelSubscription(ctx context.Context, id string, reason string) error
	ProcessExpiredSubscriptions(ctx context.Context) (int, error)
	ListExpiringSubscriptions(ctx context.Context, days int) ([]*subscription.Subscription, error)
	ListExpiringTrials(ctx context.Context, days int) ([]*subscription.Subscription, error)
	ValidateFeatureLimit(ctx context.Context, subscriptionID string, feature string, currentUsage int) (bool, error)
}

type CreateSubscriptionRequest struct {
	TenantID      *string             `json:"tenant_id,omitempty"`
	EditionID     string              `json:"edition_id" validate:"required"`
	BillingPeriod types.BillingPeriod `json:"billing_period" validate:"required"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	AutoRenew     bool                `json:"auto_renew"`
	TrialDays     *int                `json:"trial_days,omitempty"`
	// CustomPrice overrides the edition list price when set. Zero is only
	// meaningful together with a trial.
	CustomPrice *types.Money `json:"custom_price,omitempty"`
}

type ChangeEditionRequest struct {
	SubscriptionID string `json:"subscription_id" validate:"required"`
	NewEditionID   string `json:"new_edition_id" validate:"required"`
}

// UpgradeResult reports the outcome of an in-cycle plan upgrade: the
// replacement subscription and the prorated credit applied against its first
// cycle.
type UpgradeResult struct {
	Subscription   *subscription.Subscription `json:"subscription"`
	ProratedCredit types.Money                `json:"prorated_credit"`
}

type subscriptionService struct {
	ServiceParams
}

func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req CreateSubscriptionRequest) (*subscription.Subscription, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.BillingPeriod == types.BillingPeriodOneTime {
		return nil, ierr.NewError("subscriptions cannot be billed one-time").
			WithHint("Use MONTHLY or YEARLY billing").
			Mark(ierr.ErrValidation)
	}
	if req.TenantID == nil && !s.Config.Billing.HostSubscriptions {
		return nil, ierr.NewError("host-level subscriptions are disabled").
			WithHint("Provide a tenant or enable host subscriptions").
			Mark(ierr.ErrInvalidOperation)
	}

	ed, err := s.EditionRepo.Get(ctx, req.EditionID)
	if err != nil {
		return nil, err
	}
	if !ed.IsActive {
		return nil, ierr.NewError("edition is not available for new subscriptions").
			WithHintf("Edition %s is deactivated", ed.Name).
			WithReportableDetails(map[string]any{
				"edition_id": ed.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if req.TrialDays != nil && s.Config.Billing.TrialDaysMax > 0 && *req.TrialDays > s.Config.Billing.TrialDaysMax {
		return nil, ierr.NewError("trial period too long").
			WithHintf("Trials are capped at %d days", s.Config.Billing.TrialDaysMax).
			WithReportableDetails(map[string]any{
				"trial_days": *req.TrialDays,
				"max":        s.Config.Billing.TrialDaysMax,
			}).
			Mark(ierr.ErrValidation)
	}

	if req.TenantID != nil && s.Config.Billing.EnforceSingleActive {
		if err := s.requireNoActiveSubscription(ctx, *req.TenantID); err != nil {
			return nil, err
		}
	}

	price := ed.PriceForPeriod(req.BillingPeriod)
	if req.CustomPrice != nil {
		// The override must stay in the edition's currency; proration on a
		// later plan change nets this price against edition list prices.
		if req.CustomPrice.Currency != price.Currency {
			return nil, ierr.NewError("custom price currency does not match edition").
				WithHintf("Edition %s is priced in %s", ed.Name, price.Currency).
				WithReportableDetails(map[string]any{
					"edition_currency": price.Currency,
					"custom_currency":  req.CustomPrice.Currency,
				}).
				Mark(ierr.ErrValidation)
		}
		price = *req.CustomPrice
	}
	inTrial := req.TrialDays != nil && *req.TrialDays > 0
	if price.IsZero() && !inTrial {
		return nil, ierr.NewError("price cannot be zero outside a trial").
			WithHint("Zero-priced subscriptions must start with a trial period").
			WithReportableDetails(map[string]any{
				"edition_id": ed.ID,
			}).
			Mark(ierr.ErrValidation)
	}

	now := s.Clock.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}

	sub, err := subscription.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		req.TenantID,
		ed.ID,
		req.BillingPeriod,
		start,
		price,
		req.AutoRenew,
		req.TrialDays,
		types.NewBaseModel(ctx, now),
	)
	if err != nil {
		return nil, err
	}

	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"edition_id", ed.ID,
		"status", sub.Status,
		"billing_period", sub.BillingPeriod,
	)
	return sub, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	return s.SubRepo.Get(ctx, id)
}

// RenewSubscription extends a subscription by one cycle at the edition's
// current list price, so a price change takes effect at the next renewal
// rather than mid-cycle.
func (s *subscriptionService) RenewSubscription(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch sub.Status {
	case types.SubscriptionStatusTrial, types.SubscriptionStatusActive, types.SubscriptionStatusExpired:
	default:
		return nil, ierr.NewError("subscription cannot be renewed in its current status").
			WithHintf("Subscription is %s", sub.Status).
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"status":          sub.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	ed, err := s.EditionRepo.Get(ctx, sub.EditionID)
	if err != nil {
		return nil, err
	}
	// A deactivated edition keeps its existing subscriptions running but
	// stops taking renewals.
	if !ed.IsActive {
		return nil, ierr.NewError("edition is no longer available for renewal").
			WithHintf("Edition %s is deactivated", ed.Name).
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"edition_id":      ed.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	now := s.Clock.Now()
	ev, err := sub.Renew(ed.PriceForPeriod(sub.BillingPeriod), now)
	if err != nil {
		return nil, err
	}
	sub.Touch(ctx, now)

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}
	if err := s.EventPublisher.Publish(ctx, ev); err != nil {
		return nil, err
	}

	s.Logger.Infow("renewed subscription",
		"subscription_id", sub.ID,
		"new_end_date", sub.SubscriptionPeriod.End,
		"price", sub.Price.String(),
	)
	return sub, nil
}

// UpgradeSubscription replaces the current subscription with one on the new
// edition, effective immediately. The unused remainder of the old cycle is
// credited against the new cycle's price, floored at zero.
func (s *subscriptionService) UpgradeSubscription(ctx context.Context, req ChangeEditionRequest) (*UpgradeResult, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	if !sub.IsActive(now) {
		return nil, ierr.NewError("only active subscriptions can be upgraded").
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"status":          sub.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	newEd, err := s.EditionRepo.Get(ctx, req.NewEditionID)
	if err != nil {
		return nil, err
	}
	if !newEd.IsActive {
		return nil, ierr.NewError("edition is not available for new subscriptions").
			WithReportableDetails(map[string]any{
				"edition_id": newEd.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	credit := s.proratedRemainder(sub, now)
	listPrice := newEd.PriceForPeriod(sub.BillingPeriod)
	// The floor-at-zero netting below works on raw decimals, so the currency
	// guard Money enforces in Subtract has to be applied here.
	if credit.Currency != listPrice.Currency {
		return nil, ierr.NewError("currency mismatch").
			WithHintf("Cannot net a %s credit against a %s price", credit.Currency, listPrice.Currency).
			WithReportableDetails(map[string]any{
				"credit_currency": credit.Currency,
				"price_currency":  listPrice.Currency,
			}).
			Mark(ierr.ErrValidation)
	}
	charge := listPrice.Amount.Sub(credit.Amount)
	if charge.IsNegative() {
		charge = decimal.Zero
	}
	newPrice := types.Money{Amount: charge, Currency: listPrice.Currency}

	cancelEv, err := sub.Cancel("upgraded to "+newEd.Name, now)
	if err != nil {
		return nil, err
	}
	sub.Touch(ctx, now)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	newSub, err := subscription.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		sub.TenantID,
		newEd.ID,
		sub.BillingPeriod,
		now,
		newPrice,
		sub.AutoRenew,
		nil,
		types.NewBaseModel(ctx, now),
	)
	if err != nil {
		return nil, err
	}
	if err := s.SubRepo.Create(ctx, newSub); err != nil {
		return nil, err
	}
	if err := s.EventPublisher.Publish(ctx, cancelEv); err != nil {
		return nil, err
	}

	s.Logger.Infow("upgraded subscription",
		"old_subscription_id", sub.ID,
		"new_subscription_id", newSub.ID,
		"edition_id", newEd.ID,
		"prorated_credit", credit.String(),
		"first_cycle_price", newPrice.String(),
	)
	return &UpgradeResult{Subscription: newSub, ProratedCredit: credit}, nil
}

// DowngradeSubscription schedules a move to a cheaper edition at the end of
// the current cycle. The current subscription runs out its paid period with
// auto-renew off; the replacement starts where it ends.
func (s *subscriptionService) DowngradeSubscription(ctx context.Context, req ChangeEditionRequest) (*subscription.Subscription, error) {
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, req.SubscriptionID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	if !sub.IsActive(now) {
		return nil, ierr.NewError("only active subscriptions can be downgraded").
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"status":          sub.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	newEd, err := s.EditionRepo.Get(ctx, req.NewEditionID)
	if err != nil {
		return nil, err
	}
	if !newEd.IsActive {
		return nil, ierr.NewError("edition is not available for new subscriptions").
			WithReportableDetails(map[string]any{
				"edition_id": newEd.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	sub.DisableAutoRenew()
	sub.Touch(ctx, now)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	newSub, err := subscription.New(
		types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		sub.TenantID,
		newEd.ID,
		sub.BillingPeriod,
		sub.SubscriptionPeriod.End,
		newEd.PriceForPeriod(sub.BillingPeriod),
		false,
		nil,
		types.NewBaseModel(ctx, now),
	)
	if err != nil {
		return nil, err
	}
	if err := s.SubRepo.Create(ctx, newSub); err != nil {
		return nil, err
	}

	s.Logger.Infow("downgraded subscription",
		"old_subscription_id", sub.ID,
		"new_subscription_id", newSub.ID,
		"edition_id", newEd.ID,
		"effective_from", newSub.SubscriptionPeriod.Start,
	)
	return newSub, nil
}

func (s *subscriptionService) SuspendSubscription(ctx context.Context, id string, reason string) error {
	if reason == "" {
		return ierr.NewError("suspension reason cannot be empty").
			WithHint("Please provide a reason for the suspension").
			Mark(ierr.ErrValidation)
	}
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Suspend(); err != nil {
		return err
	}
	sub.Touch(ctx, s.Clock.Now())
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}
	s.Logger.Infow("suspended subscription",
		"subscription_id", sub.ID,
		"reason", reason,
	)
	return nil
}

func (s *subscriptionService) ResumeSubscription(ctx context.Context, id string) error {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := sub.Activate(); err != nil {
		return err
	}
	sub.Touch(ctx, s.Clock.Now())
	return s.SubRepo.Update(ctx, sub)
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id string, reason string) error {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	now := s.Clock.Now()
	ev, err := sub.Cancel(reason, now)
	if err != nil {
		return err
	}
	sub.Touch(ctx, now)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}
	if err := s.EventPublisher.Publish(ctx, ev); err != nil {
		return err
	}
	s.Logger.Infow("cancelled subscription",
		"subscription_id", sub.ID,
		"reason", reason,
	)
	return nil
}

// ProcessExpiredSubscriptions is the scheduler entry point that sweeps active
// subscriptions whose period has lapsed. It stops at the first failure and
// returns the number already expired; the next run picks up the rest.
func (s *subscriptionService) ProcessExpiredSubscriptions(ctx context.Context) (int, error) {
	now := s.Clock.Now()
	subs, err := s.SubRepo.ListByStatus(ctx, types.SubscriptionStatusActive)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, sub := range subs {
		if !sub.SubscriptionPeriod.HasExpired(now) {
			continue
		}
		if err := sub.MarkAsExpired(); err != nil {
			return expired, err
		}
		sub.Touch(ctx, now)
		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.Logger.Infow("expired subscriptions", "count", expired)
	}
	return expired, nil
}

// ListExpiringSubscriptions returns active subscriptions whose period ends
// within the given number of days, for renewal-reminder processing.
func (s *subscriptionService) ListExpiringSubscriptions(ctx context.Context, days int) ([]*subscription.Subscription, error) {
	return s.SubRepo.List(ctx, subscription.ExpiringWithinSpec(s.Clock.Now(), days))
}

// ListExpiringTrials returns trials ending within the given number of days,
// for trial-conversion reminders.
func (s *subscriptionService) ListExpiringTrials(ctx context.Context, days int) ([]*subscription.Subscription, error) {
	return s.SubRepo.List(ctx, subscription.TrialExpiringWithinSpec(s.Clock.Now(), days))
}

// ValidateFeatureLimit checks a usage count against the subscription's
// edition limits. Unknown feature names are allowed (default open) so a new
// feature flag never blocks tenants before limits exist for it.
func (s *subscriptionService) ValidateFeatureLimit(ctx context.Context, subscriptionID string, feature string, currentUsage int) (bool, error) {
	sub, err := s.SubRepo.Get(ctx, subscriptionID)
	if err != nil {
		return false, err
	}
	ed, err := s.EditionRepo.Get(ctx, sub.EditionID)
	if err != nil {
		return false, err
	}

	limits := ed.FeatureLimits
	switch feature {
	case edition.FeatureMaxUsers:
		return limits.CanAddUser(currentUsage), nil
	case edition.FeatureMaxProjects:
		return limits.CanAddProject(currentUsage), nil
	case edition.FeatureStorageQuotaGB:
		return limits.HasStorageAvailable(currentUsage), nil
	case edition.FeatureAPICallsPerMonth:
		return limits.CanMakeAPICall(currentUsage), nil
	default:
		s.Logger.Warnw("unknown feature limit, allowing",
			"feature", feature,
			"subscription_id", subscriptionID,
		)
		return true, nil
	}
}

// proratedRemainder values the unused days of the current cycle at the
// subscription's price, using the fixed 30/365 day denominators.
func (s *subscriptionService) proratedRemainder(sub *subscription.Subscription, now time.Time) types.Money {
	daysRemaining := sub.DaysRemaining(now)
	cycleDays := sub.BillingPeriod.CycleDays()
	factor := decimal.NewFromInt(int64(daysRemaining)).Div(decimal.NewFromInt(int64(cycleDays)))
	return sub.Price.Multiply(factor)
}

func (s *subscriptionService) requireNoActiveSubscription(ctx context.Context, tenantID string) error {
	existing, err := s.SubRepo.FindActiveByTenantID(ctx, tenantID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil
		}
		return err
	}
	return ierr.NewError("tenant already has an active subscription").
		WithHint("Cancel or let the current subscription expire before creating a new one").
		WithReportableDetails(map[string]any{
			"tenant_id":       tenantID,
			"subscription_id": existing.ID,
		}).
		Mark(ierr.ErrAlreadyExists)
}
