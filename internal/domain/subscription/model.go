package subscription

import (
	"time"

	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/types"
)

// Subscription is a tenant's time-bounded commitment to an edition at a
// price. Status changes flow exclusively through the state machine; there is
// no path to an invalid status. A nil TenantID is permitted only for
// host-level subscriptions.
type Subscription struct {
	ID                 string                   `json:"id"`
	TenantID           *string                  `json:"tenant_id,omitempty"`
	EditionID          string                   `json:"edition_id"`
	BillingPeriod      types.BillingPeriod      `json:"billing_period"`
	SubscriptionPeriod types.DateRange          `json:"subscription_period"`
	NextBillingDate    *time.Time               `json:"next_billing_date,omitempty"`
	AutoRenew          bool                     `json:"auto_renew"`
	Price              types.Money              `json:"price"`
	Status             types.SubscriptionStatus `json:"status"`
	TrialDays          *int                     `json:"trial_days,omitempty"`
	TrialEndDate       *time.Time               `json:"trial_end_date,omitempty"`
	types.BaseModel
}

// New constructs a subscription starting either a trial (trialDays > 0) or an
// active period of one billing cycle.
func New(
	id string,
	tenantID *string,
	editionID string,
	billingPeriod types.BillingPeriod,
	startDate time.Time,
	price types.Money,
	autoRenew bool,
	trialDays *int,
	base types.BaseModel,
) (*Subscription, error) {
	if editionID == "" {
		return nil, ierr.NewError("edition id cannot be empty").
			WithHint("Please provide an edition").
			Mark(ierr.ErrValidation)
	}
	if err := billingPeriod.Validate(); err != nil {
		return nil, err
	}
	if trialDays != nil && *trialDays < 0 {
		return nil, ierr.NewError("trial days cannot be negative").
			WithReportableDetails(map[string]any{
				"trial_days": *trialDays,
			}).
			Mark(ierr.ErrValidation)
	}

	s := &Subscription{
		ID:            id,
		TenantID:      tenantID,
		EditionID:     editionID,
		BillingPeriod: billingPeriod,
		Price:         price,
		AutoRenew:     autoRenew,
		TrialDays:     trialDays,
		BaseModel:     base,
	}

	if trialDays != nil && *trialDays > 0 {
		trialEnd := startDate.AddDate(0, 0, *trialDays)
		period, err := types.NewDateRange(startDate, trialEnd)
		if err != nil {
			return nil, err
		}
		s.Status = types.SubscriptionStatusTrial
		s.TrialEndDate = &trialEnd
		s.SubscriptionPeriod = period
	} else {
		period, err := types.NewDateRange(startDate, billingPeriod.PeriodEnd(startDate))
		if err != nil {
			return nil, err
		}
		s.Status = types.SubscriptionStatusActive
		s.SubscriptionPeriod = period
	}

	s.NextBillingDate = s.calculateNextBillingDate()
	return s, nil
}

// Renew extends the subscription by one billing cycle. A trial converts to an
// active cycle starting at the trial end; an expired subscription
// reactivates. Returns the renewal event for the caller to publish.
func (s *Subscription) Renew(newPrice types.Money, at time.Time) (*events.SubscriptionRenewed, error) {
	oldEnd := s.SubscriptionPeriod.End

	if s.Status == types.SubscriptionStatusTrial && s.TrialEndDate != nil {
		if err := s.changeStatus(types.SubscriptionStatusActive); err != nil {
			return nil, err
		}
		start := *s.TrialEndDate
		period, err := types.NewDateRange(start, s.BillingPeriod.PeriodEnd(start))
		if err != nil {
			return nil, err
		}
		s.SubscriptionPeriod = period
	} else {
		if s.Status == types.SubscriptionStatusExpired {
			if err := s.changeStatus(types.SubscriptionStatusActive); err != nil {
				return nil, err
			}
		}
		if s.BillingPeriod == types.BillingPeriodYearly {
			s.SubscriptionPeriod = s.SubscriptionPeriod.ExtendByYears(1)
		} else {
			s.SubscriptionPeriod = s.SubscriptionPeriod.ExtendByMonths(1)
		}
	}

	s.Price = newPrice
	s.NextBillingDate = s.calculateNextBillingDate()

	return &events.SubscriptionRenewed{
		SubscriptionID: s.ID,
		TenantID:       s.TenantID,
		EditionID:      s.EditionID,
		OldEndDate:     oldEnd,
		NewEndDate:     s.SubscriptionPeriod.End,
		Price:          s.Price,
		BillingPeriod:  s.BillingPeriod,
		RenewedAt:      at,
	}, nil
}

// Cancel terminates the subscription. Cancelled is a terminal status.
func (s *Subscription) Cancel(reason string, at time.Time) (*events.SubscriptionCancelled, error) {
	if err := s.changeStatus(types.SubscriptionStatusCancelled); err != nil {
		return nil, err
	}
	s.AutoRenew = false
	s.NextBillingDate = nil

	return &events.SubscriptionCancelled{
		SubscriptionID:      s.ID,
		TenantID:            s.TenantID,
		EditionID:           s.EditionID,
		SubscriptionEndDate: s.SubscriptionPeriod.End,
		CancelledAt:         at,
		CancellationReason:  reason,
	}, nil
}

func (s *Subscription) Suspend() error {
	return s.changeStatus(types.SubscriptionStatusSuspended)
}

func (s *Subscription) Activate() error {
	return s.changeStatus(types.SubscriptionStatusActive)
}

func (s *Subscription) MarkAsExpired() error {
	if err := s.changeStatus(types.SubscriptionStatusExpired); err != nil {
		return err
	}
	s.AutoRenew = false
	return nil
}

func (s *Subscription) EnableAutoRenew() error {
	if s.Status == types.SubscriptionStatusCancelled {
		return ierr.NewError("cannot enable auto-renew for cancelled subscription").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	s.AutoRenew = true
	s.NextBillingDate = s.calculateNextBillingDate()
	return nil
}

func (s *Subscription) DisableAutoRenew() {
	s.AutoRenew = false
	s.NextBillingDate = nil
}

// UpdateBillingPeriod switches the cadence and reprices the current period
// in place, keeping the period start.
func (s *Subscription) UpdateBillingPeriod(newPeriod types.BillingPeriod, newPrice types.Money) error {
	if err := newPeriod.Validate(); err != nil {
		return err
	}
	start := s.SubscriptionPeriod.Start
	period, err := types.NewDateRange(start, newPeriod.PeriodEnd(start))
	if err != nil {
		return err
	}
	s.BillingPeriod = newPeriod
	s.Price = newPrice
	s.SubscriptionPeriod = period
	s.NextBillingDate = s.calculateNextBillingDate()
	return nil
}

// IsActive reports whether the subscription is active both by status and by
// period at the given instant.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == types.SubscriptionStatusActive && s.SubscriptionPeriod.IsActive(now)
}

func (s *Subscription) IsTrial() bool {
	return s.Status == types.SubscriptionStatusTrial
}

func (s *Subscription) DaysRemaining(now time.Time) int {
	return s.SubscriptionPeriod.DaysRemaining(now)
}

func (s *Subscription) calculateNextBillingDate() *time.Time {
	if !s.AutoRenew || s.Status == types.SubscriptionStatusCancelled {
		return nil
	}
	end := s.SubscriptionPeriod.End
	return &end
}

func (s *Subscription) changeStatus(to types.SubscriptionStatus) error {
	if err := ValidateTransition(s.Status, to); err != nil {
		return err
	}
	s.Status = to
	return nil
}
