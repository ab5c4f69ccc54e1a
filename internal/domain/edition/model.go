package edition

import (
	"strings"
	"time"

	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/events"
	"github.com/subplane/subplane/internal/types"
)

const (
	maxNameLength        = 128
	maxDisplayNameLength = 256
)

// Edition is a named, priced plan with feature limits. It is a consistency
// boundary: all mutation goes through the methods below, never raw field
// assignment. An edition is never deleted while an active subscription
// references it; that rule needs a repository lookup and lives in the
// subscription service, not here.
type Edition struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	DisplayName   string        `json:"display_name"`
	Description   string        `json:"description"`
	MonthlyPrice  types.Money   `json:"monthly_price"`
	YearlyPrice   types.Money   `json:"yearly_price"`
	IsActive      bool          `json:"is_active"`
	DisplayOrder  int           `json:"display_order"`
	FeatureLimits FeatureLimits `json:"feature_limits"`
	types.BaseModel
}

// New validates and constructs an Edition.
func New(
	id string,
	name string,
	displayName string,
	description string,
	monthlyPrice types.Money,
	yearlyPrice types.Money,
	limits FeatureLimits,
	base types.BaseModel,
) (*Edition, error) {
	e := &Edition{
		ID:            id,
		IsActive:      true,
		FeatureLimits: limits,
		BaseModel:     base,
	}
	if err := e.setName(name); err != nil {
		return nil, err
	}
	if err := e.setDisplayName(displayName); err != nil {
		return nil, err
	}
	e.Description = strings.TrimSpace(description)
	if err := e.setPricing(monthlyPrice, yearlyPrice); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Edition) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ierr.NewError("edition name cannot be empty").
			WithHint("Please provide an edition name").
			Mark(ierr.ErrValidation)
	}
	if len(name) > maxNameLength {
		return ierr.NewError("edition name too long").
			WithHintf("Edition name cannot exceed %d characters", maxNameLength).
			WithReportableDetails(map[string]any{
				"name_length": len(name),
			}).
			Mark(ierr.ErrValidation)
	}
	e.Name = name
	return nil
}

func (e *Edition) setDisplayName(displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return ierr.NewError("edition display name cannot be empty").
			WithHint("Please provide an edition display name").
			Mark(ierr.ErrValidation)
	}
	if len(displayName) > maxDisplayNameLength {
		return ierr.NewError("edition display name too long").
			WithHintf("Edition display name cannot exceed %d characters", maxDisplayNameLength).
			WithReportableDetails(map[string]any{
				"display_name_length": len(displayName),
			}).
			Mark(ierr.ErrValidation)
	}
	e.DisplayName = displayName
	return nil
}

func (e *Edition) setPricing(monthlyPrice, yearlyPrice types.Money) error {
	// NewMoney already rejects negatives; re-check here so an Edition built
	// from persisted state fails loudly instead of carrying a bad price.
	if monthlyPrice.IsNegative() || yearlyPrice.IsNegative() {
		return ierr.NewError("edition price cannot be negative").
			WithHint("Edition prices must be zero or positive").
			Mark(ierr.ErrValidation)
	}
	if monthlyPrice.Currency != yearlyPrice.Currency {
		return ierr.NewError("edition prices must share a currency").
			WithReportableDetails(map[string]any{
				"monthly_currency": monthlyPrice.Currency,
				"yearly_currency":  yearlyPrice.Currency,
			}).
			Mark(ierr.ErrValidation)
	}
	e.MonthlyPrice = monthlyPrice
	e.YearlyPrice = yearlyPrice
	return nil
}

// PriceForPeriod returns the list price for the given billing cadence.
func (e *Edition) PriceForPeriod(period types.BillingPeriod) types.Money {
	if period == types.BillingPeriodYearly {
		return e.YearlyPrice
	}
	return e.MonthlyPrice
}

// Activate enables the edition for new subscriptions and returns the event
// describing the change for the caller to publish.
func (e *Edition) Activate(at time.Time) *events.EditionActivated {
	e.IsActive = true
	return &events.EditionActivated{
		EditionID:   e.ID,
		EditionName: e.Name,
		IsActivated: true,
		ChangedAt:   at,
	}
}

// Deactivate blocks the edition from new subscriptions. Existing
// subscriptions keep running until renewal.
func (e *Edition) Deactivate(at time.Time) *events.EditionActivated {
	e.IsActive = false
	return &events.EditionActivated{
		EditionID:   e.ID,
		EditionName: e.Name,
		IsActivated: false,
		ChangedAt:   at,
	}
}

func (e *Edition) UpdatePricing(monthlyPrice, yearlyPrice types.Money) error {
	return e.setPricing(monthlyPrice, yearlyPrice)
}

func (e *Edition) UpdateFeatureLimits(limits FeatureLimits) {
	e.FeatureLimits = limits
}

func (e *Edition) UpdateDisplayName(displayName string) error {
	return e.setDisplayName(displayName)
}

func (e *Edition) UpdateDescription(description string) {
	e.Description = strings.TrimSpace(description)
}

func (e *Edition) UpdateDisplayOrder(displayOrder int) error {
	if displayOrder < 0 {
		return ierr.NewError("display order cannot be negative").
			WithReportableDetails(map[string]any{
				"display_order": displayOrder,
			}).
			Mark(ierr.ErrValidation)
	}
	e.DisplayOrder = displayOrder
	return nil
}
