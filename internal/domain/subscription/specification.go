package subscription

import (
	"time"

	"github.com/subplane/subplane/internal/types"
)

// ActiveSpec selects subscriptions that are active and not past their period
// end at the given instant.
func ActiveSpec(asOf time.Time) types.Specification[*Subscription] {
	return types.SpecificationFunc[*Subscription](func(s *Subscription) bool {
		return s.Status == types.SubscriptionStatusActive && !s.SubscriptionPeriod.End.Before(asOf)
	})
}

// TenantActiveSpec selects the active subscription of a specific tenant.
func TenantActiveSpec(tenantID string, asOf time.Time) types.Specification[*Subscription] {
	active := ActiveSpec(asOf)
	return types.SpecificationFunc[*Subscription](func(s *Subscription) bool {
		return s.TenantID != nil && *s.TenantID == tenantID && active.IsSatisfiedBy(s)
	})
}

// ExpiredSpec selects subscriptions whose period has lapsed while still
// active, plus those already marked expired.
func ExpiredSpec(asOf time.Time) types.Specification[*Subscription] {
	return types.SpecificationFunc[*Subscription](func(s *Subscription) bool {
		if s.Status == types.SubscriptionStatusExpired {
			return true
		}
		return s.Status == types.SubscriptionStatusActive && s.SubscriptionPeriod.End.Before(asOf)
	})
}

// ExpiringWithinSpec selects active subscriptions ending within the given
// number of days.
func ExpiringWithinSpec(asOf time.Time, days int) types.Specification[*Subscription] {
	threshold := asOf.AddDate(0, 0, days)
	return types.SpecificationFunc[*Subscription](func(s *Subscription) bool {
		return s.Status == types.SubscriptionStatusActive &&
			s.SubscriptionPeriod.End.After(asOf) &&
			!s.SubscriptionPeriod.End.After(threshold)
	})
}

// TrialExpiringWithinSpec selects trials ending within the given number of
// days.
func TrialExpiringWithinSpec(asOf time.Time, days int) types.Specification[*Subscription] {
	threshold := asOf.AddDate(0, 0, days)
	return types.SpecificationFunc[*Subscription](func(s *Subscription) bool {
		return s.Status == types.SubscriptionStatusTrial &&
			s.TrialEndDate != nil &&
			s.TrialEndDate.After(asOf) &&
			!s.TrialEndDate.After(threshold)
	})
}
