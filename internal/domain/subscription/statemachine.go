package subscription

import (
	ierr "github.com/subplane/subplane/internal/errors"
	"github.com/subplane/subplane/internal/types"
)

// ValidTransitionsFrom returns the statuses a subscription may move to from
// the given status. Cancelled is terminal. The switch is exhaustive over
// types.SubscriptionStatus; an unknown status transitions nowhere.
func ValidTransitionsFrom(from types.SubscriptionStatus) []types.SubscriptionStatus {
	switch from {
	case types.SubscriptionStatusTrial:
		return []types.SubscriptionStatus{
			types.SubscriptionStatusActive,
			types.SubscriptionStatusCancelled,
			types.SubscriptionStatusExpired,
		}
	case types.SubscriptionStatusActive:
		return []types.SubscriptionStatus{
			types.SubscriptionStatusSuspended,
			types.SubscriptionStatusCancelled,
			types.SubscriptionStatusExpired,
		}
	case types.SubscriptionStatusSuspended:
		return []types.SubscriptionStatus{
			types.SubscriptionStatusActive,
			types.SubscriptionStatusCancelled,
			types.SubscriptionStatusExpired,
		}
	case types.SubscriptionStatusExpired:
		return []types.SubscriptionStatus{
			types.SubscriptionStatusActive,
			types.SubscriptionStatusCancelled,
		}
	case types.SubscriptionStatusCancelled:
		return nil
	default:
		return nil
	}
}

// CanTransition reports whether moving from one status to another is allowed.
// A same-status transition is always permitted so operations stay idempotent.
func CanTransition(from, to types.SubscriptionStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range ValidTransitionsFrom(from) {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition rejects an invalid status move with a typed error
// carrying both the current and the requested status.
func ValidateTransition(from, to types.SubscriptionStatus) error {
	if !CanTransition(from, to) {
		return ierr.NewError("invalid subscription status transition").
			WithHintf("Cannot transition subscription from %s to %s", from, to).
			WithReportableDetails(map[string]any{
				"current_status":   from,
				"requested_status": to,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return nil
}
