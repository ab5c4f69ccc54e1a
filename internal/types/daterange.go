package types

import (
	"fmt"
	"time"

	ierr "github.com/subplane/subplane/internal/errors"
)

// DateRange is an inclusive [Start, End] period. End is never before Start.
// Queries against "now" take the instant as a parameter so the value object
// stays pure and clock-injectable.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, ierr.NewError("invalid date range").
			WithHint("End date cannot be before start date").
			WithReportableDetails(map[string]any{
				"start": start,
				"end":   end,
			}).
			Mark(ierr.ErrValidation)
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) IsActive(now time.Time) bool {
	return !now.Before(r.Start) && !now.After(r.End)
}

func (r DateRange) HasExpired(now time.Time) bool {
	return now.After(r.End)
}

// DaysRemaining is clamped to zero once the range has expired.
func (r DateRange) DaysRemaining(now time.Time) int {
	days := int(r.End.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (r DateRange) TotalDays() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ExtendByMonths produces the adjacent range starting the day after End.
func (r DateRange) ExtendByMonths(months int) DateRange {
	return DateRange{
		Start: r.End.AddDate(0, 0, 1),
		End:   r.End.AddDate(0, months, 0),
	}
}

// ExtendByYears produces the adjacent range starting the day after End.
func (r DateRange) ExtendByYears(years int) DateRange {
	return DateRange{
		Start: r.End.AddDate(0, 0, 1),
		End:   r.End.AddDate(years, 0, 0),
	}
}

func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
