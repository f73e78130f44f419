package format

import (
	"math"
	"time"
)

// DueStatus classifies how close a due date is.
type DueStatus string

const (
	DueNoDate  DueStatus = "no-date"
	DueOverdue DueStatus = "overdue"
	DueSoon    DueStatus = "due-soon"
	DueCurrent DueStatus = "current"
)

// DaysUntilDue returns the number of whole days until due, rounded up, which
// may be negative for overdue dates. ok is false when due is absent or
// unparsable.
func DaysUntilDue(due string, now time.Time) (int, bool) {
	t, ok := ParseDate(due)
	if !ok {
		return 0, false
	}

	days := int(math.Ceil(t.Sub(now).Hours() / 24))
	return days, true
}

// Due classifies a due date relative to now: overdue when past, due-soon
// within 7 days (inclusive), current beyond that.
func Due(due string, now time.Time) DueStatus {
	days, ok := DaysUntilDue(due, now)
	switch {
	case !ok:
		return DueNoDate
	case days < 0:
		return DueOverdue
	case days <= 7:
		return DueSoon
	default:
		return DueCurrent
	}
}
