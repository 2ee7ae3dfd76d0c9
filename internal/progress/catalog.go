package progress

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// InclusionPolicy decides which tracked activities belong on a bar.
type InclusionPolicy struct {
	Mode     domain.InclusionMode
	Selected []domain.ActivityRef
}

// AllTracked is the default policy.
func AllTracked() InclusionPolicy {
	return InclusionPolicy{Mode: domain.IncludeAllTracked}
}

// Includes reports whether the policy admits the activity. A selected-list
// policy with an empty list admits everything.
func (p InclusionPolicy) Includes(a domain.Activity) bool {
	if p.Mode != domain.IncludeSelected || len(p.Selected) == 0 {
		return true
	}
	return slices.Contains(p.Selected, a.Ref())
}

// SelectActivities keeps tracked activities admitted by the policy and orders
// them. The input slice is not modified.
func SelectActivities(activities []domain.Activity, policy InclusionPolicy, orderBy domain.OrderBy) []domain.Activity {
	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Tracking == domain.TrackingNone {
			continue
		}
		if !policy.Includes(a) {
			continue
		}
		out = append(out, a)
	}
	SortActivities(out, orderBy)
	return out
}

// SortActivities orders activities in place. Anything other than
// OrderByCourse sorts by expected time.
func SortActivities(activities []domain.Activity, orderBy domain.OrderBy) {
	if orderBy == domain.OrderByCourse {
		slices.SortStableFunc(activities, CompareCourseOrder)
		return
	}
	slices.SortStableFunc(activities, CompareExpected)
}

// CompareCourseOrder compares by section, then position within the section.
func CompareCourseOrder(a, b domain.Activity) int {
	if c := cmp.Compare(a.Section, b.Section); c != 0 {
		return c
	}
	return cmp.Compare(a.Position, b.Position)
}

// CompareExpected compares by expected completion time. Activities without an
// expected time sort after those with one; ties, including two activities
// without a time, fall back to course order.
func CompareExpected(a, b domain.Activity) int {
	aHas, bHas := a.HasExpected(), b.HasExpected()
	switch {
	case aHas && bHas:
		if c := a.ExpectedAt.Compare(*b.ExpectedAt); c != 0 {
			return c
		}
	case aHas:
		return -1
	case bHas:
		return 1
	}
	return CompareCourseOrder(a, b)
}
