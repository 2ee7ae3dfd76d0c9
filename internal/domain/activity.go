package domain

import "time"

// Activity is a snapshot of one trackable course module. ID is the
// course-module id; InstanceID is the id inside the module's own table.
type Activity struct {
	ID            int64
	CourseID      int64
	ModuleType    ModuleType
	InstanceID    int64
	Name          string
	ExpectedAt    *time.Time
	Section       int
	Position      int
	IconRef       string
	URL           string
	Visible       bool
	Available     bool
	AvailableInfo string
	Tracking      CompletionTracking
}

// HasExpected reports whether the activity carries a non-zero expected
// completion time.
func (a Activity) HasExpected() bool {
	return a.ExpectedAt != nil && !a.ExpectedAt.IsZero()
}

// Ref returns the (module, instance) pair used by allow-lists and exclusions.
func (a Activity) Ref() ActivityRef {
	return ActivityRef{ModuleType: a.ModuleType, InstanceID: a.InstanceID}
}

type ActivityRef struct {
	ModuleType ModuleType
	InstanceID int64
}

// Exclusion is a gradebook exemption removing an activity from one user's
// tracking.
type Exclusion struct {
	ModuleType ModuleType
	InstanceID int64
	UserID     int64
}

type ExclusionSet map[Exclusion]struct{}

func NewExclusionSet(exclusions ...Exclusion) ExclusionSet {
	set := make(ExclusionSet, len(exclusions))
	for _, e := range exclusions {
		set[e] = struct{}{}
	}
	return set
}

func (s ExclusionSet) Excludes(a Activity, userID int64) bool {
	if s == nil {
		return false
	}
	_, ok := s[Exclusion{ModuleType: a.ModuleType, InstanceID: a.InstanceID, UserID: userID}]
	return ok
}
