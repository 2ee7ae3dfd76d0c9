package domain

import "sort"

// SubmissionSource identifies which of the five source queries produced a
// record. The declaration order is also the merge order.
type SubmissionSource int

const (
	SourceAssignIndividual SubmissionSource = iota
	SourceAssignTeam
	SourceWorkshop
	SourceQuizSelectedAttempt
	SourceQuizAllAttempts
)

func (s SubmissionSource) String() string {
	switch s {
	case SourceAssignIndividual:
		return "assign_individual"
	case SourceAssignTeam:
		return "assign_team"
	case SourceWorkshop:
		return "workshop"
	case SourceQuizSelectedAttempt:
		return "quiz_selected_attempt"
	case SourceQuizAllAttempts:
		return "quiz_all_attempts"
	default:
		return "unknown"
	}
}

type SubmissionKey struct {
	UserID     int64
	ActivityID int64
}

// Less orders keys by user, then activity.
func (k SubmissionKey) Less(other SubmissionKey) bool {
	if k.UserID != other.UserID {
		return k.UserID < other.UserID
	}
	return k.ActivityID < other.ActivityID
}

type SubmissionRecord struct {
	UserID     int64
	ActivityID int64
	Graded     bool
	AttemptID  int64
	Source     SubmissionSource
}

func (r SubmissionRecord) Key() SubmissionKey {
	return SubmissionKey{UserID: r.UserID, ActivityID: r.ActivityID}
}

// SubmissionSet holds at most one record per (user, activity).
type SubmissionSet map[SubmissionKey]SubmissionRecord

func (s SubmissionSet) Lookup(userID, activityID int64) (SubmissionRecord, bool) {
	r, ok := s[SubmissionKey{UserID: userID, ActivityID: activityID}]
	return r, ok
}

// Keys returns every key in deterministic (user, activity) order.
func (s SubmissionSet) Keys() []SubmissionKey {
	keys := make([]SubmissionKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Records returns the records in Keys order.
func (s SubmissionSet) Records() []SubmissionRecord {
	keys := s.Keys()
	out := make([]SubmissionRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, s[k])
	}
	return out
}

// SubmissionRow is one raw row returned by a source query before reduction.
// GroupID is only set by the team-submission source; Attempt and GradeMethod
// only by the quiz sources.
type SubmissionRow struct {
	UserID      int64
	ActivityID  int64
	GroupID     int64
	AttemptID   int64
	Attempt     int
	GradeMethod QuizGradeMethod
	Graded      bool
}
