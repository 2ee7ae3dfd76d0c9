package progress

import "github.com/alexanderramin/coursepulse/internal/domain"

// Completions maps activity id to resolved state.
type Completions map[int64]domain.CompletionState

// State returns the state for an activity, Incomplete when unknown.
func (c Completions) State(activityID int64) domain.CompletionState {
	if s, ok := c[activityID]; ok {
		return s
	}
	return domain.CompletionIncomplete
}

// ResolveCompletions overlays submissions onto the host's raw completion
// states for one user. Only activities in the list are consulted, so
// submissions that reference vanished activities are ignored.
func ResolveCompletions(activities []domain.Activity, userID int64, raw map[int64]domain.CompletionState, submissions domain.SubmissionSet) Completions {
	out := make(Completions, len(activities))
	for _, a := range activities {
		state, ok := raw[a.ID]
		if !ok {
			state = domain.CompletionIncomplete
		}
		sub, submitted := submissions.Lookup(userID, a.ID)
		out[a.ID] = OverlayState(state, sub, submitted)
	}
	return out
}

// OverlayState applies the submission overlay to a single raw state.
func OverlayState(raw domain.CompletionState, sub domain.SubmissionRecord, submitted bool) domain.CompletionState {
	switch {
	case raw == domain.CompletionIncomplete && submitted:
		return domain.CompletionSubmitted
	case raw == domain.CompletionCompleteFail && submitted && !sub.Graded:
		return domain.CompletionSubmitted
	default:
		return raw
	}
}
