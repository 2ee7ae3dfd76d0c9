package domain

import "fmt"

// CompletionState is the resolved completion classification of one
// (activity, user) pair. The first four values share the host's raw codes;
// CompletionSubmitted only ever comes out of the submission overlay.
type CompletionState int

const (
	CompletionIncomplete   CompletionState = 0
	CompletionComplete     CompletionState = 1
	CompletionCompletePass CompletionState = 2
	CompletionCompleteFail CompletionState = 3
	CompletionSubmitted    CompletionState = 4
)

// CompletionFromRaw converts a raw host completion code. Unknown codes are
// rejected so a loosely-typed value never leaks past the repository layer.
func CompletionFromRaw(code int) (CompletionState, error) {
	switch s := CompletionState(code); s {
	case CompletionIncomplete, CompletionComplete, CompletionCompletePass, CompletionCompleteFail:
		return s, nil
	default:
		return CompletionIncomplete, fmt.Errorf("unknown raw completion code %d", code)
	}
}

func (s CompletionState) String() string {
	switch s {
	case CompletionIncomplete:
		return "incomplete"
	case CompletionComplete:
		return "complete"
	case CompletionCompletePass:
		return "complete_pass"
	case CompletionCompleteFail:
		return "complete_fail"
	case CompletionSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("completion(%d)", int(s))
	}
}
