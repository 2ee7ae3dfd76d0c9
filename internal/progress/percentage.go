package progress

import (
	"math"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// Role selects which counting rule Percentage applies.
type Role string

const (
	RoleLearner Role = "learner"
	RoleGrader  Role = "grader"
)

// CountsForLearner reports whether a state counts toward learner progress.
// Submission alone is enough.
func CountsForLearner(s domain.CompletionState) bool {
	switch s {
	case domain.CompletionComplete, domain.CompletionCompletePass, domain.CompletionSubmitted:
		return true
	}
	return false
}

// CountsForGrader reports whether a state counts toward grader progress:
// only activities that have been resolved, pass or fail.
func CountsForGrader(s domain.CompletionState) bool {
	switch s {
	case domain.CompletionComplete, domain.CompletionCompletePass, domain.CompletionCompleteFail:
		return true
	}
	return false
}

// Percentage returns the rounded share of activities counted under role, in
// [0, 100]. An empty activity list yields 0.
func Percentage(activities []domain.Activity, completions Completions, role Role) int {
	if len(activities) == 0 {
		return 0
	}
	counts := CountsForLearner
	if role == RoleGrader {
		counts = CountsForGrader
	}

	matched := 0
	for _, a := range activities {
		if counts(completions.State(a.ID)) {
			matched++
		}
	}
	return int(math.Round(float64(matched) / float64(len(activities)) * 100))
}

// Percentages holds both role views of the same bar.
type Percentages struct {
	Learner int
	Grader  int
}

func ComputePercentages(activities []domain.Activity, completions Completions) Percentages {
	return Percentages{
		Learner: Percentage(activities, completions, RoleLearner),
		Grader:  Percentage(activities, completions, RoleGrader),
	}
}
