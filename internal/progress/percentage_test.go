package progress

import (
	"testing"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPercentage_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0, Percentage(nil, nil, RoleLearner))
	assert.Equal(t, 0, Percentage(nil, nil, RoleGrader))
}

func TestPercentage_AsymmetricRoles(t *testing.T) {
	acts := activitiesWithCount(5)
	completions := Completions{
		1: domain.CompletionComplete,
		2: domain.CompletionCompletePass,
		3: domain.CompletionCompleteFail,
		4: domain.CompletionSubmitted,
		5: domain.CompletionIncomplete,
	}

	p := ComputePercentages(acts, completions)

	assert.Equal(t, 60, p.Learner, "complete, pass and submitted count for the learner")
	assert.Equal(t, 60, p.Grader, "complete, pass and fail count for the grader")
}

func TestPercentage_Rounding(t *testing.T) {
	acts := activitiesWithCount(3)
	completions := Completions{1: domain.CompletionSubmitted, 2: domain.CompletionSubmitted}

	p := ComputePercentages(acts, completions)

	assert.Equal(t, 67, p.Learner)
	assert.Equal(t, 0, p.Grader)
}

func TestPercentage_AlwaysInRange(t *testing.T) {
	states := []domain.CompletionState{
		domain.CompletionIncomplete, domain.CompletionComplete, domain.CompletionCompletePass,
		domain.CompletionCompleteFail, domain.CompletionSubmitted,
	}

	for n := 1; n <= 12; n++ {
		acts := activitiesWithCount(n)
		completions := make(Completions)
		for i, a := range acts {
			completions[a.ID] = states[(i*n)%len(states)]
		}
		for _, role := range []Role{RoleLearner, RoleGrader} {
			got := Percentage(acts, completions, role)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}
