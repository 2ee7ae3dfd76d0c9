package progress

import (
	"testing"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDecideAction(t *testing.T) {
	policy := DefaultActionPolicy()
	admin := domain.NewViewerContext(1, domain.RoleAdmin)
	adminTeacher := domain.NewViewerContext(1, domain.RoleAdmin, domain.RoleTeacher)
	teacher := domain.NewViewerContext(2, domain.RoleEditingTeacher)
	manager := domain.NewViewerContext(3, domain.RoleManager)

	tests := []struct {
		name   string
		p      Percentages
		viewer domain.ViewerContext
		want   domain.ActionSignal
	}{
		{"admin at threshold", Percentages{Learner: 90, Grader: 49}, admin, domain.ActionOfferSubmitForGrading},
		{"admin below learner threshold", Percentages{Learner: 89, Grader: 0}, admin, domain.ActionNone},
		{"admin with grading mostly done", Percentages{Learner: 100, Grader: 50}, admin, domain.ActionNone},
		{"submit beats release", Percentages{Learner: 95, Grader: 10}, adminTeacher, domain.ActionOfferSubmitForGrading},
		{"teacher falls back to release", Percentages{Learner: 95, Grader: 10}, teacher, domain.ActionOfferReleaseResult},
		{"admin teacher outside submit window", Percentages{Learner: 10, Grader: 10}, adminTeacher, domain.ActionOfferReleaseResult},
		{"manager gets nothing", Percentages{Learner: 100, Grader: 0}, manager, domain.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideAction(tt.p, tt.viewer, policy))
		})
	}
}

func TestDecideSelfService(t *testing.T) {
	policy := DefaultActionPolicy()

	assert.Equal(t, domain.ActionOfferSubmitForGrading, DecideSelfService(Percentages{Learner: 86, Grader: 99}, policy))
	assert.Equal(t, domain.ActionNone, DecideSelfService(Percentages{Learner: 85, Grader: 0}, policy))
	assert.Equal(t, domain.ActionNone, DecideSelfService(Percentages{Learner: 100, Grader: 100}, policy))
}
