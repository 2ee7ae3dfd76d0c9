package progress

import "github.com/alexanderramin/coursepulse/internal/domain"

// ActionPolicy holds the thresholds that gate notification actions.
type ActionPolicy struct {
	// SubmitLearnerMin and SubmitGraderMax gate the staff-facing offer to
	// hand a learner's work to graders.
	SubmitLearnerMin int
	SubmitGraderMax  int
	// SelfServiceLearnerAbove and SelfServiceGraderBelow gate the offer
	// shown on a learner's own bar.
	SelfServiceLearnerAbove int
	SelfServiceGraderBelow  int
}

func DefaultActionPolicy() ActionPolicy {
	return ActionPolicy{
		SubmitLearnerMin:        90,
		SubmitGraderMax:         50,
		SelfServiceLearnerAbove: 85,
		SelfServiceGraderBelow:  100,
	}
}

// DecideAction returns the single action offered to viewer for a learner with
// the given percentages. The submit-for-grading offer is reserved for
// privileged viewers and takes precedence; graders are otherwise offered to
// release results.
func DecideAction(p Percentages, viewer domain.ViewerContext, policy ActionPolicy) domain.ActionSignal {
	if viewer.IsPrivileged() && p.Learner >= policy.SubmitLearnerMin && p.Grader < policy.SubmitGraderMax {
		return domain.ActionOfferSubmitForGrading
	}
	if viewer.IsGrader() {
		return domain.ActionOfferReleaseResult
	}
	return domain.ActionNone
}

// DecideSelfService returns the offer shown on a learner's own bar once
// nearly everything is submitted but grading is unfinished.
func DecideSelfService(p Percentages, policy ActionPolicy) domain.ActionSignal {
	if p.Learner > policy.SelfServiceLearnerAbove && p.Grader < policy.SelfServiceGraderBelow {
		return domain.ActionOfferSubmitForGrading
	}
	return domain.ActionNone
}
