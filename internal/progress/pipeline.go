package progress

import (
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// BarInput is everything needed to build one learner's bar.
type BarInput struct {
	Catalog     []domain.Activity
	Inclusion   InclusionPolicy
	Visibility  VisibilityOptions
	Exclusions  domain.ExclusionSet
	RawStates   map[int64]domain.CompletionState
	Submissions domain.SubmissionSet
	// Subject is the learner whose bar is built; Viewer is who looks at it.
	Subject domain.ViewerContext
	Viewer  domain.ViewerContext
	BaseURL string
	Layout  LayoutConfig
}

type BarResult struct {
	Activities  []domain.Activity
	Completions Completions
	Bar         ProgressBar
	Percentages Percentages
}

// BuildBar runs selection, filtering, resolution, link resolution and layout
// in order. It does not touch its inputs.
func BuildBar(in BarInput, now time.Time) BarResult {
	selected := SelectActivities(in.Catalog, in.Inclusion, in.Layout.OrderBy)
	visible := FilterVisible(selected, in.Subject, in.Exclusions, in.Visibility)
	completions := ResolveCompletions(visible, in.Subject.UserID, in.RawStates, in.Submissions)

	var courseID int64
	if len(visible) > 0 {
		courseID = visible[0].CourseID
	}
	links := ResolveLinks(visible, LinkContext{
		BaseURL:  in.BaseURL,
		CourseID: courseID,
		Subject:  in.Subject.UserID,
		Viewer:   in.Viewer,
	}, in.Submissions)

	return BarResult{
		Activities:  visible,
		Completions: completions,
		Bar: Layout(LayoutInput{
			Activities:  visible,
			Completions: completions,
			Links:       links,
		}, in.Layout, now),
		Percentages: ComputePercentages(visible, completions),
	}
}
