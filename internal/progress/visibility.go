package progress

import "github.com/alexanderramin/coursepulse/internal/domain"

// VisibilityOptions carries site-level switches consulted by FilterVisible.
type VisibilityOptions struct {
	AvailabilityEnabled bool
}

// FilterVisible removes activities the subject must not see. viewer is the
// capability context of the user whose bar is being built. Surviving
// activities are copies; when availability restrictions are enabled their
// Available flag is rewritten (always true for viewers who may see hidden
// activities).
func FilterVisible(activities []domain.Activity, viewer domain.ViewerContext, exclusions domain.ExclusionSet, opts VisibilityOptions) []domain.Activity {
	bypass := viewer.Has(domain.CapViewHiddenActivities)

	out := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Visible && !bypass {
			continue
		}

		if opts.AvailabilityEnabled {
			if bypass {
				a.Available = true
			} else if !a.Available && a.AvailableInfo == "" {
				continue
			}
		}

		if exclusions.Excludes(a, viewer.UserID) {
			continue
		}

		out = append(out, a)
	}
	return out
}
