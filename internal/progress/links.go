package progress

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// AlternateLink is the grading view offered to staff looking at a learner's
// bar, gated on a capability.
type AlternateLink struct {
	Path       string
	Capability domain.Capability
}

// AlternateLinks lists the grading views per module type. Placeholders are
// :cmid, :userid, :courseid, :eventid and :attemptid.
var AlternateLinks = map[domain.ModuleType]AlternateLink{
	domain.ModuleAssign: {
		Path:       "/mod/assign/view.php?id=:cmid&action=grade&userid=:userid",
		Capability: domain.CapAssignGrade,
	},
	domain.ModuleFeedback: {
		Path:       "/mod/feedback/show_entries.php?id=:cmid&do_show=showoneentry&userid=:userid",
		Capability: domain.CapFeedbackViewReports,
	},
	domain.ModuleLesson: {
		Path:       "/mod/lesson/report.php?id=:cmid&action=reportdetail&userid=:userid",
		Capability: domain.CapLessonViewReports,
	},
	domain.ModuleQuiz: {
		Path:       "/mod/quiz/review.php?attempt=:attemptid",
		Capability: domain.CapQuizViewReports,
	},
}

// LinkContext describes whose bar is drawn, for whom, and where.
type LinkContext struct {
	BaseURL  string
	CourseID int64
	Subject  int64
	Viewer   domain.ViewerContext
}

// ResolveLinks returns the grading-view overrides for a bar. Nothing is
// returned when viewers look at their own bar. Only assignments are linked
// without a known attempt; every other module keeps its own URL until the
// learner has an attempt on record.
func ResolveLinks(activities []domain.Activity, lc LinkContext, submissions domain.SubmissionSet) map[int64]string {
	links := make(map[int64]string)
	if lc.Viewer.UserID == lc.Subject {
		return links
	}

	for _, a := range activities {
		alt, ok := AlternateLinks[a.ModuleType]
		if !ok || !lc.Viewer.Has(alt.Capability) {
			continue
		}

		var attemptID int64
		if sub, ok := submissions.Lookup(lc.Subject, a.ID); ok {
			attemptID = sub.AttemptID
		}
		if a.ModuleType != domain.ModuleAssign && attemptID == 0 {
			continue
		}

		r := strings.NewReplacer(
			":courseid", strconv.FormatInt(lc.CourseID, 10),
			":eventid", strconv.FormatInt(a.InstanceID, 10),
			":cmid", strconv.FormatInt(a.ID, 10),
			":userid", strconv.FormatInt(lc.Subject, 10),
			":attemptid", strconv.FormatInt(attemptID, 10),
		)
		links[a.ID] = strings.TrimRight(lc.BaseURL, "/") + r.Replace(alt.Path)
	}
	return links
}
