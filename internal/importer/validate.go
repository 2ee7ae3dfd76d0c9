package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

var (
	validInclusionModes = map[string]bool{
		string(domain.IncludeAllTracked): true,
		string(domain.IncludeSelected):   true,
	}
	validTracking      = map[string]domain.CompletionTracking{"none": domain.TrackingNone, "manual": domain.TrackingManual, "automatic": domain.TrackingAutomatic}
	validSubmitStatus  = map[string]bool{domain.SubmissionStatusNew: true, domain.SubmissionStatusDraft: true, domain.SubmissionStatusSubmitted: true}
	validAttemptStates = map[string]bool{domain.AttemptInProgress: true, domain.AttemptFinished: true, domain.AttemptAbandoned: true}
	validGradeMethods  = map[string]domain.QuizGradeMethod{
		"highest": domain.GradeHighest,
		"average": domain.GradeAverage,
		"first":   domain.GradeFirstAttempt,
		"last":    domain.GradeLastAttempt,
	}
)

// refs collects the ids declared so far, for cross-reference checks.
type refs struct {
	users      map[int64]bool
	groups     map[int64]bool
	activities map[int64]bool
	instances  map[domain.ActivityRef]bool
}

// ValidateCourseSchema checks the course file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCourseSchema(schema *CourseSchema) []error {
	var errs []error
	r := refs{
		users:      make(map[int64]bool),
		groups:     make(map[int64]bool),
		activities: make(map[int64]bool),
		instances:  make(map[domain.ActivityRef]bool),
	}

	errs = append(errs, validateCourse(&schema.Course)...)
	errs = append(errs, validateUsers(schema.Users, r)...)
	errs = append(errs, validateGroups(schema.Groups, schema.Groupings, r)...)
	errs = append(errs, validateActivities(schema.Activities, r)...)
	errs = append(errs, validateSettings(schema.Settings)...)
	errs = append(errs, validateAssignments(schema.Assignments, r)...)
	errs = append(errs, validateWorkshops(schema.Workshops, r)...)
	errs = append(errs, validateQuizzes(schema.Quizzes, r)...)
	errs = append(errs, validateCompletions(schema.Completions, r)...)
	errs = append(errs, validateExclusions(schema.Exclusions, r)...)

	return errs
}

func validateCourse(c *CourseImport) []error {
	var errs []error
	if c.ID <= 0 {
		errs = append(errs, fmt.Errorf("course.id must be positive"))
	}
	if c.ShortName == "" {
		errs = append(errs, fmt.Errorf("course.short_name is required"))
	}
	return errs
}

func validateSettings(s *SettingsImport) []error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.InclusionMode != "" && !validInclusionModes[s.InclusionMode] {
		errs = append(errs, fmt.Errorf("settings.inclusion_mode: invalid value %q", s.InclusionMode))
	}
	for i, ref := range s.Selected {
		if !domain.ValidModuleTypes[ref.Module] {
			errs = append(errs, fmt.Errorf("settings.selected[%d]: invalid module %q", i, ref.Module))
		}
		if ref.Instance <= 0 {
			errs = append(errs, fmt.Errorf("settings.selected[%d]: instance must be positive", i))
		}
	}
	return errs
}

func validateUsers(users []UserImport, r refs) []error {
	var errs []error
	usernames := make(map[string]bool)
	for i, u := range users {
		prefix := fmt.Sprintf("users[%d]", i)
		if u.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be positive", prefix))
		} else if r.users[u.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", prefix, u.ID))
		}
		r.users[u.ID] = true

		if u.Username == "" {
			errs = append(errs, fmt.Errorf("%s: username is required", prefix))
		} else if usernames[u.Username] {
			errs = append(errs, fmt.Errorf("%s: duplicate username %q", prefix, u.Username))
		}
		usernames[u.Username] = true

		for _, role := range u.Roles {
			if !domain.ValidRoles[role] {
				errs = append(errs, fmt.Errorf("%s: invalid role %q", prefix, role))
			}
		}
	}
	return errs
}

func validateGroups(groups []GroupImport, groupings []GroupingImport, r refs) []error {
	var errs []error
	for i, g := range groups {
		prefix := fmt.Sprintf("groups[%d]", i)
		if g.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be positive", prefix))
		} else if r.groups[g.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", prefix, g.ID))
		}
		r.groups[g.ID] = true
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", prefix))
		}
		for _, m := range g.Members {
			if !r.users[m] {
				errs = append(errs, fmt.Errorf("%s: member %d is not a known user", prefix, m))
			}
		}
	}

	seen := make(map[int64]bool)
	for i, gp := range groupings {
		prefix := fmt.Sprintf("groupings[%d]", i)
		if gp.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be positive", prefix))
		} else if seen[gp.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", prefix, gp.ID))
		}
		seen[gp.ID] = true
		for _, gid := range gp.Groups {
			if !r.groups[gid] {
				errs = append(errs, fmt.Errorf("%s: group %d is not defined", prefix, gid))
			}
		}
	}
	return errs
}

func validateActivities(activities []ActivityImport, r refs) []error {
	var errs []error
	for i, a := range activities {
		prefix := fmt.Sprintf("activities[%d]", i)
		if a.ID <= 0 {
			errs = append(errs, fmt.Errorf("%s: id must be positive", prefix))
		} else if r.activities[a.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", prefix, a.ID))
		}
		r.activities[a.ID] = true

		if !domain.ValidModuleTypes[a.Module] {
			errs = append(errs, fmt.Errorf("%s: invalid module %q", prefix, a.Module))
		}
		if a.Instance <= 0 {
			errs = append(errs, fmt.Errorf("%s: instance must be positive", prefix))
		}
		ref := domain.ActivityRef{ModuleType: domain.ModuleType(a.Module), InstanceID: a.Instance}
		if r.instances[ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate %s instance %d", prefix, a.Module, a.Instance))
		}
		r.instances[ref] = true

		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", prefix))
		}
		if a.Expected != nil && *a.Expected != "" {
			if _, err := time.Parse(time.RFC3339, *a.Expected); err != nil {
				errs = append(errs, fmt.Errorf("%s: invalid expected time %q (expected RFC 3339)", prefix, *a.Expected))
			}
		}
		if _, ok := validTracking[a.Tracking]; a.Tracking != "" && !ok {
			errs = append(errs, fmt.Errorf("%s: invalid tracking %q", prefix, a.Tracking))
		}
	}
	return errs
}

func validateAssignments(assignments []AssignmentImport, r refs) []error {
	var errs []error
	for i, a := range assignments {
		prefix := fmt.Sprintf("assignments[%d]", i)
		if !r.instances[domain.ActivityRef{ModuleType: domain.ModuleAssign, InstanceID: a.ID}] {
			errs = append(errs, fmt.Errorf("%s: no assign activity with instance %d", prefix, a.ID))
		}
		for j, s := range a.Submissions {
			sp := fmt.Sprintf("%s.submissions[%d]", prefix, j)
			switch {
			case s.UserID > 0 && !r.users[s.UserID]:
				errs = append(errs, fmt.Errorf("%s: user %d is not a known user", sp, s.UserID))
			case s.UserID == 0 && s.GroupID == 0:
				errs = append(errs, fmt.Errorf("%s: user_id or group_id is required", sp))
			case s.UserID == 0 && !r.groups[s.GroupID]:
				errs = append(errs, fmt.Errorf("%s: group %d is not defined", sp, s.GroupID))
			}
			if !validSubmitStatus[s.Status] {
				errs = append(errs, fmt.Errorf("%s: invalid status %q", sp, s.Status))
			}
		}
		for j, g := range a.Grades {
			if !r.users[g.UserID] {
				errs = append(errs, fmt.Errorf("%s.grades[%d]: user %d is not a known user", prefix, j, g.UserID))
			}
		}
	}
	return errs
}

func validateWorkshops(workshops []WorkshopImport, r refs) []error {
	var errs []error
	for i, w := range workshops {
		prefix := fmt.Sprintf("workshops[%d]", i)
		if !r.instances[domain.ActivityRef{ModuleType: domain.ModuleWorkshop, InstanceID: w.ID}] {
			errs = append(errs, fmt.Errorf("%s: no workshop activity with instance %d", prefix, w.ID))
		}
		for j, s := range w.Submissions {
			if !r.users[s.AuthorID] {
				errs = append(errs, fmt.Errorf("%s.submissions[%d]: author %d is not a known user", prefix, j, s.AuthorID))
			}
		}
	}
	return errs
}

func validateQuizzes(quizzes []QuizImport, r refs) []error {
	var errs []error
	for i, q := range quizzes {
		prefix := fmt.Sprintf("quizzes[%d]", i)
		if !r.instances[domain.ActivityRef{ModuleType: domain.ModuleQuiz, InstanceID: q.ID}] {
			errs = append(errs, fmt.Errorf("%s: no quiz activity with instance %d", prefix, q.ID))
		}
		if _, ok := validGradeMethods[q.GradeMethod]; !ok {
			errs = append(errs, fmt.Errorf("%s: invalid grade_method %q", prefix, q.GradeMethod))
		}
		for j, a := range q.Attempts {
			ap := fmt.Sprintf("%s.attempts[%d]", prefix, j)
			if !r.users[a.UserID] {
				errs = append(errs, fmt.Errorf("%s: user %d is not a known user", ap, a.UserID))
			}
			if a.Attempt <= 0 {
				errs = append(errs, fmt.Errorf("%s: attempt must be positive", ap))
			}
			if !validAttemptStates[a.State] {
				errs = append(errs, fmt.Errorf("%s: invalid state %q", ap, a.State))
			}
		}
	}
	return errs
}

func validateCompletions(completions []CompletionImport, r refs) []error {
	var errs []error
	for i, c := range completions {
		prefix := fmt.Sprintf("completions[%d]", i)
		if !r.activities[c.ActivityID] {
			errs = append(errs, fmt.Errorf("%s: activity %d is not defined", prefix, c.ActivityID))
		}
		if !r.users[c.UserID] {
			errs = append(errs, fmt.Errorf("%s: user %d is not a known user", prefix, c.UserID))
		}
		if _, err := domain.CompletionFromRaw(c.State); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
	}
	return errs
}

func validateExclusions(exclusions []ExclusionImport, r refs) []error {
	var errs []error
	for i, e := range exclusions {
		prefix := fmt.Sprintf("exclusions[%d]", i)
		if !domain.ValidModuleTypes[e.Module] {
			errs = append(errs, fmt.Errorf("%s: invalid module %q", prefix, e.Module))
		}
		if !r.users[e.UserID] {
			errs = append(errs, fmt.Errorf("%s: user %d is not a known user", prefix, e.UserID))
		}
	}
	return errs
}
