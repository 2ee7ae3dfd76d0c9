package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// Convert transforms a validated CourseSchema into a snapshot ready for
// persistence. Call ValidateCourseSchema first; Convert assumes the schema is
// valid.
func Convert(schema *CourseSchema) (*domain.CourseSnapshot, error) {
	courseID := schema.Course.ID
	snap := &domain.CourseSnapshot{
		Course: domain.Course{
			ID:        courseID,
			ShortName: schema.Course.ShortName,
			FullName:  schema.Course.FullName,
		},
		Inclusion: domain.IncludeAllTracked,
	}

	if s := schema.Settings; s != nil {
		if s.InclusionMode != "" {
			snap.Inclusion = domain.InclusionMode(s.InclusionMode)
		}
		for _, ref := range s.Selected {
			snap.Selected = append(snap.Selected, domain.ActivityRef{
				ModuleType: domain.ModuleType(ref.Module),
				InstanceID: ref.Instance,
			})
		}
	}

	for _, u := range schema.Users {
		snap.Users = append(snap.Users, domain.User{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
		for _, role := range u.Roles {
			snap.Roles = append(snap.Roles, domain.RoleAssignment{
				CourseID: courseID,
				UserID:   u.ID,
				Role:     domain.RoleName(role),
			})
		}
	}

	for _, g := range schema.Groups {
		snap.Groups = append(snap.Groups, domain.Group{ID: g.ID, CourseID: courseID, Name: g.Name})
		for _, m := range g.Members {
			snap.GroupMembers = append(snap.GroupMembers, domain.GroupMember{GroupID: g.ID, UserID: m})
		}
	}
	for _, gp := range schema.Groupings {
		snap.Groupings = append(snap.Groupings, domain.Grouping{
			ID:       gp.ID,
			CourseID: courseID,
			Name:     gp.Name,
			GroupIDs: append([]int64(nil), gp.Groups...),
		})
	}

	for _, a := range schema.Activities {
		activity, err := convertActivity(courseID, a)
		if err != nil {
			return nil, err
		}
		snap.Activities = append(snap.Activities, activity)
	}

	for _, a := range schema.Assignments {
		snap.Assignments = append(snap.Assignments, domain.Assignment{
			ID:                          a.ID,
			CourseID:                    courseID,
			TeamSubmission:              a.TeamSubmission,
			RequireAllMembersSubmit:     a.RequireAllMembersSubmit,
			PreventSubmissionNotInGroup: a.PreventSubmissionNotInGroup,
		})
		for _, s := range a.Submissions {
			latest := true
			if s.Latest != nil {
				latest = *s.Latest
			}
			snap.AssignSubmissions = append(snap.AssignSubmissions, domain.AssignSubmission{
				ID:            s.ID,
				AssignmentID:  a.ID,
				UserID:        s.UserID,
				GroupID:       s.GroupID,
				AttemptNumber: s.Attempt,
				Latest:        latest,
				Status:        s.Status,
			})
		}
		for _, g := range a.Grades {
			snap.AssignGrades = append(snap.AssignGrades, domain.AssignGrade{
				ID:            g.ID,
				AssignmentID:  a.ID,
				UserID:        g.UserID,
				AttemptNumber: g.Attempt,
				Grade:         g.Grade,
			})
		}
	}

	for _, w := range schema.Workshops {
		snap.Workshops = append(snap.Workshops, domain.Workshop{ID: w.ID, CourseID: courseID})
		for _, s := range w.Submissions {
			snap.WorkshopSubmissions = append(snap.WorkshopSubmissions, domain.WorkshopSubmission{
				ID:         s.ID,
				WorkshopID: w.ID,
				AuthorID:   s.AuthorID,
			})
		}
	}

	for _, q := range schema.Quizzes {
		snap.Quizzes = append(snap.Quizzes, domain.Quiz{
			ID:          q.ID,
			CourseID:    courseID,
			GradeMethod: validGradeMethods[q.GradeMethod],
		})
		for _, a := range q.Attempts {
			snap.QuizAttempts = append(snap.QuizAttempts, domain.QuizAttempt{
				ID:        a.ID,
				QuizID:    q.ID,
				UserID:    a.UserID,
				Attempt:   a.Attempt,
				State:     a.State,
				SumGrades: a.SumGrades,
			})
		}
	}

	for _, c := range schema.Completions {
		state, err := domain.CompletionFromRaw(c.State)
		if err != nil {
			return nil, fmt.Errorf("completion of activity %d: %w", c.ActivityID, err)
		}
		snap.Completions = append(snap.Completions, domain.CompletionRecord{
			ActivityID: c.ActivityID,
			UserID:     c.UserID,
			State:      state,
		})
	}

	for _, e := range schema.Exclusions {
		snap.Exclusions = append(snap.Exclusions, domain.Exclusion{
			ModuleType: domain.ModuleType(e.Module),
			InstanceID: e.Instance,
			UserID:     e.UserID,
		})
	}

	return snap, nil
}

func convertActivity(courseID int64, a ActivityImport) (domain.Activity, error) {
	activity := domain.Activity{
		ID:            a.ID,
		CourseID:      courseID,
		ModuleType:    domain.ModuleType(a.Module),
		InstanceID:    a.Instance,
		Name:          a.Name,
		Section:       a.Section,
		Position:      a.Position,
		IconRef:       a.Icon,
		URL:           a.URL,
		Visible:       true,
		Available:     true,
		AvailableInfo: a.AvailableInfo,
		Tracking:      domain.TrackingAutomatic,
	}
	if a.Visible != nil {
		activity.Visible = *a.Visible
	}
	if a.Available != nil {
		activity.Available = *a.Available
	}
	if a.Tracking != "" {
		activity.Tracking = validTracking[a.Tracking]
	}
	if a.Expected != nil && *a.Expected != "" {
		t, err := time.Parse(time.RFC3339, *a.Expected)
		if err != nil {
			return activity, fmt.Errorf("parsing expected time of activity %d: %w", a.ID, err)
		}
		t = t.UTC()
		activity.ExpectedAt = &t
	}
	return activity, nil
}
