package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

// Snapshot options
type SnapshotOption func(*domain.CourseSnapshot)

// NewTestSnapshot returns an empty course snapshot with the given id.
func NewTestSnapshot(courseID int64, opts ...SnapshotOption) *domain.CourseSnapshot {
	snap := &domain.CourseSnapshot{
		Course: domain.Course{
			ID:        courseID,
			ShortName: fmt.Sprintf("C%d", courseID),
			FullName:  fmt.Sprintf("Test Course %d", courseID),
		},
		Inclusion: domain.IncludeAllTracked,
	}
	for _, opt := range opts {
		opt(snap)
	}
	return snap
}

// WithUser adds a user enrolled with the given roles.
func WithUser(id int64, username string, roles ...domain.RoleName) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Users = append(s.Users, domain.User{
			ID:        id,
			Username:  username,
			FirstName: username,
			LastName:  "Tester",
			Email:     username + "@example.test",
		})
		for _, r := range roles {
			s.Roles = append(s.Roles, domain.RoleAssignment{CourseID: s.Course.ID, UserID: id, Role: r})
		}
	}
}

func WithActivities(acts ...domain.Activity) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		for _, a := range acts {
			a.CourseID = s.Course.ID
			s.Activities = append(s.Activities, a)
		}
	}
}

func WithCompletion(activityID, userID int64, state domain.CompletionState) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Completions = append(s.Completions, domain.CompletionRecord{ActivityID: activityID, UserID: userID, State: state})
	}
}

func WithExclusion(moduleType domain.ModuleType, instanceID, userID int64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Exclusions = append(s.Exclusions, domain.Exclusion{ModuleType: moduleType, InstanceID: instanceID, UserID: userID})
	}
}

func WithGroup(id int64, name string, members ...int64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Groups = append(s.Groups, domain.Group{ID: id, CourseID: s.Course.ID, Name: name})
		for _, m := range members {
			s.GroupMembers = append(s.GroupMembers, domain.GroupMember{GroupID: id, UserID: m})
		}
	}
}

func WithGrouping(id int64, name string, groupIDs ...int64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Groupings = append(s.Groupings, domain.Grouping{ID: id, CourseID: s.Course.ID, Name: name, GroupIDs: groupIDs})
	}
}

func WithSelectedActivities(refs ...domain.ActivityRef) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Inclusion = domain.IncludeSelected
		s.Selected = append(s.Selected, refs...)
	}
}

func WithAssignment(a domain.Assignment) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		a.CourseID = s.Course.ID
		s.Assignments = append(s.Assignments, a)
	}
}

// WithAssignSubmission adds a latest submission for userID (0 with a groupID
// for a team submission) in the given status.
func WithAssignSubmission(id, assignmentID, userID, groupID int64, status string) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.AssignSubmissions = append(s.AssignSubmissions, domain.AssignSubmission{
			ID:           id,
			AssignmentID: assignmentID,
			UserID:       userID,
			GroupID:      groupID,
			Latest:       true,
			Status:       status,
		})
	}
}

func WithAssignGrade(id, assignmentID, userID int64, grade *float64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.AssignGrades = append(s.AssignGrades, domain.AssignGrade{
			ID: id, AssignmentID: assignmentID, UserID: userID, Grade: grade,
		})
	}
}

func WithWorkshopSubmission(id, workshopID, authorID int64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		if !hasWorkshop(s, workshopID) {
			s.Workshops = append(s.Workshops, domain.Workshop{ID: workshopID, CourseID: s.Course.ID})
		}
		s.WorkshopSubmissions = append(s.WorkshopSubmissions, domain.WorkshopSubmission{
			ID: id, WorkshopID: workshopID, AuthorID: authorID,
		})
	}
}

func hasWorkshop(s *domain.CourseSnapshot, id int64) bool {
	for _, w := range s.Workshops {
		if w.ID == id {
			return true
		}
	}
	return false
}

func WithQuiz(id int64, method domain.QuizGradeMethod) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.Quizzes = append(s.Quizzes, domain.Quiz{ID: id, CourseID: s.Course.ID, GradeMethod: method})
	}
}

// WithQuizAttempt adds a finished attempt; sumGrades nil means not yet graded.
func WithQuizAttempt(id, quizID, userID int64, attempt int, sumGrades *float64) SnapshotOption {
	return func(s *domain.CourseSnapshot) {
		s.QuizAttempts = append(s.QuizAttempts, domain.QuizAttempt{
			ID: id, QuizID: quizID, UserID: userID, Attempt: attempt,
			State: domain.AttemptFinished, SumGrades: sumGrades,
		})
	}
}

// Grade returns a pointer for use as a grade value.
func Grade(v float64) *float64 {
	return &v
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithExpected(t time.Time) ActivityOption {
	return func(a *domain.Activity) {
		a.ExpectedAt = &t
	}
}

func WithName(name string) ActivityOption {
	return func(a *domain.Activity) {
		a.Name = name
	}
}

func WithPosition(section, position int) ActivityOption {
	return func(a *domain.Activity) {
		a.Section = section
		a.Position = position
	}
}

func Hidden() ActivityOption {
	return func(a *domain.Activity) {
		a.Visible = false
	}
}

func Restricted(info string) ActivityOption {
	return func(a *domain.Activity) {
		a.Available = false
		a.AvailableInfo = info
	}
}

func Untracked() ActivityOption {
	return func(a *domain.Activity) {
		a.Tracking = domain.TrackingNone
	}
}

// NewTestActivity returns a visible, available, automatically tracked
// activity. id doubles as its position in section 0.
func NewTestActivity(id int64, moduleType domain.ModuleType, instanceID int64, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		ID:         id,
		ModuleType: moduleType,
		InstanceID: instanceID,
		Name:       fmt.Sprintf("%s %d", moduleType, instanceID),
		Position:   int(id),
		IconRef:    string(moduleType),
		URL:        fmt.Sprintf("https://lms.test/mod/%s/view.php?id=%d", moduleType, id),
		Visible:    true,
		Available:  true,
		Tracking:   domain.TrackingAutomatic,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
