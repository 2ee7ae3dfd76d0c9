package domain

// Host record types. They exist so a course can be loaded into the record
// store; the engine itself only reads them through repository queries.

type Assignment struct {
	ID                          int64
	CourseID                    int64
	TeamSubmission              bool
	RequireAllMembersSubmit     bool
	PreventSubmissionNotInGroup bool
}

const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusDraft     = "draft"
	SubmissionStatusNew       = "new"
)

type AssignSubmission struct {
	ID            int64
	AssignmentID  int64
	UserID        int64 // 0 for a team submission
	GroupID       int64 // 0 for an individual submission
	AttemptNumber int
	Latest        bool
	Status        string
}

// UngradedSentinel is the grade value the host stores for "no grade".
const UngradedSentinel = -1.0

type AssignGrade struct {
	ID            int64
	AssignmentID  int64
	UserID        int64
	AttemptNumber int
	Grade         *float64
}

type Workshop struct {
	ID       int64
	CourseID int64
}

type WorkshopSubmission struct {
	ID         int64
	WorkshopID int64
	AuthorID   int64
}

type Quiz struct {
	ID          int64
	CourseID    int64
	GradeMethod QuizGradeMethod
}

const (
	AttemptInProgress = "inprogress"
	AttemptFinished   = "finished"
	AttemptAbandoned  = "abandoned"
)

type QuizAttempt struct {
	ID        int64
	QuizID    int64
	UserID    int64
	Attempt   int
	State     string
	SumGrades *float64
}

type CompletionRecord struct {
	ActivityID int64
	UserID     int64
	State      CompletionState
}

// CourseSnapshot is a complete set of host records for one course.
type CourseSnapshot struct {
	Course              Course
	Inclusion           InclusionMode
	Selected            []ActivityRef
	Users               []User
	Roles               []RoleAssignment
	Groups              []Group
	GroupMembers        []GroupMember
	Groupings           []Grouping
	Activities          []Activity
	Assignments         []Assignment
	AssignSubmissions   []AssignSubmission
	AssignGrades        []AssignGrade
	Workshops           []Workshop
	WorkshopSubmissions []WorkshopSubmission
	Quizzes             []Quiz
	QuizAttempts        []QuizAttempt
	Completions         []CompletionRecord
	Exclusions          []Exclusion
}
