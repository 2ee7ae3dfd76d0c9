package domain

type ModuleType string

const (
	ModuleAssign   ModuleType = "assign"
	ModuleQuiz     ModuleType = "quiz"
	ModuleWorkshop ModuleType = "workshop"
	ModuleFeedback ModuleType = "feedback"
	ModuleLesson   ModuleType = "lesson"
	ModulePage     ModuleType = "page"
	ModuleForum    ModuleType = "forum"
)

// ValidModuleTypes is the canonical set of module types accepted on import.
var ValidModuleTypes = map[string]bool{
	"assign": true, "quiz": true, "workshop": true, "feedback": true,
	"lesson": true, "page": true, "forum": true, "url": true,
	"resource": true, "scorm": true, "choice": true, "glossary": true,
}

// CompletionTracking mirrors the host's per-activity tracking mode.
type CompletionTracking int

const (
	TrackingNone      CompletionTracking = 0
	TrackingManual    CompletionTracking = 1
	TrackingAutomatic CompletionTracking = 2
)

type OrderBy string

const (
	OrderByTime   OrderBy = "orderbytime"
	OrderByCourse OrderBy = "orderbycourse"
)

type BarMode string

const (
	BarSqueeze BarMode = "squeeze"
	BarScroll  BarMode = "scroll"
	BarWrap    BarMode = "wrap"
)

type InclusionMode string

const (
	IncludeAllTracked InclusionMode = "activitycompletion"
	IncludeSelected   InclusionMode = "selectedactivities"
)

type LinkMode string

const (
	LinkNone       LinkMode = "none"
	LinkDirect     LinkMode = "direct"
	LinkRestricted LinkMode = "restricted"
)

// CellClass is the renderer-facing classification of a progress cell.
type CellClass string

const (
	CellSubmittedNotComplete CellClass = "submitted-not-complete"
	CellCompleted            CellClass = "completed"
	CellNotCompleted         CellClass = "not-completed"
	CellFutureNotCompleted   CellClass = "future-not-completed"
)

type MarkerPlacement string

const (
	MarkerFirst     MarkerPlacement = "first"
	MarkerFirstHalf MarkerPlacement = "first-half"
	MarkerLastHalf  MarkerPlacement = "last-half"
)

type ArrowDirection string

const (
	ArrowLeft  ArrowDirection = "left"
	ArrowRight ArrowDirection = "right"
)

type ActionSignal string

const (
	ActionNone                  ActionSignal = "none"
	ActionOfferSubmitForGrading ActionSignal = "offer_submit_for_grading"
	ActionOfferReleaseResult    ActionSignal = "offer_release_result"
)

// QuizGradeMethod uses the host's numeric grading method codes.
type QuizGradeMethod int

const (
	GradeHighest      QuizGradeMethod = 1
	GradeAverage      QuizGradeMethod = 2
	GradeFirstAttempt QuizGradeMethod = 3
	GradeLastAttempt  QuizGradeMethod = 4
)
