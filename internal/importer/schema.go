package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CourseSchema is the top-level structure of a course snapshot file, written
// as JSON or YAML.
// Every id is the host's own id and is kept as is.
type CourseSchema struct {
	Course      CourseImport       `json:"course" yaml:"course"`
	Settings    *SettingsImport    `json:"settings,omitempty" yaml:"settings,omitempty"`
	Users       []UserImport       `json:"users" yaml:"users"`
	Groups      []GroupImport      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Groupings   []GroupingImport   `json:"groupings,omitempty" yaml:"groupings,omitempty"`
	Activities  []ActivityImport   `json:"activities" yaml:"activities"`
	Assignments []AssignmentImport `json:"assignments,omitempty" yaml:"assignments,omitempty"`
	Workshops   []WorkshopImport   `json:"workshops,omitempty" yaml:"workshops,omitempty"`
	Quizzes     []QuizImport       `json:"quizzes,omitempty" yaml:"quizzes,omitempty"`
	Completions []CompletionImport `json:"completions,omitempty" yaml:"completions,omitempty"`
	Exclusions  []ExclusionImport  `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
}

type CourseImport struct {
	ID        int64  `json:"id" yaml:"id"`
	ShortName string `json:"short_name" yaml:"short_name"`
	FullName  string `json:"full_name" yaml:"full_name"`
}

// SettingsImport selects which tracked activities appear on bars.
type SettingsImport struct {
	InclusionMode string              `json:"inclusion_mode,omitempty" yaml:"inclusion_mode,omitempty"`
	Selected      []ActivityRefImport `json:"selected,omitempty" yaml:"selected,omitempty"`
}

type ActivityRefImport struct {
	Module   string `json:"module" yaml:"module"`
	Instance int64  `json:"instance" yaml:"instance"`
}

type UserImport struct {
	ID        int64    `json:"id" yaml:"id"`
	Username  string   `json:"username" yaml:"username"`
	FirstName string   `json:"first_name" yaml:"first_name"`
	LastName  string   `json:"last_name" yaml:"last_name"`
	Email     string   `json:"email,omitempty" yaml:"email,omitempty"`
	Roles     []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

type GroupImport struct {
	ID      int64   `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Members []int64 `json:"members,omitempty" yaml:"members,omitempty"`
}

type GroupingImport struct {
	ID     int64   `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Groups []int64 `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// ActivityImport is one course module. Expected is RFC 3339; Tracking is
// "none", "manual" or "automatic" (default "automatic").
type ActivityImport struct {
	ID            int64   `json:"id" yaml:"id"`
	Module        string  `json:"module" yaml:"module"`
	Instance      int64   `json:"instance" yaml:"instance"`
	Name          string  `json:"name" yaml:"name"`
	Expected      *string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Section       int     `json:"section" yaml:"section"`
	Position      int     `json:"position" yaml:"position"`
	Icon          string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	URL           string  `json:"url,omitempty" yaml:"url,omitempty"`
	Visible       *bool   `json:"visible,omitempty" yaml:"visible,omitempty"`
	Available     *bool   `json:"available,omitempty" yaml:"available,omitempty"`
	AvailableInfo string  `json:"available_info,omitempty" yaml:"available_info,omitempty"`
	Tracking      string  `json:"tracking,omitempty" yaml:"tracking,omitempty"`
}

type AssignmentImport struct {
	ID                          int64                    `json:"id" yaml:"id"`
	TeamSubmission              bool                     `json:"team_submission,omitempty" yaml:"team_submission,omitempty"`
	RequireAllMembersSubmit     bool                     `json:"require_all_members_submit,omitempty" yaml:"require_all_members_submit,omitempty"`
	PreventSubmissionNotInGroup bool                     `json:"prevent_submission_not_in_group,omitempty" yaml:"prevent_submission_not_in_group,omitempty"`
	Submissions                 []AssignSubmissionImport `json:"submissions,omitempty" yaml:"submissions,omitempty"`
	Grades                      []AssignGradeImport      `json:"grades,omitempty" yaml:"grades,omitempty"`
}

// AssignSubmissionImport is either an individual submission (user_id set) or
// a team submission (user_id 0, group_id set).
type AssignSubmissionImport struct {
	ID      int64  `json:"id" yaml:"id"`
	UserID  int64  `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	GroupID int64  `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	Attempt int    `json:"attempt" yaml:"attempt"`
	Latest  *bool  `json:"latest,omitempty" yaml:"latest,omitempty"`
	Status  string `json:"status" yaml:"status"`
}

type AssignGradeImport struct {
	ID      int64    `json:"id" yaml:"id"`
	UserID  int64    `json:"user_id" yaml:"user_id"`
	Attempt int      `json:"attempt" yaml:"attempt"`
	Grade   *float64 `json:"grade" yaml:"grade"`
}

type WorkshopImport struct {
	ID          int64                      `json:"id" yaml:"id"`
	Submissions []WorkshopSubmissionImport `json:"submissions,omitempty" yaml:"submissions,omitempty"`
}

type WorkshopSubmissionImport struct {
	ID       int64 `json:"id" yaml:"id"`
	AuthorID int64 `json:"author_id" yaml:"author_id"`
}

// QuizImport carries the grading method as "highest", "average", "first"
// or "last".
type QuizImport struct {
	ID          int64               `json:"id" yaml:"id"`
	GradeMethod string              `json:"grade_method" yaml:"grade_method"`
	Attempts    []QuizAttemptImport `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

type QuizAttemptImport struct {
	ID        int64    `json:"id" yaml:"id"`
	UserID    int64    `json:"user_id" yaml:"user_id"`
	Attempt   int      `json:"attempt" yaml:"attempt"`
	State     string   `json:"state" yaml:"state"`
	SumGrades *float64 `json:"sum_grades" yaml:"sum_grades"`
}

// CompletionImport uses the host's raw completion codes 0 to 3.
type CompletionImport struct {
	ActivityID int64 `json:"activity_id" yaml:"activity_id"`
	UserID     int64 `json:"user_id" yaml:"user_id"`
	State      int   `json:"state" yaml:"state"`
}

type ExclusionImport struct {
	Module   string `json:"module" yaml:"module"`
	Instance int64  `json:"instance" yaml:"instance"`
	UserID   int64  `json:"user_id" yaml:"user_id"`
}

// LoadCourseSchema reads and parses a course snapshot file. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. Unknown fields are
// rejected.
func LoadCourseSchema(path string) (*CourseSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseCourseSchemaYAML(data)
	default:
		return ParseCourseSchema(data)
	}
}

func ParseCourseSchema(data []byte) (*CourseSchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema CourseSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing course file: %w", err)
	}
	return &schema, nil
}

func ParseCourseSchemaYAML(data []byte) (*CourseSchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema CourseSchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing course file: %w", err)
	}
	return &schema, nil
}
