package domain

// Capability names follow the host's capability strings.
type Capability string

const (
	CapViewHiddenActivities Capability = "moodle/course:viewhiddenactivities"
	CapSiteConfig           Capability = "moodle/site:config"
	CapAssignGrade          Capability = "mod/assign:grade"
	CapQuizViewReports      Capability = "mod/quiz:viewreports"
	CapFeedbackViewReports  Capability = "mod/feedback:viewreports"
	CapLessonViewReports    Capability = "mod/lesson:viewreports"
	CapAssignView           Capability = "mod/assign:view"
)

type RoleName string

const (
	RoleStudent        RoleName = "student"
	RoleTeacher        RoleName = "teacher"
	RoleEditingTeacher RoleName = "editingteacher"
	RoleManager        RoleName = "manager"
	RoleAdmin          RoleName = "admin"
)

// ValidRoles is the canonical set of role short names accepted on import.
var ValidRoles = map[string]bool{
	"student": true, "teacher": true, "editingteacher": true, "manager": true, "admin": true,
}

// RoleCapabilities is the static role to capability table used by the
// capability oracle.
var RoleCapabilities = map[RoleName][]Capability{
	RoleStudent: {CapAssignView},
	RoleTeacher: {
		CapAssignView, CapViewHiddenActivities, CapAssignGrade,
		CapQuizViewReports, CapFeedbackViewReports, CapLessonViewReports,
	},
	RoleEditingTeacher: {
		CapAssignView, CapViewHiddenActivities, CapAssignGrade,
		CapQuizViewReports, CapFeedbackViewReports, CapLessonViewReports,
	},
	RoleManager: {
		CapAssignView, CapViewHiddenActivities, CapAssignGrade,
		CapQuizViewReports, CapFeedbackViewReports, CapLessonViewReports,
	},
	RoleAdmin: {
		CapAssignView, CapViewHiddenActivities, CapSiteConfig, CapAssignGrade,
		CapQuizViewReports, CapFeedbackViewReports, CapLessonViewReports,
	},
}

// ViewerContext carries the identity and capabilities of whoever a
// computation is performed for. It is always passed explicitly.
type ViewerContext struct {
	UserID       int64
	Roles        []RoleName
	Capabilities map[Capability]bool
}

// NewViewerContext expands roles into capabilities.
func NewViewerContext(userID int64, roles ...RoleName) ViewerContext {
	caps := make(map[Capability]bool)
	for _, r := range roles {
		for _, c := range RoleCapabilities[r] {
			caps[c] = true
		}
	}
	return ViewerContext{UserID: userID, Roles: roles, Capabilities: caps}
}

func (v ViewerContext) Has(c Capability) bool {
	return v.Capabilities[c]
}

func (v ViewerContext) HasRole(role RoleName) bool {
	for _, r := range v.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsPrivileged reports site-administrator level access.
func (v ViewerContext) IsPrivileged() bool {
	return v.Has(CapSiteConfig)
}

// IsGrader reports whether the viewer holds the course's grading role.
func (v ViewerContext) IsGrader() bool {
	return v.HasRole(RoleTeacher) || v.HasRole(RoleEditingTeacher)
}
