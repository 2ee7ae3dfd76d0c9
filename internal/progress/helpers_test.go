package progress

import (
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

func makeActivity(id int64, section, position int, expected *time.Time) domain.Activity {
	return domain.Activity{
		ID:         id,
		CourseID:   1,
		ModuleType: domain.ModuleAssign,
		InstanceID: id * 10,
		Name:       "Activity",
		ExpectedAt: expected,
		Section:    section,
		Position:   position,
		URL:        "https://lms.test/mod/assign/view.php",
		Visible:    true,
		Available:  true,
		Tracking:   domain.TrackingAutomatic,
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func ids(activities []domain.Activity) []int64 {
	out := make([]int64, len(activities))
	for i, a := range activities {
		out[i] = a.ID
	}
	return out
}
