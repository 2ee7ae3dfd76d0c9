package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/domain"
)

func FormatCourses(courses []*domain.Course) string {
	var b strings.Builder
	b.WriteString(Header("Courses"))
	b.WriteString("\n\n")

	if len(courses) == 0 {
		b.WriteString(Dim("No courses imported."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.ShortName,
			c.FullName,
		})
	}
	b.WriteString(RenderTable([]Column{
		{Title: "ID", Right: true},
		{Title: "SHORT NAME"},
		{Title: "FULL NAME"},
	}, rows))
	return b.String()
}
