package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/app"
)

func FormatSubmissions(resp *app.SubmissionsResponse) string {
	var b strings.Builder
	b.WriteString(Header("Submissions · course " + strconv.FormatInt(resp.CourseID, 10)))
	b.WriteString("\n\n")

	if len(resp.Records) == 0 {
		b.WriteString(Dim("No submissions."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(resp.Records))
	for _, r := range resp.Records {
		graded := StyleYellow.Render("awaiting grade")
		if r.Graded {
			graded = StyleGreen.Render("graded")
		}
		attempt := Dim("--")
		if r.AttemptID > 0 {
			attempt = strconv.FormatInt(r.AttemptID, 10)
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.UserID, 10),
			strconv.FormatInt(r.ActivityID, 10),
			graded,
			attempt,
			Dim(r.Source.String()),
		})
	}
	b.WriteString(RenderTable([]Column{
		{Title: "USER", Right: true},
		{Title: "ACTIVITY", Right: true},
		{Title: "STATE"},
		{Title: "ATTEMPT", Right: true},
		{Title: "SOURCE"},
	}, rows))
	return b.String()
}
