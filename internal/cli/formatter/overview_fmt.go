package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
)

// FormatOverview renders the course overview: one row per learner with a
// compact bar, both percentages and the action offered to the viewer.
func FormatOverview(resp *app.OverviewResponse) string {
	var b strings.Builder

	title := fmt.Sprintf("%s · overview", resp.Course.ShortName)
	b.WriteString(Header(title))
	b.WriteString("\n")
	if resp.Group.Kind != progress.GroupFilterNone {
		b.WriteString(Dim("Filter: " + resp.Group.String()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(resp.Rows) == 0 {
		b.WriteString(Dim("No learners match."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		rows = append(rows, OverviewRow(r))
	}
	b.WriteString(RenderTable(OverviewColumns(), rows))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d learners", len(resp.Rows))))
	b.WriteString("\n")
	return b.String()
}

func OverviewColumns() []Column {
	return []Column{
		{Title: "LEARNER"},
		{Title: "PROGRESS"},
		{Title: "LEARNER %", Right: true},
		{Title: "GRADER %", Right: true},
		{Title: "ACTION"},
	}
}

func OverviewRow(r app.LearnerRow) []string {
	return []string{
		UserLabel(r.Learner),
		RenderCells(progress.ProgressBar{Cells: r.Bar.Cells, Mode: domain.BarSqueeze, Rows: 1, RTL: r.Bar.RTL}),
		strconv.Itoa(r.Percentages.Learner) + "%",
		strconv.Itoa(r.Percentages.Grader) + "%",
		ActionBadge(r.Action),
	}
}
