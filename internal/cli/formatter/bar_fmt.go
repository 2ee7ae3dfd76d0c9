package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/progress"
	"github.com/charmbracelet/lipgloss"
)

const nowLabel = "NOW"

// cellWidth is the number of terminal columns one cell takes in each mode.
func cellWidth(mode domain.BarMode) int {
	switch mode {
	case domain.BarScroll:
		return 3
	case domain.BarWrap:
		return 2
	default:
		return 1
	}
}

func cellGlyph(cell progress.ProgressCell, width int) string {
	glyph := filledBlock
	if cell.LinkMode == domain.LinkRestricted {
		glyph = "▒"
	}
	text := glyph
	if width > 1 {
		text = strings.Repeat(glyph, width-1) + " "
	}
	return CellStyle(cell.Class).Render(text)
}

// cellsPerRow is the row length used for a bar; only wrap bars have more
// than one row.
func cellsPerRow(bar progress.ProgressBar) int {
	n := len(bar.Cells)
	if bar.Rows <= 1 || n == 0 {
		return n
	}
	return int(math.Ceil(float64(n) / float64(bar.Rows)))
}

// RenderCells draws the bar as coloured blocks, one line per row, with the
// now marker on the line below when present.
func RenderCells(bar progress.ProgressBar) string {
	if len(bar.Cells) == 0 {
		return Dim("No activities being tracked.")
	}

	width := cellWidth(bar.Mode)
	perRow := cellsPerRow(bar)

	var lines []string
	for start := 0; start < len(bar.Cells); start += perRow {
		end := min(start+perRow, len(bar.Cells))
		row := bar.Cells[start:end]
		var b strings.Builder
		for i := range row {
			cell := row[i]
			if bar.RTL {
				cell = row[len(row)-1-i]
			}
			b.WriteString(cellGlyph(cell, width))
		}
		lines = append(lines, b.String())
	}

	if marker := renderNowMarker(bar, width); marker != "" {
		lines = append(lines, marker)
	}
	return strings.Join(lines, "\n")
}

func renderNowMarker(bar progress.ProgressBar, width int) string {
	m := bar.NowMarker
	if m == nil {
		return ""
	}
	col := m.HostCell
	if bar.RTL {
		col = len(bar.Cells) - 1 - m.HostCell
	}
	offset := col * width

	arrow := "◀"
	if m.Arrow == domain.ArrowRight {
		arrow = "▶"
	}
	label := "▲ " + arrow + " " + nowLabel
	if m.LabelFirst {
		// The label ends under the host cell.
		label = nowLabel + " " + arrow + " ▲"
		offset -= lipgloss.Width(label) - 1
	}
	return strings.Repeat(" ", max(offset, 0)) + StyleHeader.Render(label)
}

// FormatBar renders one learner's bar with percentages, the offered action
// and per-cell information.
func FormatBar(resp *app.BarResponse) string {
	var b strings.Builder

	title := fmt.Sprintf("%s · %s", resp.Course.ShortName, UserLabel(resp.Learner))
	b.WriteString(Header(title))
	b.WriteString("\n\n")
	b.WriteString(RenderCells(resp.Result.Bar))
	b.WriteString("\n\n")

	p := resp.Result.Percentages
	b.WriteString(fmt.Sprintf("  %-8s %s\n", "Learner", RenderPercent(p.Learner, 20)))
	b.WriteString(fmt.Sprintf("  %-8s %s\n", "Grader", RenderPercent(p.Grader, 20)))
	if resp.Action != domain.ActionNone && resp.Action != "" {
		label := ActionBadge(resp.Action)
		if resp.Own {
			label = StylePurple.Render("● Submit all assessments")
		}
		b.WriteString(fmt.Sprintf("  %-8s %s\n", "Action", label))
	}

	if len(resp.Result.Bar.Cells) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatCellInfo(resp.Result.Bar, resp.ProgressAt))
	}
	return b.String()
}

// FormatCellInfo lists each cell's activity, status, expected date and link.
func FormatCellInfo(bar progress.ProgressBar, now time.Time) string {
	rows := make([][]string, 0, len(bar.Cells))
	for i, cell := range bar.Cells {
		link := Dim("--")
		switch cell.LinkMode {
		case domain.LinkDirect:
			link = cell.Link
		case domain.LinkRestricted:
			link = Dim("restricted")
			if cell.Activity.AvailableInfo != "" {
				link = Dim(cell.Activity.AvailableInfo)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			CellStyle(cell.Class).Render(filledBlock) + " " + cell.Activity.Name,
			string(cell.Activity.ModuleType),
			StateLabel(cell.State),
			ExpectedBy(cell.Activity, now),
			link,
		})
	}
	return RenderTable([]Column{
		{Title: "#", Right: true},
		{Title: "ACTIVITY"},
		{Title: "TYPE"},
		{Title: "STATUS"},
		{Title: "EXPECTED"},
		{Title: "LINK"},
	}, rows)
}
