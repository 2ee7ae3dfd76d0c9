package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ExpectedBy renders an activity's expected completion date relative to now,
// coloured red when it has passed.
func ExpectedBy(a domain.Activity, now time.Time) string {
	if !a.HasExpected() {
		return Dim("--")
	}
	text := a.ExpectedAt.Format("Jan 2, 2006") + " (" + RelativeDateFrom(*a.ExpectedAt, now) + ")"
	if a.ExpectedAt.Before(now) {
		return StyleRed.Render(text)
	}
	return StyleFg.Render(text)
}

// StateLabel is the per-cell status text.
func StateLabel(state domain.CompletionState) string {
	switch state {
	case domain.CompletionComplete:
		return "Completed"
	case domain.CompletionCompletePass:
		return "Passed"
	case domain.CompletionCompleteFail:
		return "Failed"
	case domain.CompletionSubmitted:
		return "Not completed (submitted)"
	default:
		return "Not completed"
	}
}

// UserLabel renders "Full Name (username)".
func UserLabel(u domain.User) string {
	if u.Username == "" {
		return u.FullName()
	}
	return fmt.Sprintf("%s (%s)", u.FullName(), u.Username)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
