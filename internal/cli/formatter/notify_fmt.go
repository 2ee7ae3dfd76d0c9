package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/domain"
	"github.com/alexanderramin/coursepulse/internal/notify"
)

// FormatNotifyPreview describes what a notification run would send.
func FormatNotifyPreview(resp *app.NotifyResponse) string {
	var b strings.Builder
	b.WriteString(Header("Notification"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Action    %s\n", ActionBadge(resp.Signal)))
	b.WriteString(fmt.Sprintf("  Progress  learner %d%%, grader %d%%\n", resp.Percentages.Learner, resp.Percentages.Grader))
	if resp.Signal == domain.ActionOfferSubmitForGrading {
		b.WriteString(fmt.Sprintf("  Review by %s\n", resp.ReviewBy.Format(notify.DateLayout)))
	}
	b.WriteString("\n")
	b.WriteString(formatMessages(resp.Messages))
	return b.String()
}

func formatMessages(msgs []notify.Message) string {
	rows := make([][]string, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, []string{UserLabel(m.To), m.To.Email, m.Subject})
	}
	return RenderTable(Cols("TO", "EMAIL", "SUBJECT"), rows)
}

// FormatNotifyResult summarises a completed run.
func FormatNotifyResult(resp *app.NotifyResponse) string {
	return StyleGreen.Render(fmt.Sprintf("Sent %d of %d notifications.", len(resp.Records), len(resp.Messages))) + "\n"
}

// FormatHistory lists notification log entries for a learner.
func FormatHistory(records []domain.NotificationRecord) string {
	if len(records) == 0 {
		return Dim("No notifications sent.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			r.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", r.RecipientID),
			ActionBadge(r.Signal),
			r.Subject,
		})
	}
	return RenderTable(Cols("ID", "SENT", "TO", "ACTION", "SUBJECT"), rows)
}

// FormatImportResult summarises an imported course snapshot.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render(fmt.Sprintf("Imported %s", res.Course.DisplayName())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d users, %d activities, %d submissions, %d completions\n",
		res.UserCount, res.ActivityCount, res.SubmissionCount, res.CompletionCount))
	b.WriteString(Dim("  batch " + res.BatchID))
	b.WriteString("\n")
	return b.String()
}
