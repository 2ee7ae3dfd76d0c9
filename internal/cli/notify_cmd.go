package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// ErrConfirmationRequired is returned when sending needs a confirmation that
// cannot be asked for.
var ErrConfirmationRequired = errors.New("confirmation required: rerun with --yes")

func newNotifyCmd(a *App) *cobra.Command {
	var courseID, studentID, viewerID int64
	var yes, dryRun bool
	var at *time.Time

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Decide the action for a learner and send its notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			req := app.NotifyRequest{
				CourseID:  courseID,
				StudentID: studentID,
				ViewerID:  viewerID,
				Now:       at,
				DryRun:    true,
			}

			preview, err := a.Notify.Notify(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatNotifyPreview(preview))
			if dryRun {
				return nil
			}

			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Send %d notification(s)?", len(preview.Messages)))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, formatter.Dim("Cancelled."))
					return nil
				}
			}

			req.DryRun = false
			resp, err := a.Notify.Notify(cmd.Context(), req)
			if resp != nil {
				fmt.Fprint(out, formatter.FormatNotifyResult(resp))
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&studentID, "student", 0, "Learner the action is about")
	cmd.Flags().Int64Var(&viewerID, "viewer", 0, "Staff member sending the notification")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Send without asking")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the messages without sending")
	cmd.Flags().Var(timeValue{&at}, "at", "Reference time (default: now)")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

func newHistoryCmd(a *App) *cobra.Command {
	var courseID, studentID int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show notifications sent about a learner",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.Notify.History(cmd.Context(), courseID, studentID)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records))
			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&studentID, "student", 0, "Learner")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func (a *App) confirm(title string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title)
	}
	if !a.interactive() {
		return false, ErrConfirmationRequired
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Send").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(coursepulseHuhTheme()).WithShowHelp(false).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func coursepulseHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
