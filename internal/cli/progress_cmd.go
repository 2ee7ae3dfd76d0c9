package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepulse/internal/app"
	"github.com/alexanderramin/coursepulse/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBarCmd(a *App) *cobra.Command {
	var courseID, userID, viewerID int64
	var noNow bool
	var at *time.Time
	layout := a.Config.Layout()

	cmd := &cobra.Command{
		Use:   "bar",
		Short: "Show one learner's completion progress bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewBarRequest(courseID, userID)
			req.ViewerID = viewerID
			req.Layout = layout
			if noNow {
				req.Layout.ShowNow = false
			}
			req.Now = at

			resp, err := a.Progress.GetBar(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBar(resp))
			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&userID, "user", 0, "Learner whose bar is shown")
	cmd.Flags().Int64Var(&viewerID, "viewer", 0, "Who is looking (default: the learner)")
	cmd.Flags().Var(orderValue{&layout.OrderBy}, "order", "Cell order: orderbytime or orderbycourse")
	cmd.Flags().Var(modeValue{&layout.Mode}, "mode", "Long bar mode: squeeze, scroll or wrap")
	cmd.Flags().IntVar(&layout.WrapAfter, "wrap-after", layout.WrapAfter, "Cells per row in wrap mode")
	cmd.Flags().BoolVar(&layout.Simple, "simple", false, "Reduced rendering without the now marker")
	cmd.Flags().BoolVar(&layout.RTL, "rtl", false, "Lay the bar out right to left")
	cmd.Flags().BoolVar(&noNow, "no-now", false, "Hide the now marker")
	cmd.Flags().Var(timeValue{&at}, "at", "Reference time (default: now)")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newCoursesCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List imported courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := a.Overview.ListCourses(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourses(courses))
			return nil
		},
	}
}

func newOverviewCmd(a *App) *cobra.Command {
	var courseID, viewerID int64
	var group string
	var at *time.Time

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "List every learner's progress and the action on offer",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewOverviewRequest(courseID, viewerID)
			req.Layout = a.Config.Layout()
			req.Layout.Simple = true
			req.Group = group
			req.Now = at

			resp, err := a.Overview.GetOverview(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(resp))
			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&viewerID, "viewer", 0, "Staff member viewing the overview")
	cmd.Flags().StringVar(&group, "group", "0", `Filter: "0", "group-<id>" or "grouping-<id>"`)
	cmd.Flags().Var(timeValue{&at}, "at", "Reference time (default: now)")
	_ = cmd.MarkFlagRequired("course")
	_ = cmd.MarkFlagRequired("viewer")

	return cmd
}

func newSubmissionsCmd(a *App) *cobra.Command {
	var courseID, userID int64

	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "List aggregated submissions for a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Submissions.ListSubmissions(cmd.Context(), app.SubmissionsRequest{
				CourseID: courseID,
				UserID:   userID,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmissions(resp))
			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "Course ID")
	cmd.Flags().Int64Var(&userID, "user", 0, "Restrict to one learner")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a course snapshot from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Import.ImportCourse(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
