package cli

import (
	"github.com/alexanderramin/coursepulse/internal/config"
	"github.com/alexanderramin/coursepulse/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Progress    service.ProgressService
	Overview    service.OverviewService
	Submissions service.SubmissionService
	Notify      service.NotifyService
	Import      service.ImportService

	// Config supplies flag defaults.
	Config config.Config

	// IsInteractive reports whether prompts and the browser may be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh prompt.
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "coursepulse" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coursepulse",
		Short:         "Course completion progress for learners and graders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(a),
		newCoursesCmd(a),
		newBarCmd(a),
		newOverviewCmd(a),
		newSubmissionsCmd(a),
		newNotifyCmd(a),
		newHistoryCmd(a),
		newBrowseCmd(a),
	)

	return root
}
