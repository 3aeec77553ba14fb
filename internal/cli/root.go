package cli

import (
	"github.com/alexanderramin/reschool/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth      service.AuthService
	Diary     service.DiaryService
	Chat      service.ChatService
	Directory service.DirectoryService
	Profile   service.ProfileService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// ReadPassword reads a password without echo.
	ReadPassword func() (string, error)
	// RunTUI starts the full-screen interface. Defaults to runTUI.
	RunTUI func(app *App) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runTUI() error {
	if a.RunTUI != nil {
		return a.RunTUI(a)
	}
	return runTUI(a)
}

// NewRootCmd creates the top-level "reschool" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// TUI on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "reschool",
		Short:         "Terminal client for the eSchool portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return app.runTUI()
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newProfileCmd(app),
		newPeriodsCmd(app),
		newGradesCmd(app),
		newHomeworkCmd(app),
		newChatsCmd(app),
		newThreadCmd(app),
		newUnitsCmd(app),
		newTasksCmd(app),
		newUsersCmd(app),
		newDirectoryCmd(app),
		newTUICmd(app),
	)

	return root
}
