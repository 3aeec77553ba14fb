package cli

import (
	"fmt"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/spf13/cobra"
)

func newDirectoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "directory [index...]",
		Short: "Browse the school directory",
		Long: `Print the root level of the school directory. Each index argument
enters the numbered entry of the level printed before it, so
"reschool directory 1 3" shows the third entry of the first one.`,
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			stop := spin(app, cmd, "Loading directory...")
			nav, err := app.Directory.Browse(cmd.Context())
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, arg := range args {
				sel, err := nav.EnterChoice(arg)
				if err != nil {
					return err
				}
				if sel.Outcome == directory.OutcomeTerminal {
					if i < len(args)-1 {
						return fmt.Errorf("%s is a person, cannot enter it", sel.Node.Fio)
					}
					fmt.Fprintln(out, formatter.UserLine(sel.Node.Fio, sel.Node.Positions))
					fmt.Fprintf(out, "%s %d\n", formatter.Dim("Person ID:"), sel.Node.PrsID)
					return nil
				}
			}
			fmt.Fprint(out, formatter.FormatDirectoryLevel(nav.BreadcrumbTitle(), nav.CurrentView(), len(nav.Issues())))
			return nil
		}),
	}
}
