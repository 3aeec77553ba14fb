package cli

import (
	"fmt"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPeriodsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the academic periods of your classes",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			stop := spin(app, cmd, "Loading periods...")
			menu, err := app.Diary.PeriodOptions(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if len(menu.Options) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Empty("periods"))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderPeriodMenu(menu.Options, menu.Default))
			if n := len(menu.Dropped); n > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("(%d periods with a missing parent hidden)", n)))
			}
			return nil
		}),
	}
}

func newGradesCmd(app *App) *cobra.Command {
	var period periodFlag
	format := formatTable

	cmd := &cobra.Command{
		Use:   "grades",
		Short: "Show grades for a period",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := spin(app, cmd, "Loading grades...")
			opt, err := choosePeriod(ctx, app, period.index)
			if err != nil {
				stop()
				return err
			}
			rows, err := app.Diary.Grades(ctx, opt.ID)
			stop()
			if err != nil {
				return err
			}

			if format == formatCSV {
				headers, records := formatter.GradesCSV(rows)
				return formatter.WriteCSV(cmd.OutOrStdout(), headers, records)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGrades(opt.Name, rows))
			return nil
		}),
	}

	period.AddFlags(cmd.Flags())
	cmd.Flags().Var(&format, "format", "Output format: table or csv")
	return cmd
}

func newHomeworkCmd(app *App) *cobra.Command {
	var period periodFlag

	cmd := &cobra.Command{
		Use:   "homework",
		Short: "Show homework for a period",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := spin(app, cmd, "Loading homework...")
			opt, err := choosePeriod(ctx, app, period.index)
			if err != nil {
				stop()
				return err
			}
			entries, err := app.Diary.Homework(ctx, opt.PeriodRecord)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHomework(opt.Name, entries))
			return nil
		}),
	}

	period.AddFlags(cmd.Flags())
	return cmd
}
