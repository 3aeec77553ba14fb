package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := requireLogin(ctx, app)
			if err != nil {
				return err
			}
			var ext *domain.ExtendedProfile
			if extended {
				stop := spin(app, cmd, "Loading profile...")
				ext, err = app.Profile.Extended(ctx)
				stop()
				if err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProfile(st, ext))
			return nil
		},
	}

	cmd.Flags().BoolVar(&extended, "extended", false, "Include enrollments and relatives")
	return cmd
}

func newUnitsCmd(app *App) *cobra.Command {
	var year yearFlag

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List your subjects",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := spin(app, cmd, "Loading subjects...")
			defer stop()
			yearID, err := year.resolve(ctx, app)
			if err != nil {
				return err
			}
			units, err := app.Profile.Units(ctx, yearID)
			if err != nil {
				return err
			}
			stop()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUnits(units))
			return nil
		}),
	}

	year.AddFlags(cmd.Flags())
	return cmd
}

func newTasksCmd(app *App) *cobra.Command {
	var year yearFlag
	var days int

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List assignments",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("invalid --days %d, must be positive", days)
			}
			ctx := cmd.Context()
			stop := spin(app, cmd, "Loading tasks...")
			defer stop()
			yearID, err := year.resolve(ctx, app)
			if err != nil {
				return err
			}
			now := time.Now()
			tasks, err := app.Profile.Tasks(ctx, yearID, now.AddDate(0, 0, -days), now)
			if err != nil {
				return err
			}
			stop()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTasks(tasks, now))
			return nil
		}),
	}

	year.AddFlags(cmd.Flags())
	cmd.Flags().IntVar(&days, "days", 90, "How many days back to look")
	return cmd
}

func newUsersCmd(app *App) *cobra.Command {
	var year yearFlag

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List students, teachers and parents",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := spin(app, cmd, "Loading users...")
			defer stop()
			yearID, err := year.resolve(ctx, app)
			if err != nil {
				return err
			}
			dir, err := app.Profile.SearchUsers(ctx, yearID)
			if err != nil {
				return err
			}
			stop()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUsers(dir))
			return nil
		}),
	}

	year.AddFlags(cmd.Flags())
	return cmd
}
