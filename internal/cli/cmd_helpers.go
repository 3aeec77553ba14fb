package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/alexanderramin/reschool/internal/service"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run 'reschool login' first")

// requireLogin restores the stored session before a command talks to the
// portal.
func requireLogin(ctx context.Context, app *App) (*domain.State, error) {
	st, err := app.Auth.AutoLogin(ctx)
	if errors.Is(err, service.ErrNoSavedCredentials) {
		return nil, errNotLoggedIn
	}
	return st, err
}

// withLogin wraps a RunE so it only runs with a live session.
func withLogin(app *App, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if _, err := requireLogin(cmd.Context(), app); err != nil {
			return err
		}
		return run(cmd, args)
	}
}

// spin shows a spinner on stderr while a request runs, on terminals only.
func spin(app *App, cmd *cobra.Command, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}

// choosePeriod resolves a 1-based menu index; 0 picks the current period.
func choosePeriod(ctx context.Context, app *App, index int) (periods.MenuOption, error) {
	menu, err := app.Diary.PeriodOptions(ctx)
	if err != nil {
		return periods.MenuOption{}, err
	}
	if len(menu.Options) == 0 {
		return periods.MenuOption{}, errors.New("no periods available")
	}
	if index == 0 {
		index = menu.Default
	}
	opt, ok := periods.Lookup(menu.Options, index)
	if !ok {
		return periods.MenuOption{}, fmt.Errorf("period %d not in 1..%d, see 'reschool periods'", index, len(menu.Options))
	}
	return opt, nil
}

// yearOrCurrent returns year, or the current school year when it is 0.
func yearOrCurrent(ctx context.Context, app *App, year int64) (int64, error) {
	if year != 0 {
		return year, nil
	}
	return app.Profile.CurrentYearID(ctx)
}
