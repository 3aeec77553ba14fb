package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alexanderramin/reschool/internal/cli"
	"github.com/alexanderramin/reschool/internal/config"
	"github.com/alexanderramin/reschool/internal/db"
	"github.com/alexanderramin/reschool/internal/eschool"
	"github.com/alexanderramin/reschool/internal/repository"
	"github.com/alexanderramin/reschool/internal/service"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.Sources{})
	if err != nil {
		return err
	}

	interactive := func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The TUI owns the screen, so its logs go to a file.
	var logger *slog.Logger
	if interactive() && tuiRequested(os.Args[1:]) {
		var closer io.Closer
		logger, closer, err = config.NewFileLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else {
		logger = config.NewCommandLogger(cfg)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var observer eschool.Observer = eschool.NoopObserver{}
	if cfg.LogCalls {
		observer = eschool.NewLogObserver(logger)
	}
	client, err := eschool.NewClient(cfg.Eschool(), observer)
	if err != nil {
		return err
	}

	// Wire services
	useCases := service.NewLogUseCaseObserver(logger)
	session := service.NewSession()
	creds := repository.NewSQLiteCredentialRepo(database)

	app := &cli.App{
		Auth:      service.NewAuthService(client, creds, session, useCases),
		Diary:     service.NewDiaryService(client, session, cfg.Periods(), useCases),
		Chat:      service.NewChatService(client, session, useCases),
		Directory: service.NewDirectoryService(client, useCases),
		Profile:   service.NewProfileService(client, session, useCases),

		IsInteractive: interactive,
		ReadPassword: func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		},
	}

	return cli.NewRootCmd(app).Execute()
}

// tuiRequested reports whether the arguments start the full-screen UI.
func tuiRequested(args []string) bool {
	return len(args) == 0 || args[0] == "tui"
}
