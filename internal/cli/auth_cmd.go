package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var username, passwordFile string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the portal and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				line, err := in.ReadString('\n')
				if err != nil && line == "" {
					return errors.New("username is required")
				}
				username = strings.TrimSpace(line)
			}
			if username == "" {
				return errors.New("username is required")
			}

			password, err := readPassword(app, cmd, passwordFile)
			if err != nil {
				return err
			}

			stop := spin(app, cmd, "Logging in...")
			st, err := app.Auth.Login(cmd.Context(), username, password, remember)
			stop()
			if err != nil {
				return err
			}

			name := username
			if st.Profile != nil {
				name = st.Profile.FullName()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", formatter.Bold(name))
			if !remember {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Credentials were not saved."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Portal login")
	cmd.Flags().StringVar(&passwordFile, "password-file", "", "Read the password from a file")
	cmd.Flags().BoolVar(&remember, "remember", true, "Store credentials for later commands")
	return cmd
}

func readPassword(app *App, cmd *cobra.Command, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	if app.ReadPassword == nil || !app.interactive() {
		return "", errors.New("no terminal to read the password from, use --password-file")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	password, err := app.ReadPassword()
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
