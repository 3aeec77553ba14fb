package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newChatsCmd(app *App) *cobra.Command {
	var newOnly bool

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List conversations",
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			stop := spin(app, cmd, "Loading conversations...")
			threads, err := app.Chat.Threads(cmd.Context(), newOnly)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatThreads(threads))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&newOnly, "new", false, "Only threads with unread messages")
	return cmd
}

func newThreadCmd(app *App) *cobra.Command {
	var send string

	cmd := &cobra.Command{
		Use:   "thread <id>",
		Short: "Show a conversation, optionally replying to it",
		Args:  cobra.ExactArgs(1),
		RunE: withLogin(app, func(cmd *cobra.Command, args []string) error {
			threadID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || threadID <= 0 {
				return fmt.Errorf("invalid thread id %q", args[0])
			}
			ctx := cmd.Context()

			if cmd.Flags().Changed("send") {
				if err := app.Chat.Send(ctx, threadID, send); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Sent."))
			}

			stop := spin(app, cmd, "Loading messages...")
			msgs, err := app.Chat.Messages(ctx, threadID)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMessages(msgs))
			return nil
		}),
	}

	cmd.Flags().StringVar(&send, "send", "", "Reply text to send before showing the thread")
	return cmd
}
