package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type threadsLoadedMsg struct {
	threads []domain.Thread
	err     error
}

// chatsView lists conversations; enter opens one.
type chatsView struct {
	state   *SharedState
	list    cursorList
	spin    spinner.Model
	loading bool
	newOnly bool
	threads []domain.Thread
	err     error
}

func newChatsView(state *SharedState) *chatsView {
	return &chatsView{state: state, spin: newSpinner(), loading: true}
}

func (v *chatsView) ID() ViewID    { return ViewChats }
func (v *chatsView) Title() string { return "Messages" }

func (v *chatsView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "open"),
		binding("n", "toggle unread"),
		binding("r", "reload"),
	}
}

func (v *chatsView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.spin.Tick)
}

func (v *chatsView) load() tea.Cmd {
	chat, newOnly := v.state.App.Chat, v.newOnly
	return func() tea.Msg {
		threads, err := chat.Threads(context.Background(), newOnly)
		return threadsLoadedMsg{threads: threads, err: err}
	}
}

func (v *chatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case threadsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.threads = msg.threads
		v.list.cursor = min(v.list.cursor, max(len(v.threads)-1, 0))
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.loading {
			return v, nil
		}
		k := msg.String()
		switch {
		case v.list.move(k, len(v.threads)):
		case k == "n":
			v.newOnly = !v.newOnly
			v.loading = true
			v.list.reset()
			return v, tea.Batch(v.load(), v.spin.Tick)
		case k == "r":
			v.loading = true
			return v, tea.Batch(v.load(), v.spin.Tick)
		case k == "enter" && len(v.threads) > 0:
			t := v.threads[v.list.cursor]
			return v, pushView(newThreadView(v.state, t.ThreadID, t.Title()))
		}
	}
	return v, nil
}

func (v *chatsView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Loading conversations...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(v.err)
	}
	var b strings.Builder
	b.WriteString("\n")
	if v.newOnly {
		b.WriteString("  " + formatter.StyleYellow.Render("Unread only") + "\n\n")
	}
	if len(v.threads) == 0 {
		return b.String() + "  " + formatter.Empty("conversations") + "\n"
	}
	rows := make([]string, len(v.threads))
	for i, t := range v.threads {
		rows[i] = fmt.Sprintf("%-32s %s  %s",
			formatter.Truncate(t.Title(), 32),
			formatter.Dim(formatter.Date(t.SendDate)),
			formatter.Dim(formatter.Truncate(t.MsgPreview, 50)))
	}
	b.WriteString(v.list.render(rows, v.state.ContentHeight()-2))
	return b.String()
}
