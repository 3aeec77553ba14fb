package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type threadOpenedMsg struct {
	threadID int64
	err      error
}

// userActionView presents the actions available for a selected person.
type userActionView struct {
	state     *SharedState
	prsID     int64
	fio       string
	positions []string
	cursor    int
	actions   []menuAction
	busy      bool
	err       error
}

func newUserActionView(state *SharedState, prsID int64, fio string, positions []string) *userActionView {
	v := &userActionView{
		state:     state,
		prsID:     prsID,
		fio:       fio,
		positions: positions,
	}
	v.actions = []menuAction{
		{label: "Write message", key: "w", fn: v.actionWrite},
		{label: "Back", key: "b", fn: popView},
	}
	return v
}

func (v *userActionView) ID() ViewID    { return ViewActionMenu }
func (v *userActionView) Title() string { return formatter.Truncate(v.fio, 30) }

func (v *userActionView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "select"),
	}
}

func (v *userActionView) Init() tea.Cmd { return nil }

func (v *userActionView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case threadOpenedMsg:
		v.busy = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		return v, replaceView(newThreadView(v.state, msg.threadID, v.fio))

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.actions)-1 {
				v.cursor++
			}
		case "enter":
			return v, v.actions[v.cursor].fn()
		default:
			for i, a := range v.actions {
				if msg.String() == a.key {
					v.cursor = i
					return v, a.fn()
				}
			}
		}
	}
	return v, nil
}

func (v *userActionView) actionWrite() tea.Cmd {
	if v.prsID == 0 {
		v.err = fmt.Errorf("%s has no person id, cannot start a conversation", v.fio)
		return nil
	}
	v.busy = true
	chat, prsID := v.state.App.Chat, v.prsID
	return func() tea.Msg {
		id, err := chat.OpenWith(context.Background(), prsID)
		return threadOpenedMsg{threadID: id, err: err}
	}
}

func (v *userActionView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + formatter.StyleHeader.Render("ACTIONS") + "\n")
	b.WriteString("  " + formatter.Dim("for ") + formatter.Bold(formatter.UserLine(v.fio, v.positions)) + "\n\n")

	for i, a := range v.actions {
		cursor := "  "
		style := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			style = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, style.Render(a.label), formatter.Dim("["+a.key+"]")))
	}
	if v.busy {
		b.WriteString("\n  " + formatter.Dim("Opening conversation...") + "\n")
	}
	if v.err != nil {
		b.WriteString("\n  " + formatter.Error(v.err) + "\n")
	}
	return b.String()
}
