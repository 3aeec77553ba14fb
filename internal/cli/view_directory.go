package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/directory"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type directoryLoadedMsg struct {
	nav *directory.Navigator
	err error
}

// directoryView walks the school directory. The tree is fetched once;
// every level after that is computed locally by the Navigator.
type directoryView struct {
	state   *SharedState
	nav     *directory.Navigator
	list    cursorList
	spin    spinner.Model
	loading bool
	err     error
}

func newDirectoryView(state *SharedState) *directoryView {
	return &directoryView{state: state, spin: newSpinner(), loading: true}
}

func (v *directoryView) ID() ViewID { return ViewDirectory }

func (v *directoryView) Title() string {
	if v.nav == nil || v.nav.Depth() == 0 {
		return "Directory"
	}
	return "Directory: " + v.nav.BreadcrumbTitle()
}

func (v *directoryView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "select"),
		binding("b", "back"),
		binding("0", "exit"),
	}
}

func (v *directoryView) Init() tea.Cmd {
	svc := v.state.App.Directory
	return tea.Batch(func() tea.Msg {
		nav, err := svc.Browse(context.Background())
		return directoryLoadedMsg{nav: nav, err: err}
	}, v.spin.Tick)
}

// HandleBack goes up one level; at the top level esc leaves the view.
func (v *directoryView) HandleBack() bool {
	if v.nav == nil {
		return false
	}
	if v.nav.Back() {
		return false
	}
	v.list.reset()
	v.err = nil
	return true
}

func (v *directoryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case directoryLoadedMsg:
		v.loading = false
		v.nav, v.err = msg.nav, msg.err
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.nav == nil {
			return v, nil
		}
		k := msg.String()
		n := len(v.nav.CurrentView())
		switch {
		case v.list.move(k, n), v.list.typeDigit(k, false):
		case msg.Type == tea.KeyBackspace:
			v.list.backspace()
		case k == "b":
			if !v.HandleBack() {
				v.nav.Reset()
				return v, popView()
			}
		case k == "0":
			v.nav.Reset()
			return v, popView()
		case k == "enter" && (n > 0 || v.list.digits != ""):
			return v, v.enter(v.list.choice())
		}
	}
	return v, nil
}

func (v *directoryView) enter(choice string) tea.Cmd {
	sel, err := v.nav.EnterChoice(choice)
	if err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	if sel.Outcome == directory.OutcomeTerminal {
		return pushView(newUserActionView(v.state, sel.Node.PrsID, sel.Node.Fio, sel.Node.Positions))
	}
	v.list.reset()
	return nil
}

func (v *directoryView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Loading directory...")
	}
	if v.nav == nil {
		return "\n  " + formatter.Error(v.err)
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render(strings.ToUpper(v.levelTitle())) + "\n\n")
	if v.err != nil {
		b.WriteString("  " + formatter.Error(v.err) + "\n\n")
	}

	entries := v.nav.CurrentView()
	if len(entries) == 0 {
		b.WriteString("  " + formatter.Empty("entries") + "\n")
	}
	rows := make([]string, len(entries))
	for i, e := range entries {
		rows[i] = formatter.DirectoryRow(e)
	}
	b.WriteString(v.list.render(rows, v.state.ContentHeight()-5))
	if n := len(v.nav.Issues()); n > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d unreadable entries skipped", n)) + "\n")
	}
	return b.String()
}

func (v *directoryView) levelTitle() string {
	if t := v.nav.BreadcrumbTitle(); t != "" {
		return t
	}
	return "School directory"
}
