package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// menuAction represents a single option in a menu.
type menuAction struct {
	label string
	key   string // single-key shortcut
	fn    func() tea.Cmd
}

// mainMenuView is the home screen listing every portal section.
type mainMenuView struct {
	state   *SharedState
	list    cursorList
	actions []menuAction
}

func newMainMenuView(state *SharedState) *mainMenuView {
	v := &mainMenuView{state: state}
	v.actions = []menuAction{
		{label: "Grades", fn: func() tea.Cmd { return pushView(newPeriodPickerView(state, pickForGrades)) }},
		{label: "Homework", fn: func() tea.Cmd { return pushView(newPeriodPickerView(state, pickForHomework)) }},
		{label: "Messages", fn: func() tea.Cmd { return pushView(newChatsView(state)) }},
		{label: "School directory", fn: func() tea.Cmd { return pushView(newDirectoryView(state)) }},
		{label: "Profile", fn: func() tea.Cmd { return pushView(newProfileView(state)) }},
		{label: "Subjects", fn: func() tea.Cmd { return pushView(newSubjectsView(state)) }},
		{label: "Tasks", fn: func() tea.Cmd { return pushView(newTasksView(state)) }},
		{label: "User search", fn: func() tea.Cmd { return pushView(newUsersView(state)) }},
		{label: "Log out", key: "l", fn: v.logout},
	}
	for i := range v.actions {
		if v.actions[i].key == "" {
			v.actions[i].key = strconv.Itoa(i + 1)
		}
	}
	return v
}

func (v *mainMenuView) ID() ViewID    { return ViewMainMenu }
func (v *mainMenuView) Title() string { return "" }

func (v *mainMenuView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "open"),
		binding("1-8", "jump"),
	}
}

func (v *mainMenuView) Init() tea.Cmd { return nil }

func (v *mainMenuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	k := km.String()
	if v.list.move(k, len(v.actions)) {
		return v, nil
	}
	if k == "enter" {
		return v, v.actions[v.list.cursor].fn()
	}
	for i, a := range v.actions {
		if k == a.key {
			v.list.cursor = i
			return v, a.fn()
		}
	}
	return v, nil
}

func (v *mainMenuView) logout() tea.Cmd {
	auth := v.state.App.Auth
	return func() tea.Msg {
		return loggedOutMsg{err: auth.Logout(context.Background())}
	}
}

func (v *mainMenuView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if name := v.state.UserName(); name != "" {
		b.WriteString("  " + formatter.Dim("Hello, ") + formatter.Bold(name) + "\n\n")
	}
	b.WriteString("  " + formatter.StyleHeader.Render("MAIN MENU") + "\n\n")

	rows := make([]string, len(v.actions))
	for i, a := range v.actions {
		rows[i] = fmt.Sprintf("%s  %s", formatter.Dim("["+a.key+"]"), a.label)
	}
	b.WriteString(v.list.render(rows, len(rows)))
	return b.String()
}
