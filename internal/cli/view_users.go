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

type usersLoadedMsg struct {
	dir *domain.UserDirectory
	err error
}

type userRow struct {
	role string
	user domain.UserSearchItem
}

// usersView lists everyone in the current school year, filterable by
// name, and opens the user action menu for the selected person.
type usersView struct {
	state     *SharedState
	list      cursorList
	spin      spinner.Model
	loading   bool
	rows      []userRow
	filtering bool
	filter    string
	err       error
}

func newUsersView(state *SharedState) *usersView {
	return &usersView{state: state, spin: newSpinner(), loading: true}
}

func (v *usersView) ID() ViewID    { return ViewUsers }
func (v *usersView) Title() string { return "Users" }

func (v *usersView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "select"),
		binding("/", "filter"),
	}
}

func (v *usersView) Init() tea.Cmd {
	profile := v.state.App.Profile
	return tea.Batch(func() tea.Msg {
		ctx := context.Background()
		year, err := profile.CurrentYearID(ctx)
		if err != nil {
			return usersLoadedMsg{err: err}
		}
		dir, err := profile.SearchUsers(ctx, year)
		return usersLoadedMsg{dir: dir, err: err}
	}, v.spin.Tick)
}

func (v *usersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.dir != nil {
			v.rows = v.rows[:0]
			add := func(role string, users []domain.UserSearchItem) {
				for _, u := range users {
					v.rows = append(v.rows, userRow{role: role, user: u})
				}
			}
			add("student", msg.dir.Students)
			add("teacher", msg.dir.Teachers)
			add("parent", msg.dir.Parents)
		}
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
		if v.filtering {
			v.updateFilter(msg)
			return v, nil
		}
		visible := v.visible()
		switch k := msg.String(); {
		case v.list.move(k, len(visible)):
		case k == "/":
			v.filtering = true
		case k == "enter" && len(visible) > 0:
			u := visible[v.list.cursor].user
			var pos []string
			for _, p := range u.Positions {
				pos = append(pos, p.PosTypeName)
			}
			return v, pushView(newUserActionView(v.state, u.PrsID, u.Fio, pos))
		}
	}
	return v, nil
}

func (v *usersView) updateFilter(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
	case tea.KeyEnter:
		v.filtering = false
	case tea.KeyBackspace:
		if r := []rune(v.filter); len(r) > 0 {
			v.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		v.filter += string(msg.Runes)
	}
	v.list.reset()
}

func (v *usersView) CapturesInput() bool { return v.filtering }

// HandleBack clears an active filter before leaving the view.
func (v *usersView) HandleBack() bool {
	if v.filter == "" && !v.filtering {
		return false
	}
	v.filtering = false
	v.filter = ""
	v.list.reset()
	return true
}

func (v *usersView) visible() []userRow {
	if v.filter == "" {
		return v.rows
	}
	lf := strings.ToLower(v.filter)
	var out []userRow
	for _, r := range v.rows {
		if strings.Contains(strings.ToLower(r.user.Fio), lf) || strings.Contains(strings.ToLower(r.user.GroupName), lf) {
			out = append(out, r)
		}
	}
	return out
}

func (v *usersView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Loading users...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(v.err)
	}
	var b strings.Builder
	b.WriteString("\n")
	if v.filtering || v.filter != "" {
		cursor := ""
		if v.filtering {
			cursor = "█"
		}
		b.WriteString("  " + formatter.StyleYellow.Render("/") + " " + v.filter + cursor + "\n\n")
	}
	visible := v.visible()
	if len(visible) == 0 {
		return b.String() + "  " + formatter.Empty("users") + "\n"
	}
	rows := make([]string, len(visible))
	for i, r := range visible {
		rows[i] = fmt.Sprintf("%s %-32s %s", formatter.Dim(fmt.Sprintf("%-8s", r.role)), r.user.Fio, formatter.StyleBlue.Render(r.user.GroupName))
	}
	b.WriteString(v.list.render(rows, v.state.ContentHeight()-3))
	return b.String()
}
