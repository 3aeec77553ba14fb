package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/alexanderramin/reschool/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type pickPurpose int

const (
	pickForGrades pickPurpose = iota
	pickForHomework
)

type periodsLoadedMsg struct {
	menu *service.PeriodMenu
	err  error
}

// periodPickerView lists every period of every class as a tree and opens
// grades or homework for the chosen one.
type periodPickerView struct {
	state   *SharedState
	purpose pickPurpose
	list    cursorList
	spin    spinner.Model
	loading bool
	err     error
	menu    *service.PeriodMenu
}

func newPeriodPickerView(state *SharedState, purpose pickPurpose) *periodPickerView {
	return &periodPickerView{
		state:   state,
		purpose: purpose,
		spin:    newSpinner(),
		loading: true,
	}
}

func (v *periodPickerView) ID() ViewID    { return ViewPeriodPicker }
func (v *periodPickerView) Title() string { return "Periods" }

func (v *periodPickerView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "open"),
		binding("0-9", "type number"),
		binding("r", "reload"),
	}
}

func (v *periodPickerView) Init() tea.Cmd {
	if v.state.Menu != nil {
		return func() tea.Msg { return periodsLoadedMsg{menu: v.state.Menu} }
	}
	return tea.Batch(v.load(), v.spin.Tick)
}

func (v *periodPickerView) load() tea.Cmd {
	diary := v.state.App.Diary
	return func() tea.Msg {
		menu, err := diary.PeriodOptions(context.Background())
		return periodsLoadedMsg{menu: menu, err: err}
	}
}

func (v *periodPickerView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case periodsLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.menu = msg.menu
		v.state.Menu = msg.menu
		v.list.reset()
		if msg.menu.Default > 0 {
			v.list.cursor = msg.menu.Default - 1
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
		k := msg.String()
		if k == "r" {
			v.loading = true
			v.state.Menu = nil
			return v, tea.Batch(v.load(), v.spin.Tick)
		}
		if v.menu == nil {
			return v, nil
		}
		n := len(v.menu.Options)
		switch {
		case v.list.move(k, n), v.list.typeDigit(k, true):
		case msg.Type == tea.KeyBackspace:
			v.list.backspace()
		case k == "enter":
			return v, v.open(v.list.choice())
		}
	}
	return v, nil
}

func (v *periodPickerView) open(choice string) tea.Cmd {
	idx, err := strconv.Atoi(choice)
	opt, ok := periods.Lookup(v.menu.Options, idx)
	if err != nil || !ok {
		v.err = fmt.Errorf("period %s not in 1..%d", choice, len(v.menu.Options))
		return nil
	}
	v.err = nil
	v.list.cursor = idx - 1
	if v.purpose == pickForHomework {
		return pushView(newHomeworkView(v.state, opt))
	}
	return pushView(newGradesView(v.state, opt))
}

func (v *periodPickerView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Loading periods...")
	}
	var b strings.Builder
	b.WriteString("\n")
	if v.err != nil {
		b.WriteString("  " + formatter.Error(v.err) + "\n\n")
	}
	if v.menu == nil {
		return b.String()
	}
	if len(v.menu.Options) == 0 {
		return b.String() + "  " + formatter.Empty("periods") + "\n"
	}

	rows := formatter.PeriodRows(v.menu.Options)
	lines := make([]string, len(rows))
	for i, r := range rows {
		label := r.Label
		if r.IsRoot {
			label = formatter.StyleHeader.Render(label)
		}
		lines[i] = fmt.Sprintf("%3d. %s%s  %s", r.Index, formatter.Dim(r.Prefix), label, formatter.Dim(r.Range))
		if r.Index == v.menu.Default {
			lines[i] += " " + formatter.StyleGreen.Render("◂ now")
		}
	}
	b.WriteString(v.list.render(lines, v.state.ContentHeight()-3))
	if n := len(v.menu.Dropped); n > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d periods with a missing parent hidden", n)) + "\n")
	}
	return b.String()
}
