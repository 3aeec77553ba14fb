package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/periods"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// textLoadedMsg carries rendered content for the textView with the same seq.
type textLoadedMsg struct {
	seq     int
	content string
	err     error
}

var textSeq int

// textView is a read-only, scrollable page whose content comes from a
// single service call. Grades, homework, profile, subjects and tasks are
// all textViews with different loaders.
type textView struct {
	state   *SharedState
	id      ViewID
	title   string
	seq     int
	load    func(ctx context.Context) (string, error)
	spin    spinner.Model
	vp      viewport.Model
	loading bool
	err     error
}

func newTextView(state *SharedState, id ViewID, title string, load func(ctx context.Context) (string, error)) *textView {
	textSeq++
	vp := viewport.New(max(state.Width, 20), state.ContentHeight())
	vp.MouseWheelEnabled = true
	return &textView{
		state:   state,
		id:      id,
		title:   title,
		seq:     textSeq,
		load:    load,
		spin:    newSpinner(),
		vp:      vp,
		loading: true,
	}
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple))
}

func (v *textView) ID() ViewID    { return v.id }
func (v *textView) Title() string { return v.title }

func (v *textView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("↑/↓", "scroll"),
		binding("r", "reload"),
	}
}

func (v *textView) Init() tea.Cmd {
	return tea.Batch(v.fetch(), v.spin.Tick)
}

func (v *textView) fetch() tea.Cmd {
	load, seq := v.load, v.seq
	return func() tea.Msg {
		content, err := load(context.Background())
		return textLoadedMsg{seq: seq, content: content, err: err}
	}
}

func (v *textView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case textLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		v.vp.SetContent(msg.content)
		v.vp.GotoTop()
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spin, cmd = v.spin.Update(msg)
		return v, cmd

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !v.loading {
			v.loading = true
			return v, tea.Batch(v.fetch(), v.spin.Tick)
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *textView) View() string {
	if v.loading {
		return "\n  " + v.spin.View() + " " + formatter.Dim("Loading "+v.title+"...")
	}
	if v.err != nil {
		return "\n  " + formatter.Error(v.err)
	}
	return v.vp.View()
}

func newGradesView(state *SharedState, opt periods.MenuOption) *textView {
	diary := state.App.Diary
	return newTextView(state, ViewGrades, "Grades: "+opt.Name, func(ctx context.Context) (string, error) {
		rows, err := diary.Grades(ctx, opt.ID)
		if err != nil {
			return "", err
		}
		return formatter.FormatGrades(opt.Name, rows), nil
	})
}

func newHomeworkView(state *SharedState, opt periods.MenuOption) *textView {
	diary := state.App.Diary
	return newTextView(state, ViewHomework, "Homework: "+opt.Name, func(ctx context.Context) (string, error) {
		entries, err := diary.Homework(ctx, opt.PeriodRecord)
		if err != nil {
			return "", err
		}
		return formatter.FormatHomework(opt.Name, entries), nil
	})
}

func newProfileView(state *SharedState) *textView {
	app := state.App
	return newTextView(state, ViewProfile, "Profile", func(ctx context.Context) (string, error) {
		st, err := app.Auth.State(ctx)
		if err != nil {
			return "", err
		}
		var ext *domain.ExtendedProfile
		if ext, err = app.Profile.Extended(ctx); err != nil {
			return "", err
		}
		return formatter.FormatProfile(st, ext), nil
	})
}

func newSubjectsView(state *SharedState) *textView {
	profile := state.App.Profile
	return newTextView(state, ViewSubjects, "Subjects", func(ctx context.Context) (string, error) {
		year, err := profile.CurrentYearID(ctx)
		if err != nil {
			return "", err
		}
		units, err := profile.Units(ctx, year)
		if err != nil {
			return "", err
		}
		return formatter.Header("Subjects") + "\n" + formatter.FormatUnits(units), nil
	})
}

func newTasksView(state *SharedState) *textView {
	profile := state.App.Profile
	return newTextView(state, ViewTasks, "Tasks", func(ctx context.Context) (string, error) {
		year, err := profile.CurrentYearID(ctx)
		if err != nil {
			return "", err
		}
		tasks, err := profile.Tasks(ctx, year, time.Time{}, time.Time{})
		if err != nil {
			return "", err
		}
		return formatter.Header("Tasks") + "\n" + formatter.FormatTasks(tasks, time.Now()), nil
	})
}
