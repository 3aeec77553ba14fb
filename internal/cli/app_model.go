package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI. It owns the view stack;
// the main menu is always at the bottom once a session exists.
type appModel struct {
	state     *SharedState
	viewStack []View
	restoring bool
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{App: app}
	return appModel{
		state:     state,
		viewStack: []View{newMainMenuView(state)},
		restoring: true,
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) push(v View) tea.Cmd {
	m.viewStack = append(m.viewStack, v)
	return v.Init()
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	auth := m.state.App.Auth
	return func() tea.Msg {
		st, err := auth.AutoLogin(context.Background())
		return sessionRestoredMsg{state: st, err: err}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		// Every view keeps its own layout, so all of them hear about it.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionRestoredMsg:
		m.restoring = false
		if msg.err == nil {
			m.state.User = msg.state
			return m, nil
		}
		notice := ""
		if !errors.Is(msg.err, service.ErrNoSavedCredentials) {
			notice = "Saved session could not be restored: " + msg.err.Error()
		}
		return m, m.push(newLoginView(m.state, notice))

	case loggedInMsg:
		m.state.User = msg.state
		m.viewStack = []View{newMainMenuView(m.state)}
		return m, m.viewStack[0].Init()

	case loggedOutMsg:
		m.state.Reset()
		m.viewStack = []View{newMainMenuView(m.state)}
		notice := ""
		if msg.err != nil {
			notice = msg.err.Error()
		}
		return m, m.push(newLoginView(m.state, notice))

	case pushViewMsg:
		return m, m.push(msg.view)

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		if len(m.viewStack) == 0 {
			return m, m.push(msg.view)
		}
		m.setActiveView(msg.view)
		return m, msg.view.Init()

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Forward everything else (loaded data, spinner ticks) to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if m.restoring {
		return m, nil
	}

	v := m.activeView()
	if viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		if bh, ok := v.(backHandler); ok && bh.HandleBack() {
			return m, nil
		}
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if m.restoring {
		sections = append(sections, "\n  "+formatter.Dim("Restoring session..."))
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("reschool")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}
	if name := m.state.UserName(); name != "" {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(name) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	v := m.activeView()
	if v != nil && !m.restoring {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if !viewCapturesInput(v) {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
