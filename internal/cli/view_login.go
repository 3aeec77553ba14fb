package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type loginResultMsg struct {
	state *domain.State
	err   error
}

// loginView wraps the credentials form. A failed attempt rebuilds the form
// with the username kept and the error shown above it.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	notice   string
	busy     bool
	username string
	password string
	remember bool
}

func newLoginView(state *SharedState, notice string) *loginView {
	v := &loginView{state: state, notice: notice, remember: true}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	v.password = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&v.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.password).
				Validate(required("password")),
			huh.NewConfirm().
				Title("Remember me on this computer?").
				Value(&v.remember),
		),
	).WithTheme(reschoolHuhTheme()).WithShowHelp(false)
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(what + " is required")
		}
		return nil
	}
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "next"),
		binding("esc", "quit"),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

// submit logs in with the values currently bound to the form.
func (v *loginView) submit() tea.Cmd {
	v.busy = true
	auth := v.state.App.Auth
	username, password, remember := strings.TrimSpace(v.username), v.password, v.remember
	return func() tea.Msg {
		st, err := auth.Login(context.Background(), username, password, remember)
		return loginResultMsg{state: st, err: err}
	}
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.busy = false
		if msg.err != nil {
			v.notice = msg.err.Error()
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		st := msg.state
		return v, func() tea.Msg { return loggedInMsg{state: st} }

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, quit()
		}
		if v.busy {
			return v, nil
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted && !v.busy {
		return v, tea.Batch(cmd, v.submit())
	}
	return v, cmd
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleHeader.Render("SIGN IN TO ESCHOOL") + "\n\n")
	if v.notice != "" {
		b.WriteString("  " + formatter.StyleRed.Render(v.notice) + "\n\n")
	}
	if v.busy {
		b.WriteString("  " + formatter.Dim("Logging in...") + "\n")
		return b.String()
	}
	b.WriteString(formatter.Indent(v.form.View(), "  "))
	return b.String()
}
