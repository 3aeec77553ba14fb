package cli

import (
	"github.com/alexanderramin/reschool/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// sessionRestoredMsg carries the result of the startup AutoLogin.
type sessionRestoredMsg struct {
	state *domain.State
	err   error
}

// loggedInMsg is sent by the login view after a successful login.
type loggedInMsg struct {
	state *domain.State
}

// loggedOutMsg resets the stack to the login form.
type loggedOutMsg struct {
	err error
}

type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

func quit() tea.Cmd {
	return func() tea.Msg { return quitMsg{} }
}
