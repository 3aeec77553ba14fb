package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewLogin ViewID = iota
	ViewMainMenu
	ViewPeriodPicker
	ViewGrades
	ViewHomework
	ViewChats
	ViewThread
	ViewDirectory
	ViewActionMenu
	ViewProfile
	ViewSubjects
	ViewTasks
	ViewUsers
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// backHandler is implemented by views with their own notion of "back".
// HandleBack reports whether it consumed the key; if not, the view is
// popped.
type backHandler interface {
	HandleBack() bool
}

// inputCapturer is implemented by views that take text input only some of
// the time, like a list with a filter.
type inputCapturer interface {
	CapturesInput() bool
}

// viewCapturesInput returns true if the view has its own text input and
// should receive all key events, bypassing the global q and esc bindings.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if ic, ok := v.(inputCapturer); ok && ic.CapturesInput() {
		return true
	}
	switch v.ID() {
	case ViewLogin, ViewThread:
		return true
	}
	return false
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
