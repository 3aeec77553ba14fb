package cli

import (
	"testing"

	"github.com/alexanderramin/reschool/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel, sets the terminal size and drains
// Init, which restores the session against the fake portal.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return &TestDriver{Driver: d}
}

func (d *TestDriver) model() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) ActiveView() View {
	m := d.model()
	return m.activeView()
}

// ActiveViewID returns the ViewID of the top view, or -1 for an empty stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ViewStackIDs() []ViewID {
	var ids []ViewID
	for _, v := range d.model().viewStack {
		ids = append(ids, v.ID())
	}
	return ids
}

func (d *TestDriver) ViewStackLen() int { return len(d.model().viewStack) }

func (d *TestDriver) State() *SharedState { return d.model().state }

func (d *TestDriver) IsQuitting() bool { return d.Quitting || d.model().quitting }
