// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed and fed back
// until the model settles, so a test can press keys and inspect the result
// without a tea.Program or goroutine juggling. Cmds that block (cursor
// blink, spinner ticks) are given a short timeout and dropped.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may trigger.
const MaxDrainDepth = 100

// cmdTimeout separates immediate Cmds (service calls against fakes,
// message factories) from timer-driven ones (blink, spinner ticks).
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when a tea.QuitMsg is produced. The runtime normally
	// intercepts it, so the model may never see it.
	Quitting bool
}

// Option configures the Driver during construction.
type Option func(*Driver)

// New creates a Driver for the given model and applies options.
// Call DrainInit afterwards to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize sends an initial WindowSizeMsg before any other processing.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// DrainInit executes the model's Init command and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches a message through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// Run executes cmd as if a model had returned it.
func (d *Driver) Run(cmd tea.Cmd) {
	d.T.Helper()
	d.drainCmd(cmd, 0)
}

// ── Key event helpers ────────────────────────────────────────────────────────

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends one named key: "enter", "esc", "up", "down", "backspace",
// "ctrl+c", "pgup", "pgdown", or a single character.
func (d *Driver) Press(name string) {
	d.T.Helper()
	if t, ok := namedKeys[name]; ok {
		d.Send(tea.KeyMsg{Type: t})
		return
	}
	r := []rune(name)
	if len(r) != 1 {
		d.T.Fatalf("teatest.Driver: unknown key %q", name)
	}
	d.PressKey(r[0])
}

// PressEnter sends the Enter key.
func (d *Driver) PressEnter() { d.T.Helper(); d.Press("enter") }

// PressEsc sends the Escape key.
func (d *Driver) PressEsc() { d.T.Helper(); d.Press("esc") }

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() { d.T.Helper(); d.Press("ctrl+c") }

// PressDown sends the Down arrow key.
func (d *Driver) PressDown() { d.T.Helper(); d.Press("down") }

// PressUp sends the Up arrow key.
func (d *Driver) PressUp() { d.T.Helper(); d.Press("up") }

// Type sends a string character by character.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"backspace": tea.KeyBackspace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
}

// View returns the full rendered output of the model.
func (d *Driver) View() string {
	return d.Model.View()
}

// ── Command draining ─────────────────────────────────────────────────────────

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest.Driver: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := execCmdWithTimeout(cmd)
	if msg == nil || isTimerMsg(msg) {
		return
	}

	switch m := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range m {
			d.drainCmd(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, next := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(next, depth+1)
}

// execCmdWithTimeout runs cmd and returns nil if it does not finish within
// cmdTimeout.
func execCmdWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() {
		ch <- cmd()
	}()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isTimerMsg detects cursor blink messages, whose unexported types chain
// into blocking timer Cmds when processed.
func isTimerMsg(msg tea.Msg) bool {
	t := strings.ToLower(fmt.Sprintf("%T", msg))
	return strings.Contains(t, "blink")
}
