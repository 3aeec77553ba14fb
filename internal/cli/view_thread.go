package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/reschool/internal/cli/formatter"
	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type messagesLoadedMsg struct {
	threadID int64
	msgs     []domain.Message
	err      error
}

type messageSentMsg struct {
	threadID int64
	err      error
}

const replyHeight = 3

// threadView shows one conversation with a reply line at the bottom. It
// captures all keys so the reply can contain q.
type threadView struct {
	state    *SharedState
	threadID int64
	subject  string
	vp       viewport.Model
	input    textinput.Model
	loading  bool
	sending  bool
	msgs     []domain.Message
	err      error
}

func newThreadView(state *SharedState, threadID int64, subject string) *threadView {
	in := textinput.New()
	in.Placeholder = "Write a reply..."
	in.Prompt = "› "
	in.CharLimit = 4000
	in.Focus()

	vp := viewport.New(max(state.Width, 20), max(state.ContentHeight()-replyHeight, 1))
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return &threadView{
		state:    state,
		threadID: threadID,
		subject:  subject,
		vp:       vp,
		input:    in,
		loading:  true,
	}
}

func (v *threadView) ID() ViewID    { return ViewThread }
func (v *threadView) Title() string { return formatter.Truncate(domain.CoalesceStr(v.subject, "Conversation"), 30) }

func (v *threadView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "send"),
		binding("pgup/pgdn", "scroll"),
		binding("ctrl+r", "reload"),
		binding("esc", "back"),
	}
}

func (v *threadView) Init() tea.Cmd {
	return tea.Batch(v.load(), textinput.Blink)
}

func (v *threadView) load() tea.Cmd {
	chat, id := v.state.App.Chat, v.threadID
	return func() tea.Msg {
		msgs, err := chat.Messages(context.Background(), id)
		return messagesLoadedMsg{threadID: id, msgs: msgs, err: err}
	}
}

func (v *threadView) send(text string) tea.Cmd {
	chat, id := v.state.App.Chat, v.threadID
	return func() tea.Msg {
		return messageSentMsg{threadID: id, err: chat.Send(context.Background(), id, text)}
	}
}

func (v *threadView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messagesLoadedMsg:
		if msg.threadID != v.threadID {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.msgs = msg.msgs
		v.vp.SetContent(formatter.FormatMessages(v.msgs))
		v.vp.GotoBottom()
		return v, nil

	case messageSentMsg:
		if msg.threadID != v.threadID {
			return v, nil
		}
		v.sending = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.input.Reset()
		v.loading = true
		return v, v.load()

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = max(v.state.ContentHeight()-replyHeight, 1)
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyCtrlR:
			v.loading = true
			return v, v.load()
		case tea.KeyEnter:
			text := strings.TrimSpace(v.input.Value())
			if text == "" || v.sending {
				return v, nil
			}
			v.sending = true
			return v, v.send(text)
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *threadView) View() string {
	var b strings.Builder
	switch {
	case v.loading && len(v.msgs) == 0:
		b.WriteString("\n  " + formatter.Dim("Loading messages...") + "\n")
	default:
		b.WriteString(v.vp.View() + "\n")
	}
	if v.err != nil {
		b.WriteString(formatter.Error(v.err) + "\n")
	} else if v.sending {
		b.WriteString(formatter.Dim("Sending...") + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(v.input.View())
	return b.String()
}
