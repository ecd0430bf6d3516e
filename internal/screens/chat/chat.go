package chat

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	conv "github.com/abhisek/studybuddy/internal/chat"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const maxInput = 2000

// replyMsg carries a finished answerer call back to the update loop.
type replyMsg struct {
	Reply conv.Reply
}

// startedMsg is sent once the stored name has been looked up.
type startedMsg struct {
	Ticket conv.Ticket
	Greet  bool
	Err    error
}

// ChatScreen is a conversation about the loaded document.
type ChatScreen struct {
	session *conv.Session
	input   components.TextInput
	spinner components.Spinner
	notice  string

	ctx    context.Context
	cancel context.CancelFunc
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.Closer = (*ChatScreen)(nil)

// New creates a ChatScreen over an unstarted session.
func New(session *conv.Session) *ChatScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ChatScreen{
		session: session,
		input:   components.NewTextInput("Ask about your notes...", maxInput),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return tea.Batch(c.input.Init(), c.start())
}

func (c *ChatScreen) start() tea.Cmd {
	ctx := c.ctx
	session := c.session
	return func() tea.Msg {
		t, greet, err := session.Start(ctx)
		return startedMsg{Ticket: t, Greet: greet, Err: err}
	}
}

func (c *ChatScreen) Title() string {
	return "Chat"
}

// Status shows who is studying once the name is known.
func (c *ChatScreen) Status() string {
	if name := c.session.Name(); name != "" {
		return "Studying as: " + name
	}
	return ""
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close ends the session so late replies are dropped.
func (c *ChatScreen) Close() {
	c.session.Close()
	c.cancel()
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		if msg.Err != nil {
			c.notice = msg.Err.Error()
			return c, nil
		}
		if !msg.Greet {
			c.input.Model.Placeholder = "Type your name..."
			return c, nil
		}
		return c, c.fetch(msg.Ticket)

	case replyMsg:
		_ = c.session.Apply(msg.Reply)
		c.input.Model.Placeholder = "Ask about your notes..."
		return c, nil

	case components.SpinnerTickMsg:
		if !c.session.State().Loading() {
			return c, nil
		}
		c.spinner.Advance()
		return c, c.spinner.Tick()

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return c, c.submit()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) submit() tea.Cmd {
	t, err := c.session.Submit(c.ctx, c.input.Value())
	switch {
	case errors.Is(err, conv.ErrEmptyInput):
		return nil
	case errors.Is(err, conv.ErrBusy):
		c.notice = "Please wait for the reply..."
		return nil
	case err != nil:
		c.notice = err.Error()
		return nil
	}
	c.notice = ""
	c.input.Clear()
	return c.fetch(t)
}

func (c *ChatScreen) fetch(t conv.Ticket) tea.Cmd {
	ctx := c.ctx
	session := c.session
	fetch := func() tea.Msg {
		return replyMsg{Reply: session.Fetch(ctx, t)}
	}
	return tea.Batch(fetch, c.spinner.Tick())
}

func (c *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	footer := c.input.View()
	if c.session.State().Loading() {
		footer = c.spinner.View("Study Buddy is typing...") + "\n" + footer
	}
	if c.notice != "" {
		footer = lipgloss.NewStyle().Foreground(theme.Warning).Render(c.notice) + "\n" + footer
	}

	avail := max(height-lipgloss.Height(footer)-2, 1)
	transcript := renderTranscript(c.session.Transcript(), cw, avail)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(avail).Render(transcript),
		layout.Divider(cw),
		footer,
	)
}

// renderTranscript renders turns oldest first and keeps the last lines that
// fit in height.
func renderTranscript(turns []conv.Turn, width, height int) string {
	var blocks []string
	for _, t := range turns {
		speaker := theme.AssistantSpeaker.Render("Study Buddy")
		if t.Speaker == conv.SpeakerUser {
			speaker = theme.UserSpeaker.Render("You")
		}
		body := components.Wrap(t.Text, width-2)
		blocks = append(blocks, speaker+"\n"+body)
	}

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return strings.Join(lines, "\n")
}
