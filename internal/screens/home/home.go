package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	conv "github.com/abhisek/studybuddy/internal/chat"
	"github.com/abhisek/studybuddy/internal/document"
	"github.com/abhisek/studybuddy/internal/logger"
	prog "github.com/abhisek/studybuddy/internal/progress"
	qz "github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	chatscreen "github.com/abhisek/studybuddy/internal/screens/chat"
	progressscreen "github.com/abhisek/studybuddy/internal/screens/progress"
	quizscreen "github.com/abhisek/studybuddy/internal/screens/quiz"
	summaryscreen "github.com/abhisek/studybuddy/internal/screens/summary"
	sum "github.com/abhisek/studybuddy/internal/summary"
	"github.com/abhisek/studybuddy/internal/ui/components"
)

// Services are the collaborators the feature screens are built from.
type Services struct {
	Document   *document.Document
	Summarizer sum.Summarizer
	Generator  qz.Generator
	Answerer   conv.Answerer
	Identity   conv.Identity
	Progress   prog.Source
	Activity   quizscreen.ActivityRecorder
	UserID     string
	SaveDir    string
	ModeLabel  string
	Log        *logger.Logger
}

const needsDocument = "load a document first"

// HomeScreen is the main menu.
type HomeScreen struct {
	svc  Services
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen over svc.
func New(svc Services) *HomeScreen {
	h := &HomeScreen{svc: svc}
	noDoc := svc.Document == nil

	items := []components.MenuItem{
		{Label: "Summarize Notes", Hint: needsDocument, Disabled: noDoc || svc.Summarizer == nil, Action: h.push(h.newSummary)},
		{Label: "Take a Quiz", Hint: needsDocument, Disabled: noDoc || svc.Generator == nil, Action: h.push(h.newQuiz)},
		{Label: "Chat with Notes", Hint: needsDocument, Disabled: noDoc || svc.Answerer == nil || svc.Identity == nil, Action: h.push(h.newChat)},
		{Label: "My Progress", Hint: "unavailable", Disabled: svc.Progress == nil || svc.UserID == "", Action: h.push(h.newProgress)},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		s := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
}

func (h *HomeScreen) newSummary() screen.Screen {
	d := h.svc.Document
	return summaryscreen.New(sum.NewSession(h.svc.Summarizer, d.Name, d.Text, h.svc.Log), h.svc.SaveDir)
}

func (h *HomeScreen) newQuiz() screen.Screen {
	d := h.svc.Document
	return quizscreen.New(qz.NewSession(h.svc.Generator, d.Text, h.svc.Log), h.svc.Activity, h.svc.UserID, d.Name, h.svc.Log)
}

func (h *HomeScreen) newChat() screen.Screen {
	return chatscreen.New(conv.NewSession(h.svc.Answerer, h.svc.Identity, h.svc.Document.Text, h.svc.Log))
}

func (h *HomeScreen) newProgress() screen.Screen {
	return progressscreen.New(h.svc.Progress, h.svc.UserID)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 80
	cw := components.ContentWidth(width)

	variant := MascotWaiting
	if h.svc.Document != nil {
		variant = MascotReady
	}

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(RenderMascot(variant)))
	}
	sections = append(sections,
		renderDocumentCard(h.svc.Document, cw),
		renderMenu(h.menu.View(), cw),
	)
	if note := renderModeNote(h.svc.ModeLabel, cw); note != "" {
		sections = append(sections, note)
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
