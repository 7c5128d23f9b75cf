package login

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ritwikg/ctutor/internal/curriculum"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/router"
	"github.com/ritwikg/ctutor/internal/screen"
	"github.com/ritwikg/ctutor/internal/screens/home"
	"github.com/ritwikg/ctutor/internal/transcript"
	"github.com/ritwikg/ctutor/internal/tutor"
	"github.com/ritwikg/ctutor/internal/ui/components"
	"github.com/ritwikg/ctutor/internal/ui/layout"
	"github.com/ritwikg/ctutor/internal/ui/theme"
)

// LoginScreen prompts for a username. The name becomes the progress
// storage key, so the same name always resumes the same record.
type LoginScreen struct {
	catalog *curriculum.Catalog
	store   *progress.Store
	svc     *tutor.Service
	log     *transcript.Log

	input  components.TextInput
	errMsg string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(catalog *curriculum.Catalog, store *progress.Store, svc *tutor.Service, log *transcript.Log) *LoginScreen {
	return &LoginScreen{
		catalog: catalog,
		store:   store,
		svc:     svc,
		log:     log,
		input:   components.NewTextInput("Enter your name...", 32),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.input.Init()
}

func (l *LoginScreen) Title() string {
	return "Welcome"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start learning"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		user := strings.TrimSpace(l.input.Value())
		if err := progress.ValidateUser(user); err != nil {
			l.errMsg = "Please enter a name without path characters."
			l.input.Submit(false)
			return l, nil
		}
		l.input.Submit(true)
		homeScreen := home.New(user, l.catalog, l.store, l.svc, l.log)
		return l, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: homeScreen}
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("C Programming Tutor"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Learn C step by step, topic by topic"))
	b.WriteString("\n\n\n")

	prompt := theme.Body.Render("Who is learning today?") + "\n\n" + l.input.View()
	if l.errMsg != "" {
		prompt += "\n\n" + theme.ErrorText.Render(l.errMsg)
	}

	card := theme.Card.Render(prompt)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(card))

	return b.String()
}
