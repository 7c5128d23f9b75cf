package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ritwikg/ctutor/internal/curriculum"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/router"
	"github.com/ritwikg/ctutor/internal/screen"
	"github.com/ritwikg/ctutor/internal/screens/track"
	"github.com/ritwikg/ctutor/internal/transcript"
	"github.com/ritwikg/ctutor/internal/tutor"
	"github.com/ritwikg/ctutor/internal/ui/components"
	"github.com/ritwikg/ctutor/internal/ui/theme"
)

// HomeScreen lists the learning tracks for the logged-in user.
type HomeScreen struct {
	user string
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Each track shows the user's current
// completion percentage next to its name.
func New(user string, catalog *curriculum.Catalog, store *progress.Store, svc *tutor.Service, log *transcript.Log) *HomeScreen {
	names := catalog.TrackNames()

	items := make([]components.MenuItem, 0, len(names)+1)
	for _, name := range names {
		topics := catalog.TopicsFor(name)

		record, _ := store.Load(topics, user)
		detail := fmt.Sprintf("%d topics", len(topics))
		if record != nil {
			detail = fmt.Sprintf("%d topics · %d%%", len(topics), record.Percent())
		}

		trackName := name
		items = append(items, components.MenuItem{
			Label:  trackName,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: track.New(user, trackName, catalog.TopicsFor(trackName), store, svc, log),
					}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &HomeScreen{
		user: user,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Tracks"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("Hi %s, pick a track", h.user)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(h.menu.View()))

	return b.String()
}
