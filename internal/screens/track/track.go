package track

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/router"
	"github.com/ritwikg/ctutor/internal/screen"
	"github.com/ritwikg/ctutor/internal/screens/topic"
	"github.com/ritwikg/ctutor/internal/session"
	"github.com/ritwikg/ctutor/internal/transcript"
	"github.com/ritwikg/ctutor/internal/tutor"
	"github.com/ritwikg/ctutor/internal/ui/components"
	"github.com/ritwikg/ctutor/internal/ui/layout"
	"github.com/ritwikg/ctutor/internal/ui/theme"
)

// TrackScreen shows the topic checklist for one track.
type TrackScreen struct {
	user   string
	track  string
	topics []string
	record progress.Record
	store  *progress.Store
	svc    *tutor.Service
	log    *transcript.Log

	cursor       int
	confirmReset bool
	notice       string
	noticeIsErr  bool
}

var _ screen.Screen = (*TrackScreen)(nil)
var _ screen.KeyHintProvider = (*TrackScreen)(nil)

// New creates the track screen. A corrupt progress file degrades to a
// fresh record with a warning instead of blocking the session.
func New(user, trackName string, topics []string, store *progress.Store, svc *tutor.Service, log *transcript.Log) *TrackScreen {
	record, err := session.LoadRecord(store, topics, user)

	t := &TrackScreen{
		user:   user,
		track:  trackName,
		topics: topics,
		record: record,
		store:  store,
		svc:    svc,
		log:    log,
	}
	if err != nil {
		t.notice = "Progress file could not be read; starting fresh."
		t.noticeIsErr = true
	}
	return t
}

func (t *TrackScreen) Init() tea.Cmd {
	return nil
}

func (t *TrackScreen) Title() string {
	return t.track
}

func (t *TrackScreen) KeyHints() []layout.KeyHint {
	if t.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset progress"},
			{Key: "N", Description: "Keep progress"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Learn topic"},
		{Key: "R", Description: "Reset progress"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TrackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}

	if t.confirmReset {
		switch kmsg.String() {
		case "y", "Y":
			t.confirmReset = false
			if err := t.store.Reset(t.topics, t.user); err != nil {
				t.notice = fmt.Sprintf("Reset failed: %v", err)
				t.noticeIsErr = true
				return t, nil
			}
			t.record = progress.NewRecord(t.topics)
			t.notice = "Progress reset."
			t.noticeIsErr = false
		case "n", "N", "esc":
			t.confirmReset = false
		}
		return t, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(t.topics)-1 {
			t.cursor++
		}
	case "r", "R":
		t.confirmReset = true
	case "enter":
		return t, t.openTopic()
	}

	return t, nil
}

// openTopic starts a learning session on the selected topic. Completed
// topics are rejected in place.
func (t *TrackScreen) openTopic() tea.Cmd {
	selected := t.topics[t.cursor]

	st := session.New(t.store, t.user, t.track, t.topics, t.record)
	if err := st.SelectTopic(selected); err != nil {
		t.notice = fmt.Sprintf("%q is already completed.", selected)
		t.noticeIsErr = true
		return nil
	}

	t.notice = ""
	topicScreen := topic.New(st, t.svc, t.log)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: topicScreen}
	}
}

func (t *TrackScreen) View(width, height int) string {
	var b strings.Builder

	bar := components.NewProgressBar(
		fmt.Sprintf("%d / %d done", t.record.Completed(), len(t.topics)),
		float64(t.record.Percent())/100,
		true,
		width-8,
	)
	b.WriteString("\n  " + bar.View() + "\n\n")

	for i, name := range t.topics {
		marker := theme.Todo.Render("[ ]")
		label := theme.Unselected.Render(name)
		if t.record[name] {
			marker = theme.Done.Render("[✓]")
			label = theme.Todo.Render(name)
		}
		prefix := "   "
		if i == t.cursor {
			prefix = theme.Selected.Render(" ▸ ")
			if !t.record[name] {
				label = theme.Selected.Render(name)
			}
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, label))
	}

	if t.confirmReset {
		b.WriteString("\n" + theme.ErrorText.Render("  Reset all progress for this track? [y/n]") + "\n")
	} else if t.notice != "" {
		style := theme.Hint
		if t.noticeIsErr {
			style = theme.ErrorText
		}
		b.WriteString("\n" + style.Render("  "+t.notice) + "\n")
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}
