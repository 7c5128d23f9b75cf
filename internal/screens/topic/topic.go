package topic

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ritwikg/ctutor/internal/llm"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/router"
	"github.com/ritwikg/ctutor/internal/screen"
	"github.com/ritwikg/ctutor/internal/session"
	"github.com/ritwikg/ctutor/internal/transcript"
	"github.com/ritwikg/ctutor/internal/tutor"
	"github.com/ritwikg/ctutor/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TopicScreen drives one topic's learning session: explanation first,
// then optional example, quiz, regenerate, export, mark done and next.
type TopicScreen struct {
	state *session.State
	svc   *tutor.Service
	log   *transcript.Log

	scroll      int
	spinFrame   int
	notice      string
	noticeIsErr bool
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)

// New creates a topic screen for a session that has a topic selected
// and its first explanation request pending.
func New(st *session.State, svc *tutor.Service, log *transcript.Log) *TopicScreen {
	return &TopicScreen{
		state: st,
		svc:   svc,
		log:   log,
	}
}

func (t *TopicScreen) Init() tea.Cmd {
	return tea.Batch(t.generate(t.state.PendingMode()), t.spinnerTick())
}

func (t *TopicScreen) Title() string {
	if t.state.Topic() == "" {
		return t.state.Track
	}
	return t.state.Topic()
}

func (t *TopicScreen) KeyHints() []layout.KeyHint {
	if t.state.Busy() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	if t.state.Phase() != session.ContentReady {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back to track"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Regenerate"},
		{Key: "E", Description: "Example"},
		{Key: "Q", Description: "Quiz"},
		{Key: "X", Description: "Export"},
		{Key: "D", Description: "Done"},
		{Key: "N", Description: "Next"},
	}
}

// generate runs the completion request off the UI loop and reports the
// result as a contentMsg.
func (t *TopicScreen) generate(mode tutor.Mode) tea.Cmd {
	topicName := t.state.Topic()
	sessionID, user := t.state.ID, t.state.User
	return func() tea.Msg {
		ctx := llm.WithSession(context.Background(), sessionID, user)
		text, err := t.svc.Generate(ctx, topicName, mode)
		if err != nil {
			return contentMsg{Mode: mode, Err: err}
		}
		return contentMsg{Mode: mode, Text: text}
	}
}

func (t *TopicScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(ts time.Time) tea.Msg {
		return spinnerTickMsg(ts)
	})
}

func (t *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentMsg:
		if msg.Err != nil {
			// Failures render inline as the requested content.
			t.state.ReceivedError(msg.Mode, msg.Err)
		} else {
			t.state.Received(msg.Mode, msg.Text)
		}
		t.scroll = 0
		return t, nil

	case spinnerTickMsg:
		if !t.state.Busy() {
			return t, nil
		}
		t.spinFrame = (t.spinFrame + 1) % len(spinnerFrames)
		return t, t.spinnerTick()

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	return t, nil
}

func (t *TopicScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if t.scroll > 0 {
			t.scroll--
		}
	case "down", "j":
		t.scroll++

	case "r", "R":
		if err := t.state.Regenerate(); err != nil {
			return t, nil
		}
		t.notice = ""
		return t, tea.Batch(t.generate(tutor.ModeExplain), t.spinnerTick())

	case "e", "E":
		if err := t.state.RequestExample(); err != nil {
			return t, nil
		}
		return t, tea.Batch(t.generate(tutor.ModeExample), t.spinnerTick())

	case "q", "Q":
		if err := t.state.RequestQuiz(); err != nil {
			return t, nil
		}
		return t, tea.Batch(t.generate(tutor.ModeQuiz), t.spinnerTick())

	case "x", "X":
		if t.state.Phase() != session.ContentReady {
			return t, nil
		}
		if err := t.log.Append(t.state.Topic(), t.state.Explanation()); err != nil {
			t.notice = fmt.Sprintf("Export failed: %v", err)
			t.noticeIsErr = true
			return t, nil
		}
		t.notice = fmt.Sprintf("Saved to %s", t.log.Path())
		t.noticeIsErr = false

	case "d", "D":
		if t.state.Phase() != session.ContentReady {
			return t, nil
		}
		if err := t.state.MarkDone(); err != nil {
			var storageErr *progress.StorageError
			if errors.As(err, &storageErr) {
				t.notice = fmt.Sprintf("Could not save progress: %v", storageErr.Err)
			} else {
				t.notice = fmt.Sprintf("Could not save progress: %v", err)
			}
			t.noticeIsErr = true
			return t, nil
		}
		return t, func() tea.Msg { return router.PopScreenMsg{} }

	case "n", "N":
		if _, err := t.state.Next(); err != nil {
			if errors.Is(err, session.ErrNoMoreTopics) {
				t.notice = "No more topics remain in this track."
				t.noticeIsErr = false
			}
			return t, nil
		}
		t.notice = ""
		t.scroll = 0
		return t, tea.Batch(t.generate(tutor.ModeExplain), t.spinnerTick())
	}

	return t, nil
}
