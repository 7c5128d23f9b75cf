package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/tutor"
)

// Phase is the lifecycle stage of a learning session.
type Phase int

const (
	// Idle means no topic is selected.
	Idle Phase = iota
	// ContentLoading means an explanation request is outstanding.
	ContentLoading
	// ContentReady means an explanation is present, optionally with an
	// example and/or quiz attached.
	ContentReady
)

func (p Phase) String() string {
	switch p {
	case ContentLoading:
		return "loading"
	case ContentReady:
		return "ready"
	default:
		return "idle"
	}
}

var (
	// ErrInvalidTopic rejects selection of a completed or unknown topic.
	ErrInvalidTopic = errors.New("topic is unknown or already completed")
	// ErrNoMoreTopics signals that no incomplete topic follows the
	// current one in track order.
	ErrNoMoreTopics = errors.New("no more topics remain")
	// ErrRequestInFlight rejects a trigger while a generation request is
	// outstanding. Callers ignore it silently.
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// State is the topic selection state machine for one user on one track.
// All methods are synchronous; transitions that issue a generation
// request report the mode to run, and the caller feeds the result back
// through Received or ReceivedError.
type State struct {
	ID     string
	User   string
	Track  string
	Topics []string
	Record progress.Record

	store *progress.Store

	phase       Phase
	topic       string
	explanation string
	example     string
	quiz        string

	inFlight bool
	pending  tutor.Mode
}

// New creates an Idle session over the given track and progress record.
func New(store *progress.Store, user, track string, topics []string, record progress.Record) *State {
	return &State{
		ID:     uuid.NewString(),
		User:   user,
		Track:  track,
		Topics: topics,
		Record: record,
		store:  store,
	}
}

// LoadRecord loads the user's record for the given topics, degrading a
// storage failure to a fresh all-false record. The error is returned
// alongside so callers can surface a warning.
func LoadRecord(store *progress.Store, topics []string, user string) (progress.Record, error) {
	record, err := store.Load(topics, user)
	if err != nil {
		return progress.NewRecord(topics), err
	}
	return record, nil
}

func (s *State) Phase() Phase        { return s.phase }
func (s *State) Topic() string       { return s.topic }
func (s *State) Explanation() string { return s.explanation }
func (s *State) Example() string     { return s.example }
func (s *State) Quiz() string        { return s.quiz }

// PendingMode reports which content mode is outstanding. Only
// meaningful while a request is in flight.
func (s *State) PendingMode() tutor.Mode { return s.pending }

// Busy reports whether a generation request is outstanding.
func (s *State) Busy() bool { return s.inFlight }

// SelectTopic begins loading an explanation for topic t. The topic must
// exist in the track and not be completed, and no request may be in
// flight; otherwise no state changes.
func (s *State) SelectTopic(t string) error {
	if s.inFlight {
		return ErrRequestInFlight
	}
	done, known := s.Record[t]
	if !known || done {
		return ErrInvalidTopic
	}

	s.topic = t
	s.explanation = ""
	s.example = ""
	s.quiz = ""
	s.phase = ContentLoading
	s.beginRequest(tutor.ModeExplain)
	return nil
}

// Regenerate re-requests the explanation for the current topic,
// discarding any example or quiz text.
func (s *State) Regenerate() error {
	if s.inFlight {
		return ErrRequestInFlight
	}
	if s.phase != ContentReady {
		return fmt.Errorf("cannot regenerate in phase %s", s.phase)
	}

	s.explanation = ""
	s.example = ""
	s.quiz = ""
	s.phase = ContentLoading
	s.beginRequest(tutor.ModeExplain)
	return nil
}

// RequestExample requests example content for the current topic. The
// explanation and quiz are kept.
func (s *State) RequestExample() error {
	return s.requestAttachment(tutor.ModeExample)
}

// RequestQuiz requests quiz content for the current topic. The
// explanation and example are kept.
func (s *State) RequestQuiz() error {
	return s.requestAttachment(tutor.ModeQuiz)
}

func (s *State) requestAttachment(mode tutor.Mode) error {
	if s.inFlight {
		return ErrRequestInFlight
	}
	if s.phase != ContentReady {
		return fmt.Errorf("cannot request %s in phase %s", mode, s.phase)
	}
	s.beginRequest(mode)
	return nil
}

// Received stores the generated text for the outstanding request. A
// result with no matching outstanding request is dropped.
func (s *State) Received(mode tutor.Mode, text string) {
	if !s.inFlight || mode != s.pending {
		return
	}
	s.inFlight = false

	switch mode {
	case tutor.ModeExample:
		s.example = text
	case tutor.ModeQuiz:
		s.quiz = text
	default:
		s.explanation = text
		s.phase = ContentReady
	}
}

// ReceivedError stores the rendered failure AS the requested content,
// so the session keeps flowing and the user can retry in place.
func (s *State) ReceivedError(mode tutor.Mode, err error) {
	s.Received(mode, tutor.FormatError(err))
}

// MarkDone flags the current topic complete and persists the record.
// If the save fails the flag is rolled back and the session is kept so
// the action visibly did not succeed.
func (s *State) MarkDone() error {
	if s.phase != ContentReady {
		return fmt.Errorf("cannot mark done in phase %s", s.phase)
	}

	s.Record[s.topic] = true
	if err := s.store.Save(s.Record, s.User); err != nil {
		s.Record[s.topic] = false
		return err
	}

	s.clear()
	return nil
}

// Next advances to the first incomplete topic after the current one in
// track order. When the current topic is already completed or no
// successor remains, the session goes Idle and ErrNoMoreTopics is
// returned.
func (s *State) Next() (string, error) {
	if s.inFlight {
		return "", ErrRequestInFlight
	}
	if s.phase != ContentReady {
		return "", fmt.Errorf("cannot advance in phase %s", s.phase)
	}

	next, ok := s.successor()
	if !ok {
		s.clear()
		return "", ErrNoMoreTopics
	}

	s.topic = next
	s.explanation = ""
	s.example = ""
	s.quiz = ""
	s.phase = ContentLoading
	s.beginRequest(tutor.ModeExplain)
	return next, nil
}

// successor finds the first incomplete topic strictly after the current
// one. A current topic that is itself completed has left the remaining
// list, so there is nothing to advance from.
func (s *State) successor() (string, bool) {
	if s.Record[s.topic] {
		return "", false
	}
	idx := slices.Index(s.Topics, s.topic)
	if idx < 0 {
		return "", false
	}
	for _, t := range s.Topics[idx+1:] {
		if !s.Record[t] {
			return t, true
		}
	}
	return "", false
}

func (s *State) beginRequest(mode tutor.Mode) {
	s.inFlight = true
	s.pending = mode
}

func (s *State) clear() {
	s.phase = Idle
	s.topic = ""
	s.explanation = ""
	s.example = ""
	s.quiz = ""
	s.inFlight = false
}
