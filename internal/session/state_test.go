package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ritwikg/ctutor/internal/llm"
	"github.com/ritwikg/ctutor/internal/progress"
	"github.com/ritwikg/ctutor/internal/tutor"
)

func newTestState(t *testing.T, topics []string) (*State, *progress.Store) {
	t.Helper()
	store := progress.NewStore(t.TempDir())
	record, err := store.Load(topics, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return New(store, "alice", "Core C Roadmap", topics, record), store
}

func TestSelectTopic_IssuesExplainRequest(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B"})

	if err := st.SelectTopic("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Phase() != ContentLoading {
		t.Fatalf("phase = %v, want ContentLoading", st.Phase())
	}
	if !st.Busy() || st.PendingMode() != tutor.ModeExplain {
		t.Fatal("expected an explain request in flight")
	}

	st.Received(tutor.ModeExplain, "A is the first topic.")
	if st.Phase() != ContentReady {
		t.Fatalf("phase = %v, want ContentReady", st.Phase())
	}
	if st.Explanation() != "A is the first topic." {
		t.Fatalf("explanation = %q", st.Explanation())
	}
}

func TestSelectTopic_CompletedOrUnknownRejected(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B"})
	st.Record["A"] = true

	if err := st.SelectTopic("A"); !errors.Is(err, ErrInvalidTopic) {
		t.Fatalf("completed topic: err = %v, want ErrInvalidTopic", err)
	}
	if err := st.SelectTopic("Z"); !errors.Is(err, ErrInvalidTopic) {
		t.Fatalf("unknown topic: err = %v, want ErrInvalidTopic", err)
	}
	if st.Phase() != Idle || st.Busy() {
		t.Fatal("rejected selection must not change state")
	}
}

func TestDuplicateTriggersIgnoredWhileLoading(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B"})

	if err := st.SelectTopic("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.SelectTopic("B"); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("err = %v, want ErrRequestInFlight", err)
	}
	if err := st.Regenerate(); !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("err = %v, want ErrRequestInFlight", err)
	}
	if st.Topic() != "A" {
		t.Fatalf("topic = %q, want A", st.Topic())
	}
}

func TestReceivedError_StoredAsExplanation(t *testing.T) {
	st, _ := newTestState(t, []string{"X"})

	if err := st.SelectTopic("X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.ReceivedError(tutor.ModeExplain, &llm.ErrService{Status: 500, Body: "rate limited"})

	if st.Phase() != ContentReady {
		t.Fatalf("phase = %v, want ContentReady", st.Phase())
	}
	if st.Explanation() != "❌ Error 500: rate limited" {
		t.Fatalf("explanation = %q", st.Explanation())
	}
}

func TestRegenerate_DiscardsAttachments(t *testing.T) {
	st, _ := newTestState(t, []string{"A"})

	mustSelect(t, st, "A", "first explanation")

	if err := st.RequestExample(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Received(tutor.ModeExample, "an example")
	if err := st.RequestQuiz(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Received(tutor.ModeQuiz, "a quiz")

	if st.Explanation() != "first explanation" || st.Example() != "an example" || st.Quiz() != "a quiz" {
		t.Fatal("attachments must not discard other content")
	}
	if st.Phase() != ContentReady {
		t.Fatalf("phase = %v, want ContentReady", st.Phase())
	}

	if err := st.Regenerate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Example() != "" || st.Quiz() != "" {
		t.Fatal("regenerate must discard example and quiz")
	}
	st.Received(tutor.ModeExplain, "second explanation")
	if st.Explanation() != "second explanation" {
		t.Fatalf("explanation = %q", st.Explanation())
	}
}

func TestMarkDone_PersistsAndClears(t *testing.T) {
	topics := []string{"A", "B"}
	st, store := newTestState(t, topics)

	mustSelect(t, st, "A", "text")
	if err := st.MarkDone(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Phase() != Idle || st.Topic() != "" {
		t.Fatal("mark done must clear the session")
	}
	if st.Record.Percent() != 50 {
		t.Fatalf("percent = %d, want 50", st.Record.Percent())
	}

	reloaded, err := store.Load(topics, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reloaded["A"] || reloaded["B"] {
		t.Fatalf("persisted record = %v", reloaded)
	}
}

func TestMarkDone_FailedSaveKeepsSession(t *testing.T) {
	// Point the store at a path that is a file, so MkdirAll fails.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := progress.NewStore(blocked)

	topics := []string{"A"}
	st := New(store, "alice", "Core C Roadmap", topics, progress.NewRecord(topics))
	mustSelect(t, st, "A", "text")

	err := st.MarkDone()
	var storageErr *progress.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("err = %v, want *progress.StorageError", err)
	}
	if st.Phase() != ContentReady || st.Topic() != "A" {
		t.Fatal("failed save must keep the session")
	}
	if st.Record["A"] {
		t.Fatal("failed save must roll back the completion flag")
	}
}

func TestNext_AdvancesToSuccessor(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B", "C"})
	st.Record["B"] = true

	mustSelect(t, st, "A", "text")
	next, err := st.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != "C" {
		t.Fatalf("next = %q, want C", next)
	}
	if st.Phase() != ContentLoading || st.Topic() != "C" {
		t.Fatal("next must start loading the successor")
	}
	if st.Explanation() != "" {
		t.Fatal("next must clear prior content")
	}
}

func TestNext_NoSuccessorGoesIdle(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B"})
	st.Record["B"] = true

	mustSelect(t, st, "A", "text")
	_, err := st.Next()
	if !errors.Is(err, ErrNoMoreTopics) {
		t.Fatalf("err = %v, want ErrNoMoreTopics", err)
	}
	if st.Phase() != Idle {
		t.Fatalf("phase = %v, want Idle", st.Phase())
	}
}

func TestNext_CompletedCurrentGoesIdle(t *testing.T) {
	st, _ := newTestState(t, []string{"A", "B"})

	mustSelect(t, st, "A", "text")
	// The current topic left the remaining list out of band.
	st.Record["A"] = true

	_, err := st.Next()
	if !errors.Is(err, ErrNoMoreTopics) {
		t.Fatalf("err = %v, want ErrNoMoreTopics", err)
	}
	if st.Phase() != Idle {
		t.Fatalf("phase = %v, want Idle", st.Phase())
	}
}

func TestReceived_StaleResultDropped(t *testing.T) {
	st, _ := newTestState(t, []string{"A"})

	if err := st.SelectTopic("A"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st.Received(tutor.ModeQuiz, "stale quiz")
	if st.Quiz() != "" || st.Phase() != ContentLoading {
		t.Fatal("mismatched result must be dropped")
	}

	st.Received(tutor.ModeExplain, "text")
	st.Received(tutor.ModeExplain, "late duplicate")
	if st.Explanation() != "text" {
		t.Fatalf("explanation = %q, want %q", st.Explanation(), "text")
	}
}

func TestLoadRecord_DegradesOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := progress.NewStore(dir)
	topics := []string{"A", "B"}
	if err := os.WriteFile(filepath.Join(dir, "alice_progress.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	record, err := LoadRecord(store, topics, "alice")
	if err == nil {
		t.Fatal("expected the load error to be surfaced")
	}
	if len(record) != 2 || record["A"] || record["B"] {
		t.Fatalf("record = %v, want all-false over topics", record)
	}
}

func mustSelect(t *testing.T, st *State, topic, text string) {
	t.Helper()
	if err := st.SelectTopic(topic); err != nil {
		t.Fatalf("select %q: %v", topic, err)
	}
	st.Received(tutor.ModeExplain, text)
}
