package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ritwikg/ctutor/internal/llm"
)

func TestService_Explain(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("A pointer holds the address of another variable.\n")},
	)
	s := NewService(mock, 0)

	got, err := s.Generate(context.Background(), "Pointers", ModeExplain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A pointer holds the address of another variable." {
		t.Fatalf("unexpected content: %q", got)
	}

	call := mock.Calls[0]
	if call.System != "You are a helpful C programming tutor." {
		t.Errorf("system = %q", call.System)
	}
	want := "Explain the C programming concept clearly with code examples. Pointers"
	if call.Messages[0].Content != want {
		t.Errorf("user message = %q, want %q", call.Messages[0].Content, want)
	}
	if call.Schema != nil {
		t.Error("explain request should not carry a schema")
	}
}

func TestService_Example(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("A linked list node uses malloc.")},
	)
	s := NewService(mock, 0)

	_, err := s.Generate(context.Background(), "Dynamic Memory (malloc, free)", ModeExample)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Give a real-world example with code and explanation for: Dynamic Memory (malloc, free)"
	if got := mock.Calls[0].Messages[0].Content; got != want {
		t.Errorf("user message = %q, want %q", got, want)
	}
}

func TestService_Quiz(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{
			"question": "What does malloc return on failure?",
			"options": ["0", "NULL", "-1", "errno"],
			"answer": "NULL",
			"explanation": "malloc returns NULL when allocation fails."
		}`)},
	)
	s := NewService(mock, 0)

	got, err := s.Generate(context.Background(), "Dynamic Memory (malloc, free)", ModeQuiz)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"What does malloc return on failure?",
		"A) 0",
		"B) NULL",
		"C) -1",
		"D) errno",
		"Answer: NULL",
		"malloc returns NULL when allocation fails.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered quiz missing %q:\n%s", want, got)
		}
	}

	if mock.Calls[0].Schema == nil {
		t.Fatal("quiz request should carry a schema")
	}
	if mock.Calls[0].Schema.Name != "c-quiz" {
		t.Errorf("schema name = %q", mock.Calls[0].Schema.Name)
	}
}

func TestService_QuizParseError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`not json`)},
	)
	s := NewService(mock, 0)

	_, err := s.Generate(context.Background(), "Pointers", ModeQuiz)
	if err == nil {
		t.Fatal("expected error for unparseable quiz")
	}
}

func TestService_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{
			Err: &llm.ErrService{Status: 500, Body: "rate limited"},
		}},
	)
	s := NewService(mock, 0)

	_, err := s.Generate(context.Background(), "Pointers", ModeExplain)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := FormatError(err); got != "❌ Error 500: rate limited" {
		t.Fatalf("FormatError = %q", got)
	}
}

func TestFormatError_NoStatus(t *testing.T) {
	got := FormatError(errors.New("connection refused"))
	if got != "❌ Error: connection refused" {
		t.Fatalf("FormatError = %q", got)
	}
}
