package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	repo := newTestStore(t).EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		SessionID:    "sess-1",
		User:         "alice",
		Provider:     "openrouter",
		Model:        "deepseek/deepseek-chat-v3-0324:free",
		Purpose:      "explain",
		InputTokens:  120,
		OutputTokens: 300,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  `{"topic":"Pointers"}`,
		ResponseBody: "A pointer holds an address.",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.User != "alice" || e.Purpose != "explain" || !e.Success {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.InputTokens != 120 || e.OutputTokens != 300 {
		t.Fatalf("tokens = %d/%d", e.InputTokens, e.OutputTokens)
	}
	if e.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestEventRepo_QueryNewestFirstWithLimit(t *testing.T) {
	repo := newTestStore(t).EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"explain", "quiz", "example"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: purpose, Success: true,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Purpose != "example" || events[1].Purpose != "quiz" {
		t.Fatalf("unexpected order: %s, %s", events[0].Purpose, events[1].Purpose)
	}
}

func TestEventRepo_QueryByPurpose(t *testing.T) {
	repo := newTestStore(t).EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"explain", "quiz", "explain"} {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: purpose,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "explain"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 explain events, got %d", len(events))
	}
}

func TestEventRepo_GetLLMEvent(t *testing.T) {
	repo := newTestStore(t).EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "explain",
		ErrorMessage: "service error 500: rate limited",
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	e, err := repo.GetLLMEvent(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected event")
	}
	if e.ErrorMessage != "service error 500: rate limited" {
		t.Fatalf("error message = %q", e.ErrorMessage)
	}

	missing, err := repo.GetLLMEvent(ctx, 99)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestEventRepo_UsageAggregation(t *testing.T) {
	repo := newTestStore(t).EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "explain", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Provider: "mock", Model: "m1", Purpose: "explain", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Provider: "mock", Model: "m2", Purpose: "quiz", InputTokens: 5, OutputTokens: 5, LatencyMs: 50},
	}
	for _, r := range rows {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	// Ordered by purpose: explain, quiz.
	explain := byPurpose[0]
	if explain.Purpose != "explain" || explain.Calls != 2 || explain.InputTokens != 40 || explain.OutputTokens != 60 {
		t.Fatalf("unexpected explain usage: %+v", explain)
	}
	if explain.AvgLatencyMs != 200 {
		t.Fatalf("avg latency = %d, want 200", explain.AvgLatencyMs)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}
