package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ritwikg/ctutor/internal/llm"
)

const defaultMaxTokens = 1024

// Service generates tutoring content for curriculum topics.
type Service struct {
	provider  llm.Provider
	maxTokens int
	timeout   time.Duration
}

// NewService creates a Service backed by the given provider. A
// non-zero timeout bounds each generation request.
func NewService(provider llm.Provider, timeout time.Duration) *Service {
	return &Service{provider: provider, maxTokens: defaultMaxTokens, timeout: timeout}
}

// quizOutput is the raw quiz response before rendering.
type quizOutput struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Generate produces content for the given topic and mode. Quiz responses
// are parsed from the structured output and rendered to display text;
// explain and example responses are returned as-is.
func (s *Service) Generate(ctx context.Context, topic string, mode Mode) (string, error) {
	ctx = llm.WithPurpose(ctx, mode.String())
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, buildRequest(topic, mode, s.maxTokens))
	if err != nil {
		return "", fmt.Errorf("generate %s for %q: %w", mode, topic, err)
	}

	if mode != ModeQuiz {
		return strings.TrimSpace(string(resp.Content)), nil
	}

	var quiz quizOutput
	if err := json.Unmarshal(resp.Content, &quiz); err != nil {
		return "", fmt.Errorf("parse quiz response: %w", err)
	}
	return renderQuiz(quiz), nil
}

// renderQuiz formats a parsed quiz as display text with lettered options.
func renderQuiz(q quizOutput) string {
	var b strings.Builder
	b.WriteString(q.Question)
	b.WriteString("\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n%c) %s", 'A'+i, opt)
	}
	fmt.Fprintf(&b, "\n\nAnswer: %s", q.Answer)
	if q.Explanation != "" {
		fmt.Fprintf(&b, "\n%s", q.Explanation)
	}
	return b.String()
}

// FormatError renders a generation failure for display. Service errors
// keep the upstream status code and body verbatim.
func FormatError(err error) string {
	if status, body, ok := llm.ServiceStatus(err); ok {
		return fmt.Sprintf("❌ Error %d: %s", status, body)
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
