package tutor

import "github.com/ritwikg/ctutor/internal/llm"

const systemPrompt = "You are a helpful C programming tutor."

// instructions are the per-mode prefixes prepended to the topic name.
var instructions = map[Mode]string{
	ModeExplain: "Explain the C programming concept clearly with code examples.",
	ModeQuiz:    "Create a multiple choice quiz (3-4 options) with correct answer for:",
	ModeExample: "Give a real-world example with code and explanation for:",
}

// buildRequest assembles the completion request for a topic and mode.
// Quiz requests carry a JSON schema so the response can be parsed and
// rendered; the other modes are free text.
func buildRequest(topic string, mode Mode, maxTokens int) llm.Request {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: instructions[mode] + " " + topic},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}
	if mode == ModeQuiz {
		req.Schema = quizSchema()
	}
	return req
}
