package tutor

// Mode selects the kind of content generated for a topic.
type Mode int

const (
	ModeExplain Mode = iota
	ModeQuiz
	ModeExample
)

func (m Mode) String() string {
	switch m {
	case ModeQuiz:
		return "quiz"
	case ModeExample:
		return "example"
	default:
		return "explain"
	}
}
