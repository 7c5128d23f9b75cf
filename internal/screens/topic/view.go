package topic

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ritwikg/ctutor/internal/session"
	"github.com/ritwikg/ctutor/internal/ui/theme"
)

func (t *TopicScreen) View(width, height int) string {
	if t.state.Busy() {
		return t.renderLoading(width)
	}

	switch t.state.Phase() {
	case session.ContentReady:
		return t.renderContent(width, height)
	default:
		return t.renderIdle(width)
	}
}

func (t *TopicScreen) renderLoading(width int) string {
	frame := spinnerFrames[t.spinFrame]
	label := "Generating explanation..."
	switch t.state.PendingMode().String() {
	case "example":
		label = "Generating example..."
	case "quiz":
		label = "Generating quiz..."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  %s %s", frame, label))
}

func (t *TopicScreen) renderIdle(width int) string {
	msg := t.notice
	if msg == "" {
		msg = "Nothing selected."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press Esc to go back.", msg))
}

func (t *TopicScreen) renderContent(width, height int) string {
	var sections []string

	body := lipgloss.NewStyle().Width(width - 4).Foreground(theme.Text)

	sections = append(sections, body.Render(t.state.Explanation()))

	if ex := t.state.Example(); ex != "" {
		sections = append(sections,
			theme.Selected.Render("Example"),
			body.Render(ex))
	}
	if quiz := t.state.Quiz(); quiz != "" {
		sections = append(sections,
			theme.Selected.Render("Quiz"),
			body.Render(quiz))
	}

	content := strings.Join(sections, "\n\n")
	lines := strings.Split(content, "\n")

	// Reserve a line for the notice.
	visible := height - 2
	if visible < 1 {
		visible = 1
	}

	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll > maxScroll {
		t.scroll = maxScroll
	}

	end := t.scroll + visible
	if end > len(lines) {
		end = len(lines)
	}
	view := strings.Join(lines[t.scroll:end], "\n")

	if t.notice != "" {
		style := theme.Hint
		if t.noticeIsErr {
			style = theme.ErrorText
		}
		view += "\n\n" + style.Render("  "+t.notice)
	} else if maxScroll > 0 {
		view += "\n\n" + theme.Hint.Render(fmt.Sprintf("  ↑↓ scroll (%d/%d)", t.scroll+1, maxScroll+1))
	}

	return lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(view)
}
