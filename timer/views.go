package timer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/getbored/bored/internal/timeutil"
)

const (
	padding  = 2
	maxWidth = 60
)

type styles struct {
	base      lipgloss.Style
	title     lipgloss.Style
	countdown lipgloss.Style
	hint      lipgloss.Style
	accent    lipgloss.Style
	danger    lipgloss.Style
}

func newStyles(dark bool) styles {
	text := lipgloss.Color("#1a1a1a")
	hint := lipgloss.Color("#6b6b6b")
	accent := lipgloss.Color("#005f87")

	if dark {
		text = lipgloss.Color("#e4e4e4")
		hint = lipgloss.Color("#8a8a8a")
		accent = lipgloss.Color("#5fd7ff")
	}

	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		title:     lipgloss.NewStyle().Foreground(text).Bold(true),
		countdown: lipgloss.NewStyle().Foreground(text).Bold(true),
		hint:      lipgloss.NewStyle().Foreground(hint),
		accent:    lipgloss.NewStyle().Foreground(accent),
		danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("#d70000")).Bold(true),
	}
}

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func (t *Timer) formatTimeRemaining() string {
	m, s := timeutil.SecsToMinsAndSecs(t.remaining)

	return fmt.Sprintf("%02d:%02d", m, s)
}

func (t *Timer) idleView() string {
	var s strings.Builder

	s.WriteString(t.styles.title.Render("Ready to be bored?"))
	s.WriteString("\n\n")
	s.WriteString(t.styles.countdown.Render(t.formatTimeRemaining()))
	s.WriteString("\n")
	s.WriteString(t.styles.hint.Render(
		fmt.Sprintf("%d minute session", t.durationMinutes),
	))

	if t.currentStreak > 0 {
		s.WriteString("\n\n")
		s.WriteString(t.styles.accent.Render(
			fmt.Sprintf("current streak: %d %s", t.currentStreak, pluralDay(t.currentStreak)),
		))
	}

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.start,
		defaultKeymap.durationUp,
		defaultKeymap.theme,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) runningView() string {
	var s strings.Builder

	total := t.durationMinutes * 60
	percent := float64(total-t.remaining) / float64(total)

	s.WriteString(t.styles.countdown.Render(t.formatTimeRemaining()))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(percent))
	s.WriteString("\n\n")
	s.WriteString(t.styles.hint.Render("stay bored. do nothing."))

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) attentionCheckView() string {
	var s strings.Builder

	s.WriteString(t.styles.title.Render("Still bored?"))
	s.WriteString("\n\n")
	s.WriteString(t.progress.ViewAs(t.CheckProgress() / 100))
	s.WriteString("\n\n")
	s.WriteString(t.styles.hint.Render("press space before the bar runs out"))

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.respond,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (t *Timer) completedView() string {
	var s strings.Builder

	s.WriteString(t.styles.title.Render("Time's up!"))
	s.WriteString("\n\n")
	s.WriteString("Did you stay bored the whole time?")

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.stayedBored,
		defaultKeymap.gotDistracted,
	}))

	return s.String()
}

func (t *Timer) failedView() string {
	var s strings.Builder

	s.WriteString(t.styles.danger.Render("Session failed"))
	s.WriteString("\n\n")
	s.WriteString("You missed an attention check.")

	if t.responded > 0 {
		s.WriteString(t.styles.hint.Render(
			fmt.Sprintf("\n%d checks answered before this one", t.responded),
		))
	}

	s.WriteString("\n\n" + t.help.ShortHelpView([]key.Binding{
		defaultKeymap.dismiss,
		defaultKeymap.quit,
	}))

	return s.String()
}

func pluralDay(n int) string {
	if n == 1 {
		return "day"
	}

	return "days"
}

func (t *Timer) View() string {
	var view string

	switch t.state {
	case StateIdle:
		view = t.idleView()
	case StateRunning:
		view = t.runningView()
	case StateAttentionCheck:
		view = t.attentionCheckView()
	case StateCompleted:
		view = t.completedView()
	case StateFailed:
		view = t.failedView()
	}

	if t.err != nil {
		view += "\n\n" + t.styles.danger.Render(t.err.Error())
	}

	return t.styles.base.Render(view)
}
