package timer

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"
)

// handleTick processes a one-second countdown tick. The attention-check
// trigger is evaluated before the zero-countdown completion check, so a
// check due on the same tick as completion wins.
func (t *Timer) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != t.tickEpoch {
		// stale tick from a cancelled countdown
		return t, nil
	}

	switch t.state {
	case StateRunning:
		t.remaining--
		t.checkIn--

		if t.checkIn <= 0 {
			return t, tea.Batch(t.enterCheck(), t.tick())
		}

		if t.remaining <= 0 {
			t.cancelTicks()
			t.state = StateCompleted

			return t, t.notify("Time's up", "Did you stay bored?")
		}

		return t, t.tick()

	case StateAttentionCheck:
		// The countdown keeps running during a check, but completion
		// never preempts the pending check outcome.
		t.remaining--

		return t, t.tick()

	default:
		return t, nil
	}
}

// handleCheckTick advances the attention-check response window.
func (t *Timer) handleCheckTick(msg checkTickMsg) (tea.Model, tea.Cmd) {
	if msg.epoch != t.checkEpoch || t.state != StateAttentionCheck {
		return t, nil
	}

	t.checkTicks++

	if t.checkTicks >= maxCheckTicks {
		return t, t.failCheck()
	}

	return t, t.checkTick()
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, defaultKeymap.quit) {
		return t, tea.Batch(tea.ClearScreen, tea.Quit)
	}

	switch t.state {
	case StateIdle:
		switch {
		case key.Matches(msg, defaultKeymap.start):
			return t, t.start()

		case key.Matches(msg, defaultKeymap.durationUp):
			t.adjustDuration(1)

		case key.Matches(msg, defaultKeymap.durationDown):
			t.adjustDuration(-1)

		case key.Matches(msg, defaultKeymap.theme):
			t.toggleTheme()
		}

	case StateAttentionCheck:
		if key.Matches(msg, defaultKeymap.respond) {
			return t, t.respondCheck()
		}

	case StateCompleted:
		switch {
		case key.Matches(msg, defaultKeymap.stayedBored):
			return t, t.confirmCompletion(true)

		case key.Matches(msg, defaultKeymap.gotDistracted):
			return t, t.confirmCompletion(false)
		}

	case StateFailed:
		if key.Matches(msg, defaultKeymap.dismiss) {
			t.dismissFailure()
		}
	}

	// keys have no effect while running
	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return t.handleTick(msg)

	case checkTickMsg:
		return t.handleCheckTick(msg)

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		return t, nil

	// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		progressModel, cmd := t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd

	default:
		slog.Debug(spew.Sdump(msg))

		return t, nil
	}
}
