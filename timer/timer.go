// Package timer drives a boredom session from start through randomized
// attention checks to a terminal disposition, and records the outcome.
package timer

import (
	"log/slog"
	"math/rand/v2"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/getbored/bored/config"
	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/streak"
	"github.com/getbored/bored/internal/ui"
	"github.com/getbored/bored/store"
)

// State is the session state machine tag.
type State string

const (
	StateIdle           State = "idle"
	StateRunning        State = "running"
	StateAttentionCheck State = "attention-check"
	StateCompleted      State = "completed"
	StateFailed         State = "failed"
)

const (
	// The attention-check response window. The check tick count is the
	// authoritative deadline; the displayed progress is derived from it.
	checkWindow       = 10 * time.Second
	checkTickInterval = 100 * time.Millisecond
	maxCheckTicks     = int(checkWindow / checkTickInterval)

	// Attention checks are spaced a uniformly random number of countdown
	// seconds apart.
	minCheckInterval = 30
	maxCheckInterval = 120
)

type tickMsg struct {
	epoch int
}

type checkTickMsg struct {
	epoch int
}

type keymap struct {
	start         key.Binding
	respond       key.Binding
	stayedBored   key.Binding
	gotDistracted key.Binding
	dismiss       key.Binding
	durationUp    key.Binding
	durationDown  key.Binding
	theme         key.Binding
	quit          key.Binding
}

var defaultKeymap = keymap{
	start: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "start"),
	),
	respond: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "still here"),
	),
	stayedBored: key.NewBinding(
		key.WithKeys("enter", "y"),
		key.WithHelp("enter", "stayed bored"),
	),
	gotDistracted: key.NewBinding(
		key.WithKeys("d", "n"),
		key.WithHelp("d", "got distracted"),
	),
	dismiss: key.NewBinding(
		key.WithKeys("enter", "esc"),
		key.WithHelp("enter", "dismiss"),
	),
	durationUp: key.NewBinding(
		key.WithKeys("up", "k", "+"),
		key.WithHelp("↑/↓", "adjust duration"),
	),
	durationDown: key.NewBinding(
		key.WithKeys("down", "j", "-"),
		key.WithHelp("", ""),
	),
	theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Timer is the bubbletea model for the session state machine.
type Timer struct {
	db   store.DB
	Opts *config.TimerConfig

	state           State
	durationMinutes int
	remaining       int // seconds left on the main countdown
	checkIn         int // seconds until the next attention check
	checkTicks      int // check ticks elapsed in the active response window
	responded       int
	sessionStart    time.Time

	// Each family of scheduled ticks carries the epoch it was started
	// under; a tick whose epoch no longer matches is stale and dropped.
	// Bumping an epoch is therefore an idempotent cancellation.
	tickEpoch  int
	checkEpoch int

	completedDays map[string]struct{}
	currentStreak int

	// randInt draws a uniform random integer in [min, max]. Injected so
	// tests can supply deterministic sequences.
	randInt func(min, max int) int

	styles   styles
	progress progress.Model
	help     help.Model
	err      error
}

// State returns the current state tag.
func (t *Timer) State() State {
	return t.state
}

// Remaining returns the seconds left on the main countdown.
func (t *Timer) Remaining() int {
	return t.remaining
}

// CheckProgress returns the attention-check window progress in [0, 100],
// decaying linearly from 100 to 0 over the response window.
func (t *Timer) CheckProgress() float64 {
	p := 100 * (1 - float64(t.checkTicks)/float64(maxCheckTicks))
	if p < 0 {
		p = 0
	}

	return p
}

// CompletedDays returns the set of local dates with a completed session.
func (t *Timer) CompletedDays() map[string]struct{} {
	return t.completedDays
}

// CurrentStreak returns the streak as of the last recorded session.
func (t *Timer) CurrentStreak() int {
	return t.currentStreak
}

func (t *Timer) Init() tea.Cmd {
	return nil
}

// tick schedules the next one-second countdown tick under the current
// epoch.
func (t *Timer) tick() tea.Cmd {
	epoch := t.tickEpoch

	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{epoch: epoch}
	})
}

// checkTick schedules the next attention-check window tick under the
// current check epoch.
func (t *Timer) checkTick() tea.Cmd {
	epoch := t.checkEpoch

	return tea.Tick(checkTickInterval, func(time.Time) tea.Msg {
		return checkTickMsg{epoch: epoch}
	})
}

// cancelTicks invalidates every outstanding tick from both families.
func (t *Timer) cancelTicks() {
	t.tickEpoch++
	t.checkEpoch++
}

// start begins a new session: idle -> running.
func (t *Timer) start() tea.Cmd {
	t.state = StateRunning
	t.sessionStart = time.Now()
	t.responded = 0
	t.remaining = t.durationMinutes * 60
	t.checkIn = t.randInt(minCheckInterval, maxCheckInterval)
	t.err = nil

	return t.tick()
}

// enterCheck opens an attention-check response window: running ->
// attention-check. The main countdown keeps ticking underneath it.
func (t *Timer) enterCheck() tea.Cmd {
	t.state = StateAttentionCheck
	t.checkEpoch++
	t.checkTicks = 0

	return tea.Batch(
		t.checkTick(),
		t.notify("Still bored?", "Respond now to keep your session alive"),
	)
}

// respondCheck acknowledges an attention check in time: attention-check ->
// running. A fresh random interval is drawn for the next check.
func (t *Timer) respondCheck() tea.Cmd {
	t.responded++
	t.checkEpoch++
	t.state = StateRunning
	t.checkIn = t.randInt(minCheckInterval, maxCheckInterval)

	return nil
}

// failCheck handles an expired response window: attention-check -> failed.
// The session record is persisted immediately.
func (t *Timer) failCheck() tea.Cmd {
	t.cancelTicks()
	t.state = StateFailed

	t.persist(&models.Session{
		ID:                       uuid.NewString(),
		StartTime:                t.sessionStart,
		Duration:                 t.durationMinutes,
		FailedAttentionCheck:     true,
		AttentionChecksResponded: t.responded,
	})

	return tea.Batch(
		t.notify("Session failed", "You missed an attention check"),
		t.runSessionCmd(),
	)
}

// confirmCompletion records the user's answer to the completion prompt:
// completed -> idle.
func (t *Timer) confirmCompletion(stayedBored bool) tea.Cmd {
	sess := &models.Session{
		ID:                       uuid.NewString(),
		StartTime:                t.sessionStart,
		Duration:                 t.durationMinutes,
		AttentionChecksResponded: t.responded,
	}

	if stayedBored {
		now := time.Now()
		sess.Completed = true
		sess.CompletedAt = &now
	}

	t.persist(sess)

	t.state = StateIdle
	t.remaining = t.durationMinutes * 60

	return t.runSessionCmd()
}

// dismissFailure acknowledges the failure message: failed -> idle. The
// session was already persisted when the check expired.
func (t *Timer) dismissFailure() {
	t.state = StateIdle
	t.remaining = t.durationMinutes * 60
}

// persist records a terminal session and refreshes the derived views.
func (t *Timer) persist(sess *models.Session) {
	data, err := t.db.RecordSession(sess)
	if err != nil {
		slog.Error("unable to record session", slog.Any("error", err))

		t.err = err

		return
	}

	t.completedDays = streak.CompletedDays(data.Sessions)
	t.currentStreak = data.CurrentStreak
}

// adjustDuration changes the configured session length while idle. The
// result is clamped to [1, 60] minutes and persisted as the default for
// the next session.
func (t *Timer) adjustDuration(delta int) {
	if t.state != StateIdle {
		return
	}

	minutes := t.durationMinutes + delta
	if minutes < store.MinDuration {
		minutes = store.MinDuration
	}

	if minutes > store.MaxDuration {
		minutes = store.MaxDuration
	}

	t.durationMinutes = minutes
	t.remaining = minutes * 60

	if err := t.db.SetLastDuration(minutes); err != nil {
		slog.Error("unable to save duration", slog.Any("error", err))
	}
}

// toggleTheme flips and persists the display theme.
func (t *Timer) toggleTheme() {
	theme := models.ThemeDark
	if t.Opts.DarkTheme {
		theme = models.ThemeLight
	}

	t.Opts.DarkTheme = theme == models.ThemeDark
	ui.DarkTheme = t.Opts.DarkTheme
	t.styles = newStyles(t.Opts.DarkTheme)

	if err := t.db.SetTheme(theme); err != nil {
		slog.Error("unable to save theme", slog.Any("error", err))
	}
}

// notify sends a desktop notification if notifications are enabled.
func (t *Timer) notify(title, msg string) tea.Cmd {
	if !t.Opts.Notify {
		return nil
	}

	return func() tea.Msg {
		if err := beeep.Notify(title, msg, ""); err != nil {
			slog.Error("unable to display notification", slog.Any("error", err))
		}

		return nil
	}
}

// runSessionCmd executes the configured command after a session reaches a
// terminal state.
func (t *Timer) runSessionCmd() tea.Cmd {
	sessionCmd := t.Opts.SessionCmd
	if sessionCmd == "" {
		return nil
	}

	return func() tea.Msg {
		cmdSlice, err := shellquote.Split(sessionCmd)
		if err != nil {
			slog.Error("unable to parse session_cmd", slog.Any("error", err))
			return nil
		}

		if len(cmdSlice) == 0 {
			return nil
		}

		cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

		if err := cmd.Run(); err != nil {
			slog.Error("session_cmd failed", slog.Any("error", err))
		}

		return nil
	}
}

// New creates a timer in the idle state. The session length defaults to
// the one most recently chosen, and the stored theme preference overrides
// the config file.
func New(db store.DB, cfg *config.TimerConfig) (*Timer, error) {
	minutes, err := db.LastDuration()
	if err != nil {
		return nil, err
	}

	if cfg.DurationSet {
		minutes = cfg.DurationMinutes
	}

	theme, err := db.Theme()
	if err != nil {
		return nil, err
	}

	if theme != "" {
		cfg.DarkTheme = theme == models.ThemeDark
	}

	ui.DarkTheme = cfg.DarkTheme

	data, err := db.Load()
	if err != nil {
		return nil, err
	}

	t := &Timer{
		db:              db,
		Opts:            cfg,
		state:           StateIdle,
		durationMinutes: minutes,
		remaining:       minutes * 60,
		completedDays:   streak.CompletedDays(data.Sessions),
		currentStreak:   data.CurrentStreak,
		randInt: func(min, max int) int {
			return min + rand.IntN(max-min+1)
		},
		styles:   newStyles(cfg.DarkTheme),
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}

	return t, nil
}
