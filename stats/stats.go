// Package stats reports boredom session statistics
package stats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/getbored/bored/config"
	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/streak"
	"github.com/getbored/bored/internal/timeutil"
	"github.com/getbored/bored/internal/ui"
	"github.com/getbored/bored/store"
)

var (
	opts *config.StatsConfig
	db   store.DB
)

const noSessionsMsg = "No sessions found for the specified time range"

const recentSessionLimit = 10

// filterSessions restricts the history to sessions started at or after the
// reporting start time. A zero start time reports over everything.
func filterSessions(sessions []models.Session, since time.Time) []models.Session {
	if since.IsZero() {
		return sessions
	}

	filtered := make([]models.Session, 0, len(sessions))

	for i := range sessions {
		if sessions[i].StartTime.Before(since) {
			continue
		}

		filtered = append(filtered, sessions[i])
	}

	return filtered
}

// getSummary renders the headline numbers for the reporting period.
func getSummary(totals models.Stats) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s\n", ui.Blue("Summary")))
	builder.WriteString(
		fmt.Sprintln("Sessions started:", ui.Green(totals.TotalSessions)),
	)
	builder.WriteString(
		fmt.Sprintln("Sessions completed:", ui.Green(totals.CompletedSessions)),
	)
	builder.WriteString(
		fmt.Sprintln("Attention-check failures:", ui.Red(totals.FailedSessions)),
	)
	builder.WriteString(
		fmt.Sprintln("Minutes of boredom:", ui.Green(totals.TotalMinutes)),
	)
	builder.WriteString(fmt.Sprintln(
		"Attention-check success rate:",
		ui.Green(fmt.Sprintf("%.0f%%", totals.AttentionCheckSuccessRate*100)),
	))

	return builder.String()
}

func getStreaks(totals models.Stats) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Streaks")))
	builder.WriteString(fmt.Sprintln("Current:", ui.Green(totals.CurrentStreak)))
	builder.WriteString(fmt.Sprintln("Longest:", ui.Green(totals.LongestStreak)))

	return builder.String()
}

// getCalendar renders the current month with completed days highlighted.
func getCalendar(days map[string]struct{}, now time.Time) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf(
		"\n%s\n",
		ui.Blue(now.Format("January 2006")),
	))

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	builder.WriteString(strings.Repeat("   ", int(first.Weekday())))

	for d := first; d.Month() == now.Month(); d = d.AddDate(0, 0, 1) {
		label := fmt.Sprintf("%2d", d.Day())

		if _, ok := days[timeutil.DayKey(d)]; ok {
			label = ui.Green(label)
		} else if d.After(now) {
			label = ui.Highlight(label)
		}

		builder.WriteString(label + " ")

		if d.Weekday() == time.Saturday {
			builder.WriteString("\n")
		}
	}

	builder.WriteString("\n")

	return builder.String()
}

// getWeekdayChart renders a bar chart of completed sessions per weekday.
func getWeekdayChart(sessions []models.Session) string {
	counts := make(map[time.Weekday]int)

	for i := range sessions {
		sess := sessions[i]

		if !sess.Completed || sess.CompletedAt == nil {
			continue
		}

		counts[sess.CompletedAt.Weekday()]++
	}

	if len(counts) == 0 {
		return ""
	}

	var bars pterm.Bars

	for day := time.Sunday; day <= time.Saturday; day++ {
		bars = append(bars, pterm.Bar{
			Value: counts[day],
			Label: day.String(),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter("▇").
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return ui.Blue("\nCompleted sessions by weekday") + chart
}

// recentSessions renders the most recent sessions as a table.
func recentSessions(sessions []models.Session) string {
	if len(sessions) == 0 {
		return ""
	}

	start := len(sessions) - recentSessionLimit
	if start < 0 {
		start = 0
	}

	recent := sessions[start:]

	tableBody := make([][]string, 0, len(recent)+1)
	tableBody = append(tableBody, []string{"STARTED", "MINUTES", "OUTCOME", "CHECKS"})

	for i := len(recent) - 1; i >= 0; i-- {
		sess := recent[i]

		outcome := "abandoned"
		if sess.Completed {
			outcome = "completed"
		} else if sess.FailedAttentionCheck {
			outcome = "failed check"
		}

		tableBody = append(tableBody, []string{
			sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
			fmt.Sprintf("%d", sess.Duration),
			outcome,
			fmt.Sprintf("%d", sess.AttentionChecksResponded),
		})
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Recent sessions")))

	ui.PrintTable(tableBody, &builder)

	return builder.String()
}

// Show displays the relevant statistics for the set time period after
// making the necessary calculations.
func Show() error {
	defer db.Close()

	data, err := db.Load()
	if err != nil {
		return err
	}

	now := time.Now()

	sessions := filterSessions(data.Sessions, opts.StartTime)

	totals := streak.ComputeStats(sessions, now)

	if opts.JSON {
		b, err := json.Marshal(totals)
		if err != nil {
			return err
		}

		fmt.Fprintln(opts.Stdout, string(b))

		return nil
	}

	if len(sessions) == 0 {
		fmt.Fprintln(opts.Stdout, noSessionsMsg)

		return nil
	}

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", reportingPeriod(opts.StartTime, now))

	output := fmt.Sprint(
		header,
		getSummary(totals),
		getStreaks(totals),
		getCalendar(streak.CompletedDays(sessions), now),
		getWeekdayChart(sessions),
		recentSessions(sessions),
	)

	fmt.Fprintln(opts.Stdout, strings.TrimSpace(output))

	return nil
}

func reportingPeriod(start, end time.Time) string {
	if start.IsZero() {
		return "Reporting period: all time"
	}

	return "Reporting period: " + start.Format("January 02, 2006") +
		" - " + end.Format("January 02, 2006")
}

func Init(dbClient store.DB, cfg *config.StatsConfig) {
	db = dbClient
	opts = cfg
}
