// Package streak derives completed-day sets, completion streaks, and summary
// statistics from session history. All functions are pure.
package streak

import (
	"sort"
	"time"

	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/timeutil"
)

// CompletedDays returns the set of local calendar dates (YYYY-MM-DD) on
// which at least one session was completed. Failed and unfinished sessions
// never contribute.
func CompletedDays(sessions []models.Session) map[string]struct{} {
	days := make(map[string]struct{})

	for i := range sessions {
		sess := sessions[i]

		if !sess.Completed || sess.CompletedAt == nil {
			continue
		}

		days[timeutil.DayKey(*sess.CompletedAt)] = struct{}{}
	}

	return days
}

// Recalculate computes the current and longest completion streaks as of
// now. The current streak walks backward one calendar day at a time from
// today, or from yesterday if today has no completion yet (the grace day).
// A completion older than yesterday leaves the current streak at zero.
func Recalculate(sessions []models.Session, now time.Time) (current, longest int) {
	days := CompletedDays(sessions)
	if len(days) == 0 {
		return 0, 0
	}

	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}

	sort.Strings(sorted)

	longest = 1

	run := 1

	for i := 1; i < len(sorted); i++ {
		prev, _ := time.ParseInLocation(timeutil.DayLayout, sorted[i-1], now.Location())

		if timeutil.DayKey(timeutil.NextDay(prev)) == sorted[i] {
			run++
		} else {
			run = 1
		}

		if run > longest {
			longest = run
		}
	}

	day := timeutil.RoundToStart(now)

	if _, ok := days[timeutil.DayKey(day)]; !ok {
		day = timeutil.PrevDay(day)
		if _, ok := days[timeutil.DayKey(day)]; !ok {
			return 0, longest
		}
	}

	for {
		if _, ok := days[timeutil.DayKey(day)]; !ok {
			break
		}

		current++

		day = timeutil.PrevDay(day)
	}

	return current, longest
}

// ComputeStats summarises the session history, including both streak values
// as of now.
func ComputeStats(sessions []models.Session, now time.Time) models.Stats {
	var s models.Stats

	s.TotalSessions = len(sessions)

	var responded int

	for i := range sessions {
		sess := sessions[i]

		responded += sess.AttentionChecksResponded

		if sess.Completed {
			s.CompletedSessions++
			s.TotalMinutes += sess.Duration
		}

		if sess.FailedAttentionCheck {
			s.FailedSessions++
		}
	}

	if responded == 0 {
		s.AttentionCheckSuccessRate = 1
	} else {
		s.AttentionCheckSuccessRate = float64(responded-s.FailedSessions) / float64(responded)
	}

	s.CurrentStreak, s.LongestStreak = Recalculate(sessions, now)

	return s
}
