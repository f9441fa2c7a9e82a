package streak_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/streak"
	"github.com/getbored/bored/internal/timeutil"
)

// completedOn builds a session completed in the afternoon of the given
// local date (YYYY-MM-DD).
func completedOn(t *testing.T, day string) models.Session {
	t.Helper()

	d, err := time.ParseInLocation(timeutil.DayLayout, day, time.Local)
	if err != nil {
		t.Fatal(err)
	}

	completedAt := d.Add(15 * time.Hour)

	return models.Session{
		ID:                       "session-" + day,
		StartTime:                completedAt.Add(-15 * time.Minute),
		Duration:                 15,
		Completed:                true,
		CompletedAt:              &completedAt,
		AttentionChecksResponded: 2,
	}
}

// failedOn builds a session that ended in a missed attention check on the
// given local date.
func failedOn(t *testing.T, day string) models.Session {
	t.Helper()

	d, err := time.ParseInLocation(timeutil.DayLayout, day, time.Local)
	if err != nil {
		t.Fatal(err)
	}

	return models.Session{
		ID:                   "failed-" + day,
		StartTime:            d.Add(9 * time.Hour),
		Duration:             15,
		FailedAttentionCheck: true,
	}
}

// at returns noon on the given local date.
func at(t *testing.T, day string) time.Time {
	t.Helper()

	d, err := time.ParseInLocation(timeutil.DayLayout, day, time.Local)
	if err != nil {
		t.Fatal(err)
	}

	return d.Add(12 * time.Hour)
}

func TestCompletedDays(t *testing.T) {
	sessions := []models.Session{
		completedOn(t, "2024-01-01"),
		completedOn(t, "2024-01-01"), // second completion on the same day
		failedOn(t, "2024-01-02"),
		completedOn(t, "2024-01-03"),
	}

	got := streak.CompletedDays(sessions)

	want := map[string]struct{}{
		"2024-01-01": {},
		"2024-01-03": {},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("completed days mismatch (-want +got):\n%s", diff)
	}
}

func TestRecalculate(t *testing.T) {
	cases := []struct {
		name          string
		completedDays []string
		failedDays    []string
		now           string
		wantCurrent   int
		wantLongest   int
	}{
		{
			name:        "no sessions",
			now:         "2024-01-05",
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name: "five consecutive days ending today",
			completedDays: []string{
				"2024-01-01", "2024-01-02", "2024-01-03",
				"2024-01-04", "2024-01-05",
			},
			now:         "2024-01-05",
			wantCurrent: 5,
			wantLongest: 5,
		},
		{
			name: "run ended two days ago",
			completedDays: []string{
				"2024-01-01", "2024-01-02", "2024-01-03",
				"2024-01-04", "2024-01-05",
			},
			now:         "2024-01-07",
			wantCurrent: 0,
			wantLongest: 5,
		},
		{
			name: "yesterday counts as a grace day",
			completedDays: []string{
				"2024-01-03", "2024-01-04",
			},
			now:         "2024-01-05",
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "gap splits runs",
			completedDays: []string{
				"2024-01-01", "2024-01-02",
				"2024-01-05", "2024-01-06", "2024-01-07",
			},
			now:         "2024-01-07",
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "earlier run can be the longest",
			completedDays: []string{
				"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
				"2024-01-09",
			},
			now:         "2024-01-09",
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:          "failed sessions never contribute",
			completedDays: []string{"2024-01-04"},
			failedDays:    []string{"2024-01-05"},
			now:           "2024-01-05",
			wantCurrent:   1,
			wantLongest:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sessions []models.Session

			for _, day := range tc.completedDays {
				sessions = append(sessions, completedOn(t, day))
			}

			for _, day := range tc.failedDays {
				sessions = append(sessions, failedOn(t, day))
			}

			now := at(t, tc.now)

			current, longest := streak.Recalculate(sessions, now)

			if current != tc.wantCurrent || longest != tc.wantLongest {
				t.Errorf(
					"got current=%d longest=%d, want current=%d longest=%d",
					current, longest, tc.wantCurrent, tc.wantLongest,
				)
			}

			// Recomputing from the same history is deterministic.
			current2, longest2 := streak.Recalculate(sessions, now)
			if current2 != current || longest2 != longest {
				t.Errorf(
					"recomputation changed the result: got %d/%d then %d/%d",
					current, longest, current2, longest2,
				)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	abandoned := completedOn(t, "2024-01-02")
	abandoned.ID = "abandoned"
	abandoned.Completed = false
	abandoned.CompletedAt = nil
	abandoned.AttentionChecksResponded = 3

	sessions := []models.Session{
		completedOn(t, "2024-01-01"),
		completedOn(t, "2024-01-02"),
		failedOn(t, "2024-01-03"),
		abandoned,
	}

	got := streak.ComputeStats(sessions, at(t, "2024-01-03"))

	want := models.Stats{
		TotalSessions:     4,
		CompletedSessions: 2,
		FailedSessions:    1,
		TotalMinutes:      30,
		CurrentStreak:     0,
		LongestStreak:     2,
		// 7 responded checks across the history, 1 failed session.
		AttentionCheckSuccessRate: 6.0 / 7.0,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStatsNoChecks(t *testing.T) {
	got := streak.ComputeStats(nil, at(t, "2024-01-03"))

	if got.AttentionCheckSuccessRate != 1 {
		t.Errorf(
			"success rate with no responded checks = %v, want 1",
			got.AttentionCheckSuccessRate,
		)
	}
}
