package store

import (
	"path/filepath"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/google/go-cmp/cmp"

	"github.com/getbored/bored/internal/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "bored_test.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

// putRaw writes a raw value straight into a bucket, bypassing the client
// API, to simulate corrupted or hand-edited records.
func putRaw(t *testing.T, c *Client, bucket, key, value []byte) {
	t.Helper()

	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, value)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func completedSession(t *testing.T, id string, completedAt time.Time) models.Session {
	t.Helper()

	return models.Session{
		ID:                       id,
		StartTime:                completedAt.Add(-15 * time.Minute),
		Duration:                 15,
		Completed:                true,
		CompletedAt:              &completedAt,
		AttentionChecksResponded: 1,
	}
}

func TestLoadDefaults(t *testing.T) {
	c := newTestClient(t)

	data, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(models.NewAppData(), data); diff != "" {
		t.Errorf("fresh store should load defaults (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	cases := []struct {
		name string
		blob []byte
	}{
		{name: "not json", blob: []byte("{not json at all")},
		{name: "wrong shape", blob: []byte(`{"sessions": "nope"}`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t)

			putRaw(t, c, appBucket, appDataKey, tc.blob)

			data, err := c.Load()
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(models.NewAppData(), data); diff != "" {
				t.Errorf(
					"corrupt record should load defaults (-want +got):\n%s",
					diff,
				)
			}
		})
	}
}

func TestLoadPartialRecord(t *testing.T) {
	c := newTestClient(t)

	// A record missing most fields merges over defaults.
	putRaw(t, c, appBucket, appDataKey, []byte(`{"currentStreak": 3}`))

	data, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}

	if data.CurrentStreak != 3 {
		t.Errorf("currentStreak = %d, want 3", data.CurrentStreak)
	}

	if data.Theme != models.ThemeLight {
		t.Errorf("theme = %q, want %q", data.Theme, models.ThemeLight)
	}

	if data.Sessions == nil {
		t.Error("sessions should default to an empty slice")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := newTestClient(t)

	want := models.NewAppData()
	want.Theme = models.ThemeDark
	want.Sessions = []models.Session{
		completedSession(t, "a", time.Now().Add(-time.Hour)),
	}
	want.CurrentStreak = 1
	want.LongestStreak = 1

	if err := c.Save(want); err != nil {
		t.Fatal(err)
	}

	got, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordSession(t *testing.T) {
	c := newTestClient(t)

	now := time.Now()
	yesterday := completedSession(t, "y", now.AddDate(0, 0, -1))
	today := completedSession(t, "t", now)

	if _, err := c.RecordSession(&yesterday); err != nil {
		t.Fatal(err)
	}

	data, err := c.RecordSession(&today)
	if err != nil {
		t.Fatal(err)
	}

	if len(data.Sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(data.Sessions))
	}

	if data.CurrentStreak != 2 || data.LongestStreak != 2 {
		t.Errorf(
			"streaks = %d/%d, want 2/2",
			data.CurrentStreak,
			data.LongestStreak,
		)
	}

	// The recomputed record is what was persisted.
	loaded, err := c.Load()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(data, loaded); diff != "" {
		t.Errorf("persisted record mismatch (-want +got):\n%s", diff)
	}
}

func TestTheme(t *testing.T) {
	c := newTestClient(t)

	theme, err := c.Theme()
	if err != nil {
		t.Fatal(err)
	}

	if theme != "" {
		t.Errorf("unset theme = %q, want empty", theme)
	}

	if err := c.SetTheme(models.ThemeDark); err != nil {
		t.Fatal(err)
	}

	theme, err = c.Theme()
	if err != nil {
		t.Fatal(err)
	}

	if theme != models.ThemeDark {
		t.Errorf("theme = %q, want %q", theme, models.ThemeDark)
	}

	// Unknown stored values are treated as unset.
	putRaw(t, c, settingsBucket, themeKey, []byte("solarized"))

	theme, err = c.Theme()
	if err != nil {
		t.Fatal(err)
	}

	if theme != "" {
		t.Errorf("invalid stored theme = %q, want empty", theme)
	}
}

func TestLastDuration(t *testing.T) {
	c := newTestClient(t)

	cases := []struct {
		name   string
		stored string
		want   int
	}{
		{name: "unset", stored: "", want: DefaultDuration},
		{name: "valid", stored: "25", want: 25},
		{name: "not a number", stored: "abc", want: DefaultDuration},
		{name: "below range", stored: "0", want: DefaultDuration},
		{name: "above range", stored: "61", want: DefaultDuration},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.stored != "" {
				putRaw(t, c, settingsBucket, lastDurationKey, []byte(tc.stored))
			}

			got, err := c.LastDuration()
			if err != nil {
				t.Fatal(err)
			}

			if got != tc.want {
				t.Errorf("LastDuration() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSetLastDuration(t *testing.T) {
	c := newTestClient(t)

	if err := c.SetLastDuration(30); err != nil {
		t.Fatal(err)
	}

	got, err := c.LastDuration()
	if err != nil {
		t.Fatal(err)
	}

	if got != 30 {
		t.Errorf("LastDuration() = %d, want 30", got)
	}
}
