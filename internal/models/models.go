package models

import "time"

// Theme is a display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Session is the immutable record of a single boredom attempt. Exactly one
// of Completed and FailedAttentionCheck may be true; CompletedAt is non-nil
// iff Completed is true.
type Session struct {
	ID                       string     `json:"id"`
	StartTime                time.Time  `json:"startTime"`
	Duration                 int        `json:"duration"` // planned length in minutes, 1-60
	Completed                bool       `json:"completed"`
	CompletedAt              *time.Time `json:"completedAt"`
	FailedAttentionCheck     bool       `json:"failedAttentionCheck"`
	AttentionChecksResponded int        `json:"attentionChecksResponded"`
}

// AppData is the persisted aggregate. Sessions is append-only and kept in
// insertion order; both streak values are derived but stored redundantly so
// reads don't have to recompute them.
type AppData struct {
	Theme         Theme     `json:"theme"`
	Sessions      []Session `json:"sessions"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
}

// NewAppData returns AppData with default values.
func NewAppData() *AppData {
	return &AppData{
		Theme:    ThemeLight,
		Sessions: []Session{},
	}
}

// Stats summarises a session history.
type Stats struct {
	TotalSessions             int     `json:"totalSessions"`
	CompletedSessions         int     `json:"completedSessions"`
	FailedSessions            int     `json:"failedSessions"`
	CurrentStreak             int     `json:"currentStreak"`
	LongestStreak             int     `json:"longestStreak"`
	TotalMinutes              int     `json:"totalMinutes"`
	AttentionCheckSuccessRate float64 `json:"attentionCheckSuccessRate"`
}

// Bundle is the self-describing export/import payload.
type Bundle struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Sessions   []Session `json:"sessions"`
	Stats      Stats     `json:"stats"`
}

// BundleVersion is the current export format version.
const BundleVersion = "1.0"
