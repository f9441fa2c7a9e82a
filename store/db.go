package store

import (
	"github.com/getbored/bored/internal/models"
)

// DB is the persistence interface for the application record and settings.
type DB interface {
	// Load returns the current AppData, falling back to defaults when the
	// stored record is absent or unreadable.
	Load() (*models.AppData, error)
	// Save overwrites the entire persisted record.
	Save(data *models.AppData) error
	// RecordSession appends a terminal session record, recomputes both
	// streak values, persists, and returns the updated AppData.
	RecordSession(sess *models.Session) (*models.AppData, error)
	// Theme returns the stored theme preference, or "" when unset.
	Theme() (models.Theme, error)
	// SetTheme stores the theme preference.
	SetTheme(theme models.Theme) error
	// LastDuration returns the most recently chosen session duration in
	// minutes, falling back to the default when absent or out of range.
	LastDuration() (int, error)
	// SetLastDuration stores the session duration for the next session.
	SetLastDuration(minutes int) error
	// Close ends the database connection.
	Close() error
}
