package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/streak"
)

// ImportResult reports the outcome of an import. Failures carry a
// user-facing message instead of an error value.
type ImportResult struct {
	Success  bool
	Message  string
	Imported int
	Skipped  int
}

// Export builds the full export bundle from the stored history. Numbers in
// the stats block are not rounded.
func Export(db DB, now time.Time) (*models.Bundle, error) {
	data, err := db.Load()
	if err != nil {
		return nil, err
	}

	return &models.Bundle{
		Version:    models.BundleVersion,
		ExportedAt: now,
		Sessions:   data.Sessions,
		Stats:      streak.ComputeStats(data.Sessions, now),
	}, nil
}

func failure(msg string) ImportResult {
	return ImportResult{Success: false, Message: msg}
}

// validateSessions checks that every entry carries the required fields with
// the required types: id, startTime, duration (number), completed (boolean).
func validateSessions(entries []map[string]json.RawMessage) error {
	for i, entry := range entries {
		for _, field := range []string{"id", "startTime"} {
			if _, ok := entry[field]; !ok {
				return fmt.Errorf("session %d is missing %q", i+1, field)
			}
		}

		var duration float64
		if raw, ok := entry["duration"]; !ok || json.Unmarshal(raw, &duration) != nil {
			return fmt.Errorf("session %d is missing a numeric duration", i+1)
		}

		var completed bool
		if raw, ok := entry["completed"]; !ok || json.Unmarshal(raw, &completed) != nil {
			return fmt.Errorf("session %d is missing a boolean completed flag", i+1)
		}
	}

	return nil
}

// Import merges the sessions from an export bundle into the stored history,
// skipping ids that already exist. Structural errors leave the store
// untouched; importing the same bundle twice is a no-op on the second pass.
func Import(db DB, raw []byte, now time.Time) ImportResult {
	var bundle map[string]json.RawMessage

	if err := json.Unmarshal(raw, &bundle); err != nil {
		return failure("The file is not a valid export bundle")
	}

	rawSessions, ok := bundle["sessions"]
	if !ok {
		return failure("The bundle has no sessions list")
	}

	var entries []map[string]json.RawMessage

	if err := json.Unmarshal(rawSessions, &entries); err != nil {
		return failure("The bundle has no sessions list")
	}

	if err := validateSessions(entries); err != nil {
		return failure(fmt.Sprintf("Invalid bundle: %s", err))
	}

	var incoming []models.Session

	if err := json.Unmarshal(rawSessions, &incoming); err != nil {
		return failure(fmt.Sprintf("Invalid bundle: %s", err))
	}

	data, err := db.Load()
	if err != nil {
		return failure(fmt.Sprintf("Unable to read existing sessions: %s", err))
	}

	existing := make(map[string]struct{}, len(data.Sessions))
	for i := range data.Sessions {
		existing[data.Sessions[i].ID] = struct{}{}
	}

	var result ImportResult

	for i := range incoming {
		sess := incoming[i]

		if _, ok := existing[sess.ID]; ok {
			result.Skipped++
			continue
		}

		existing[sess.ID] = struct{}{}

		data.Sessions = append(data.Sessions, sess)
		result.Imported++
	}

	data.CurrentStreak, data.LongestStreak = streak.Recalculate(data.Sessions, now)

	if err := db.Save(data); err != nil {
		return failure(fmt.Sprintf("Unable to save imported sessions: %s", err))
	}

	result.Success = true
	result.Message = fmt.Sprintf(
		"Imported %d new sessions (%d duplicates skipped)",
		result.Imported,
		result.Skipped,
	)

	return result
}
