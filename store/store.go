// Package store connects to the data store and manages the application
// record, settings, and import/export bundles.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/getbored/bored/internal/models"
	"github.com/getbored/bored/internal/streak"
)

var errBoredRunning = errors.New(
	"is bored already running? Only one instance can be active at a time",
)

var (
	appBucket      = []byte("app")
	settingsBucket = []byte("settings")

	appDataKey      = []byte("data")
	themeKey        = []byte("theme")
	lastDurationKey = []byte("last_duration")
)

const (
	// DefaultDuration is the fallback session length in minutes.
	DefaultDuration = 15

	// MinDuration and MaxDuration bound the configurable session length.
	MinDuration = 1
	MaxDuration = 60
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// decodeAppData merges a stored blob over default AppData. A missing or
// unparseable blob yields the defaults so a corrupt record never surfaces
// to the user.
func decodeAppData(blob []byte) *models.AppData {
	data := models.NewAppData()

	if len(blob) == 0 {
		return data
	}

	if err := json.Unmarshal(blob, data); err != nil {
		slog.Warn("discarding unreadable app record", slog.Any("error", err))

		return models.NewAppData()
	}

	if data.Theme != models.ThemeLight && data.Theme != models.ThemeDark {
		data.Theme = models.ThemeLight
	}

	if data.Sessions == nil {
		data.Sessions = []models.Session{}
	}

	return data
}

func (c *Client) Load() (*models.AppData, error) {
	var data *models.AppData

	err := c.View(func(tx *bolt.Tx) error {
		data = decodeAppData(tx.Bucket(appBucket).Get(appDataKey))

		return nil
	})

	return data, err
}

func (c *Client) Save(data *models.AppData) error {
	value, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(appBucket).Put(appDataKey, value)
	})
}

// RecordSession appends sess to the stored history and recomputes both
// streak values from the full updated history. The read-modify-write of the
// whole record happens inside a single transaction.
func (c *Client) RecordSession(sess *models.Session) (*models.AppData, error) {
	var data *models.AppData

	err := c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(appBucket)

		data = decodeAppData(b.Get(appDataKey))

		data.Sessions = append(data.Sessions, *sess)
		data.CurrentStreak, data.LongestStreak = streak.Recalculate(
			data.Sessions,
			time.Now(),
		)

		value, err := json.Marshal(data)
		if err != nil {
			return err
		}

		return b.Put(appDataKey, value)
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (c *Client) Theme() (models.Theme, error) {
	var theme models.Theme

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get(themeKey)

		switch models.Theme(v) {
		case models.ThemeLight, models.ThemeDark:
			theme = models.Theme(v)
		}

		return nil
	})

	return theme, err
}

func (c *Client) SetTheme(theme models.Theme) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put(themeKey, []byte(theme))
	})
}

func (c *Client) LastDuration() (int, error) {
	minutes := DefaultDuration

	err := c.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get(lastDurationKey)
		if len(v) == 0 {
			return nil
		}

		n, err := strconv.Atoi(string(v))
		if err != nil || n < MinDuration || n > MaxDuration {
			return nil
		}

		minutes = n

		return nil
	})

	return minutes, err
}

func (c *Client) SetLastDuration(minutes int) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put(
			lastDurationKey,
			[]byte(strconv.Itoa(minutes)),
		)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errBoredRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists(appBucket)
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists(settingsBucket)

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
