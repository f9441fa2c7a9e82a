package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

var statsCfg *StatsConfig

// StatsConfig represents the configuration for reporting commands. A zero
// StartTime reports over the entire session history.
type StatsConfig struct {
	Stdout    io.Writer
	StartTime time.Time
	PathToDB  string
	JSON      bool
}

// setStatsConfig updates the stats configuration from command-line
// arguments. The --since value accepts natural language dates such as
// "2 weeks ago".
func setStatsConfig(ctx *cli.Context) error {
	statsCfg.JSON = ctx.Bool("json")

	since := strings.TrimSpace(ctx.String("since"))
	if since == "" {
		return nil
	}

	dt, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime: time.Now(),
	}, since)
	if err != nil {
		return errInvalidSince
	}

	if dt.Time.After(time.Now()) {
		return errFutureSince
	}

	statsCfg.StartTime = dt.Time

	return nil
}

// Stats initializes and returns the stats configuration from command-line
// arguments.
func Stats(ctx *cli.Context) *StatsConfig {
	once.Do(func() {
		initializePaths()

		initLog()
	})

	statsCfg = &StatsConfig{
		Stdout:   os.Stdout,
		PathToDB: dbFilePath,
	}

	if err := setStatsConfig(ctx); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return statsCfg
}
