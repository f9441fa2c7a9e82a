package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	defaultDurationMinutes = 15

	minDurationMinutes = 1
	maxDurationMinutes = 60
)

const (
	configDurationMinutes = "duration_mins"
	configDarkTheme       = "dark_theme"
	configNotify          = "notify"
	configSessionCmd      = "session_cmd"
)

var timerCfg = &TimerConfig{}

// TimerConfig represents the program configuration derived from the config
// file and command-line arguments.
type TimerConfig struct {
	Stderr          io.Writer `json:"-"`
	Stdout          io.Writer `json:"-"`
	Stdin           io.Reader `json:"-"`
	PathToConfig    string    `json:"path_to_config"`
	PathToDB        string    `json:"path_to_db"`
	SessionCmd      string    `json:"session_cmd"`
	DurationMinutes int       `json:"duration_mins"`
	// DurationSet records that the duration came from a command-line
	// argument rather than the stored default.
	DurationSet bool `json:"-"`
	DarkTheme   bool `json:"dark_theme"`
	Notify      bool `json:"notify"`
}

// timerDefaults sets the program's default configuration values.
func timerDefaults() {
	viper.SetDefault(configDurationMinutes, defaultDurationMinutes)
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configSessionCmd, "")
}

// initTimerConfig reads the configuration file, creating it with defaults
// on first run.
func initTimerConfig() error {
	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")

	timerCfg.PathToConfig = configFilePath

	viper.AddConfigPath(filepath.Dir(timerCfg.PathToConfig))

	timerDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return viper.WriteConfigAs(timerCfg.PathToConfig)
		}

		return err
	}

	return nil
}

// clampDuration bounds a session length to the supported range.
func clampDuration(minutes int) int {
	if minutes < minDurationMinutes {
		return minDurationMinutes
	}

	if minutes > maxDurationMinutes {
		return maxDurationMinutes
	}

	return minutes
}

func setTimerConfig(ctx *cli.Context) {
	timerCfg.Stderr = os.Stderr
	timerCfg.Stdout = os.Stdout
	timerCfg.Stdin = os.Stdin
	timerCfg.PathToDB = dbFilePath

	timerCfg.DurationMinutes = clampDuration(viper.GetInt(configDurationMinutes))
	timerCfg.Notify = viper.GetBool(configNotify)
	timerCfg.SessionCmd = viper.GetString(configSessionCmd)

	// The theme preference falls back to the terminal background when the
	// config file doesn't state one.
	if viper.IsSet(configDarkTheme) {
		timerCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		timerCfg.DarkTheme = lipgloss.HasDarkBackground()
	}

	if ctx.Uint("duration") > 0 {
		timerCfg.DurationMinutes = clampDuration(int(ctx.Uint("duration")))
		timerCfg.DurationSet = true
	}

	if ctx.Bool("disable-notification") {
		timerCfg.Notify = false
	}

	if ctx.String("session-cmd") != "" {
		timerCfg.SessionCmd = ctx.String("session-cmd")
	}
}

// Timer initializes and returns the timer configuration. The
// initialization is done just once no matter how many times it is called.
func Timer(ctx *cli.Context) *TimerConfig {
	once.Do(func() {
		initializePaths()

		initLog()

		if err := initTimerConfig(); err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setTimerConfig(ctx)
	})

	return timerCfg
}
