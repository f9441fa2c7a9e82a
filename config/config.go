// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v0.2.0"

var once sync.Once

var (
	configDir      = "bored"
	configFileName = "config.yml"
	dbFileName     = "bored.db"
	logFileName    = "bored.log"

	configFilePath string
	dbFilePath     string
	logFilePath    string
)

func init() {
	env := os.Getenv("BORED_ENV")
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("bored_%s.db", env)
		logFileName = fmt.Sprintf("bored_%s.log", env)
	}
}

func DBFilePath() string {
	return dbFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// initializePaths resolves the config, database, and log file locations
// in the XDG base directories.
func initializePaths() {
	var err error

	configFilePath, err = xdg.ConfigFile(filepath.Join(configDir, configFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)
	logFilePath = filepath.Join(dataDir, "log", logFileName)
}
