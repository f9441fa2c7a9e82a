// Package app defines the bored CLI
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/getbored/bored/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the bored app instance.
func Get() *cli.App {
	boredApp := &cli.App{
		Name: "bored",
		Usage: `
		Bored is a mindfulness timer for the command-line. Pick a duration,
		do nothing, and respond to the occasional attention check to prove
		you are still present.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults
				to reporting over the entire session history`,
				Action: statsAction,
				Flags: []cli.Flag{
					sinceFlag,
					jsonFlag,
					noColorFlag,
				},
			},
			{
				Name:      "export",
				Usage:     "Write the session history and statistics to a JSON bundle",
				ArgsUsage: "[FILE]",
				Action:    exportAction,
				Flags: []cli.Flag{
					outputFlag,
				},
			},
			{
				Name:      "import",
				Usage:     "Merge sessions from a previously exported bundle",
				ArgsUsage: "FILE",
				Action:    importAction,
			},
		},
		Flags: []cli.Flag{
			durationFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return boredApp
}
