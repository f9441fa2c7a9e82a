package app

import "github.com/urfave/cli/v2"

var (
	durationFlag = &cli.UintFlag{
		Name:    "duration",
		Aliases: []string{"d"},
		Usage:   "Session duration in minutes (1-60). Overrides the saved default",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:  "disable-notification",
		Usage: "Disable the system notification that appears when an attention check fires or a session ends",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each session",
	}

	sinceFlag = &cli.StringFlag{
		Name:  "since",
		Usage: "Limit reporting to sessions started after this time (e.g. '2 weeks ago')",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print statistics as JSON",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path to write the export bundle to (defaults to bored-export-<date>.json)",
	}
)
