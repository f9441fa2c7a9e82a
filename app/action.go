package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/getbored/bored/config"
	"github.com/getbored/bored/stats"
	"github.com/getbored/bored/store"
	"github.com/getbored/bored/timer"
)

const (
	envNoColor      = "NO_COLOR"
	envBoredNoColor = "BORED_NO_COLOR"
)

const exportFilePerm = 0o644

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// editConfigAction handles the edit-config command which opens the bored
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.Timer(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// statsAction reports statistics for the specified time period.
func statsAction(ctx *cli.Context) error {
	cfg := config.Stats(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	stats.Init(db, cfg)

	return stats.Show()
}

// exportAction writes the session history and computed statistics to a
// JSON bundle on disk.
func exportAction(ctx *cli.Context) error {
	cfg := config.Stats(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	now := time.Now()

	bundle, err := store.Export(db, now)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return err
	}

	path := firstNonEmptyString(
		ctx.String("output"),
		ctx.Args().First(),
		fmt.Sprintf("bored-export-%s.json", now.Format("2006-01-02")),
	)

	if err := os.WriteFile(path, b, exportFilePerm); err != nil {
		return fmt.Errorf("unable to write export bundle: %w", err)
	}

	pterm.Success.Printfln(
		"Exported %d sessions to %s",
		len(bundle.Sessions),
		path,
	)

	return nil
}

// importAction merges a previously exported bundle into the session
// history, skipping sessions that already exist.
func importAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return cli.Exit("Specify the bundle file to import", 1)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Printfln("Unable to read %s: %s", path, err)

		return cli.Exit("", 1)
	}

	cfg := config.Stats(ctx)

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	defer db.Close()

	data, err := db.Load()
	if err != nil {
		return err
	}

	if len(data.Sessions) > 0 {
		var confirmed bool

		err := huh.NewConfirm().
			Title(fmt.Sprintf(
				"Merge the bundle into your existing %d sessions?",
				len(data.Sessions),
			)).
			Affirmative("Yes!").
			Negative("No").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}

		if !confirmed {
			pterm.Info.Println("Import cancelled")

			return nil
		}
	}

	result := store.Import(db, raw, time.Now())
	if !result.Success {
		pterm.Error.Println(result.Message)

		return cli.Exit("", 1)
	}

	pterm.Success.Println(result.Message)

	return nil
}

// defaultAction launches the interactive timer.
func defaultAction(ctx *cli.Context) error {
	cfg := config.Timer(ctx)

	dbClient, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return err
	}

	t, err := timer.New(dbClient, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(t, tea.WithAltScreen())

	_, err = p.Run()

	return err
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if BORED_NO_COLOR is set
	if _, exists := os.LookupEnv(envBoredNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting bored")

	return nil
}
