package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oddtile/internal/core"
	"github.com/vovakirdan/oddtile/internal/engine"
	"github.com/vovakirdan/oddtile/internal/games/oddtile"
	"github.com/vovakirdan/oddtile/internal/platform/tui"
	"github.com/vovakirdan/oddtile/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a session",
	Long: `Start a timed session.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter/Space  - Pick the tile under the cursor
  Mouse        - Click a tile to pick it
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 90 seconds, 2 second miss penalty
  normal - Rules from the config file
  hard   - 45 seconds, 5 second miss penalty
  fixed  - Delta never shrinks, stays at the initial value

Examples:
  oddtile play
  oddtile play --difficulty easy
  oddtile play --seed 42
  oddtile play --config ./my-rules.yaml --log-file ./oddtile.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write engine debug logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rc := core.DefaultConfig()
	rc.Seed = flagSeed

	// Get terminal size for the first layout
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	logger, closeLog, err := openLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts := engine.Options{Logger: logger}

	// Open the journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open journal database: %v\n", err)
		// Continue without the journal - game still works
	} else {
		opts.Recorder = store
	}

	eng := engine.New(oddtile.NewSeeded(gameCfg, rc.ResolveSeed()), opts)
	eng.Start()

	runErr := tui.Run(eng, rc.ScreenW, rc.ScreenH)

	// Stop the engine before closing the store it records to
	eng.Stop()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogger returns a debug logger writing to path, or a discarding logger
// when path is empty. The TUI owns the terminal, so logs never go to stderr.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "oddtile",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
