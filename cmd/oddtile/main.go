// oddtile is a timed colour-perception game for the terminal: find the one
// tile whose lightness differs from the other 24 before the clock runs out.
//
// Usage:
//
//	oddtile                  - Play a session (same as "oddtile play")
//	oddtile play             - Play a session
//	oddtile serve            - Start SSH server for remote play
//	oddtile journal          - Show hit rates per lightness delta
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible levels
//	--db <path>           - Set journal path (default: ~/.oddtile/journal.db)
//	--config <path>       - Use a custom rules YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oddtile/internal/config"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oddtile",
	Short: "OddTile - Spot the odd tile before time runs out",
	Long: `OddTile shows a 5x5 grid of coloured tiles. One of them is slightly
lighter or darker than the rest. Pick it to score; the next grid is harder.
Wrong picks cost time. The session ends when the clock reaches zero.

Available commands:
  play     - Play a session (default)
  serve    - Start SSH server for remote play
  journal  - View your perception journal

Examples:
  oddtile
  oddtile play --difficulty hard
  oddtile serve --ssh :2222
  oddtile journal`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oddtile/journal.db", "Path to perception journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write engine debug logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(journalCmd)
}

// loadGameConfig loads the rules and applies the --difficulty preset.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	return cfg, nil
}
