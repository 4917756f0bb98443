package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/oddtile/internal/platform/tui"
	"github.com/vovakirdan/oddtile/internal/storage"
)

var (
	flagClear bool
	flagPlain bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the perception journal",
	Long: `Display hit rates grouped by lightness delta, and the smallest delta
you reliably spot.

Every pick in every session is journaled with the delta it was played at.
Scores themselves are not stored.

Examples:
  oddtile journal
  oddtile journal --plain
  oddtile journal --clear`,
	Args: cobra.NoArgs,
	Run:  runJournal,
}

func init() {
	journalCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all journaled rounds")
	journalCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain text table instead of the interactive view")
}

func runJournal(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing journal: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Journal cleared.")
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunJournal(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running journal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printJournal(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading journal: %v\n", err)
		os.Exit(1)
	}
}

// printJournal writes the delta bands and recent runs as plain text.
func printJournal(store *storage.Store) error {
	buckets, err := store.DeltaBuckets(storage.DefaultBandWidth)
	if err != nil {
		return err
	}

	fmt.Println("Perception Journal")
	fmt.Println()

	if len(buckets) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'oddtile play' to start the journal!")
		return nil
	}

	fmt.Printf("  %-11s  %-6s  %-8s  %s\n", "Delta", "Rounds", "Hit rate", "Avg time")
	fmt.Printf("  %-11s  %-6s  %-8s  %s\n", "-----", "------", "--------", "--------")
	for _, b := range buckets {
		fmt.Printf("  %4.1f-%-6.1f  %-6d  %7.0f%%  %.2fs\n",
			b.Low, b.High, b.Total(), b.HitRate()*100, b.AvgReactionMS/1000)
	}
	fmt.Println()

	threshold, ok, err := store.Threshold(storage.DefaultMinSamples, storage.DefaultHitRate)
	if err != nil {
		return err
	}
	if ok {
		fmt.Printf("Threshold: %.1f-%.1f%% lightness (%.0f%% hits)\n",
			threshold.Low, threshold.High, threshold.HitRate()*100)
	} else {
		fmt.Println("Threshold: not enough data yet")
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Recent sessions:")
	for _, r := range runs {
		fmt.Printf("  %s  %3d picks  %3d hits  reached level %d\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Rounds, r.Hits, r.MaxLevel)
	}

	return nil
}
