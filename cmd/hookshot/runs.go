package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hookshot/internal/platform/tui"
	"github.com/vovakirdan/hookshot/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsInteractive bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show recent runs",
	Long: `Display the most recent finished runs, newest first, with per-level
totals. Without a level, runs of every level are shown.

Examples:
  hookshot runs
  hookshot runs demo --limit 20
  hookshot runs --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunsInteractive {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunBoard(store, width, height)
	}

	lvl := ""
	if len(args) > 0 {
		lvl = args[0]
	}
	return printRuns(cmd.OutOrStdout(), store, lvl, flagRunsLimit)
}

func printRuns(w io.Writer, store *storage.Store, lvl string, limit int) error {
	runs, err := store.RecentRuns(lvl, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "all levels"
	if lvl != "" {
		title = lvl
	}
	fmt.Fprintf(w, "Recent runs - %s\n", title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-12s  %-10s  %6s  %6s  %8s  %8s  %s\n", "Level", "Player", "Shots", "Caught", "Time", "End", "Date")
	fmt.Fprintf(w, "  %-12s  %-10s  %6s  %6s  %8s  %8s  %s\n", "-----", "------", "-----", "------", "----", "---", "----")
	for _, r := range runs {
		fmt.Fprintf(w, "  %-12s  %-10s  %6d  %6d  %8s  %8s  %s\n",
			r.Level, r.Player, r.ShotsFired, r.Captures,
			r.Duration.Round(100*time.Millisecond).String(), r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if lvl != "" {
		stats, err := store.GetLevelStats(lvl)
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		printStats(w, stats)
		return nil
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	levels := make([]string, 0, len(all))
	for l := range all {
		levels = append(levels, l)
	}
	slices.Sort(levels)
	for _, l := range levels {
		printStats(w, all[l])
	}
	return nil
}

func printStats(w io.Writer, s *storage.LevelStats) {
	fmt.Fprintf(w, "%s: %d runs  %d shots  %d captures  best %d  played %s\n",
		s.Level, s.Runs, s.ShotsFired, s.Captures, s.BestCaptures,
		s.TotalTime.Round(time.Second))
}
