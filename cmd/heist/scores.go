package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/array-heist/internal/games/heist"
	"github.com/vovakirdan/array-heist/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best clear times",
	Long: `Display the 10 fastest clears of a level, or a summary of every
level when no level is given.

--recent N lists the last N finished levels instead. --clear deletes the
results of the given level, or of every level when none is given.

Examples:
  heist scores
  heist scores 3
  heist scores --recent 20
  heist scores 2 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "List the N most recent results")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete results (one level, or all)")
}

func runScores(_ *cobra.Command, args []string) {
	if flagDBPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no results database (--db is empty)")
		os.Exit(1)
	}

	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || heist.GetRule(n) == nil {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", heist.ErrNoSuchLevel, args[0])
			fmt.Fprintln(os.Stderr, "Run 'heist levels' to see available levels.")
			os.Exit(1)
		}
		level = n
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearResults(os.Stdout, store, level)
	case flagRecent > 0:
		err = printRecent(os.Stdout, store, flagRecent)
	case level == 0:
		err = printSummary(os.Stdout, store)
	default:
		err = printBestTimes(os.Stdout, store, level)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBestTimes(w io.Writer, store *storage.Store, level int) error {
	results, err := store.BestTimes(level, 10)
	if err != nil {
		return err
	}

	rule := heist.GetRule(level)
	fmt.Fprintf(w, "Best Times - Level %d: %s\n\n", level, rule.Name)

	if len(results) == 0 {
		fmt.Fprintln(w, "No clears recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'heist play --level %d' to set the first time!\n", level)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-12s  %s\n", "Rank", "Time", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-12s  %s\n", "----", "----", "------", "----")

	for i, r := range results {
		fmt.Fprintf(w, "  %-4d  %-6s  %-12s  %s\n", i+1, fmt.Sprintf("%ds", r.ElapsedSecs), playerOrDash(r.Player), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent Results")
	fmt.Fprintln(w)
	if len(results) == 0 {
		fmt.Fprintln(w, "No results recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-5s  %-9s  %-6s  %-12s  %s\n", "Level", "Outcome", "Time", "Player", "Date")
	fmt.Fprintf(w, "  %-5s  %-9s  %-6s  %-12s  %s\n", "-----", "-------", "----", "------", "----")
	for _, r := range results {
		fmt.Fprintf(w, "  %-5d  %-9s  %-6s  %-12s  %s\n", r.Level, outcomeLabel(r.Outcome), fmt.Sprintf("%ds", r.ElapsedSecs), playerOrDash(r.Player), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printRun summarizes the levels one play session finished.
func printRun(w io.Writer, store *storage.Store, runID string) error {
	results, err := store.RunResults(runID)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	cracked := 0
	for _, r := range results {
		if r.Outcome == storage.OutcomeWon {
			cracked++
		}
		fmt.Fprintf(w, "Level %d: %s in %ds\n", r.Level, outcomeLabel(r.Outcome), r.ElapsedSecs)
	}
	fmt.Fprintf(w, "%d of %d attempts cracked.\n", cracked, len(results))
	return nil
}

func clearResults(w io.Writer, store *storage.Store, level int) error {
	if err := store.ClearResults(level); err != nil {
		return err
	}
	if level == 0 {
		fmt.Fprintln(w, "Cleared all results.")
	} else {
		fmt.Fprintf(w, "Cleared results for level %d.\n", level)
	}
	return nil
}

func printSummary(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Level Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-5s  %-8s  %-7s  %-9s  %s\n", "Level", "Attempts", "Cracked", "Timed out", "Best")
	fmt.Fprintf(w, "  %-5s  %-8s  %-7s  %-9s  %s\n", "-----", "--------", "-------", "---------", "----")

	for _, r := range heist.Rules {
		s, ok := stats[r.ID]
		if !ok {
			fmt.Fprintf(w, "  %-5d  %-8d  %-7d  %-9d  %s\n", r.ID, 0, 0, 0, "-")
			continue
		}
		best := "-"
		if s.Wins > 0 {
			best = fmt.Sprintf("%ds", s.BestSecs)
		}
		fmt.Fprintf(w, "  %-5d  %-8d  %-7d  %-9d  %s\n", r.ID, s.Attempts, s.Wins, s.TimeOuts, best)
	}
	return nil
}

func outcomeLabel(o storage.Outcome) string {
	if o == storage.OutcomeWon {
		return "cracked"
	}
	return "timed out"
}

func playerOrDash(p string) string {
	if p == "" {
		return "-"
	}
	return p
}
