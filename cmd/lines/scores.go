package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lines/internal/registry"
	"github.com/vovakirdan/tui-lines/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresAll    bool
	flagScoresClear  bool
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show recorded results",
	Long: `Display the best finished games of a variant (default: lines).
Games are ranked by lines cleared, fewer moves first on ties.

Examples:
  lines scores
  lines scores lines_strict --limit 20
  lines scores --all
  lines scores --recent
  lines scores lines --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary of every variant")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all results of the variant")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "List the latest games instead of the best")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}

	if flagScoresAll {
		err = printSummary(store)
	} else {
		gameID := defaultVariant
		if len(args) > 0 {
			gameID = args[0]
		}
		err = printVariant(store, gameID)
	}

	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printVariant lists the top results of one variant, or clears them.
func printVariant(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'lines list' to see available variants)", err)
	}

	if flagScoresClear {
		n, err := store.ClearResults(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %d result(s) for %s.\n", n, game.Title())
		return nil
	}

	heading := "Best games"
	query := store.TopResults
	if flagScoresRecent {
		heading, query = "Latest games", store.RecentResults
	}

	results, err := query(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Printf("Play 'lines play %s' and fill the board to record one!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-5s  %-5s  %-4s  %-20s  %-10s  %s\n", "#", "Lines", "Moves", "Left", "Seed", "Layout", "Date")
	fmt.Printf("  %-4s  %-5s  %-5s  %-4s  %-20s  %-10s  %s\n", "-", "-----", "-----", "----", "----", "------", "----")
	for i, r := range results {
		layout := r.Layout
		if layout == "" {
			layout = "-"
		}
		fmt.Printf("  %-4d  %-5d  %-5d  %-4d  %-20d  %-10s  %s\n",
			i+1, r.Lines, r.Moves, r.BallsLeft, r.Seed, layout, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.1f lines\n", stats.BestLines, stats.GamesCount, stats.AvgLines)
	return nil
}

// printSummary prints one line per variant that has results.
func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No finished games yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-14s  %-5s  %-4s  %-7s  %-11s  %s\n", "Variant", "Games", "Best", "Average", "Total moves", "Last played")
	fmt.Printf("  %-14s  %-5s  %-4s  %-7s  %-11s  %s\n", "-------", "-----", "----", "-------", "-----------", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %-5d  %-4d  %-7.1f  %-11d  %s\n",
			id, st.GamesCount, st.BestLines, st.AvgLines, st.TotalMoves, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
