package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/runway/internal/config"
	"github.com/vovakirdan/runway/internal/storage"
)

var (
	flagScoresLimit   int
	flagScoresPlayers bool
	flagScoresPlayer  string
	flagScoresClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the best runs, optionally for one difficulty.

Examples:
  runway scores
  runway scores hard
  runway scores --players
  runway scores --player ada
  runway scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlayers, "players", false, "Show each player's best instead of single runs")
	scoresCmd.Flags().StringVar(&flagScoresPlayer, "player", "", "Show a player's best score and rank")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded runs instead of listing them")
}

func runScores(_ *cobra.Command, args []string) {
	difficulty := ""
	title := "All runs"
	if len(args) == 1 {
		preset, err := config.ParsePreset(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		difficulty = string(preset)
		title = strings.ToUpper(difficulty[:1]) + difficulty[1:]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		err = clearScores(store, difficulty, title)
	case flagScoresPlayer != "":
		err = printPlayer(store, flagScoresPlayer)
	case flagScoresPlayers:
		err = printLeaderboard(store)
	default:
		err = printRuns(store, difficulty, title)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearScores(store *storage.Store, difficulty, title string) error {
	if err := store.Clear(difficulty); err != nil {
		return err
	}
	fmt.Printf("Cleared runs: %s\n", title)
	return nil
}

func printRuns(store *storage.Store, difficulty, title string) error {
	runs, err := store.TopScores(difficulty, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runway play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Mode", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %-6s  %s\n", "----", "------", "-----", "----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-6d  %-6s  %-6s  %s\n",
			i+1, truncate(r.Player, 12), r.Score, r.Difficulty,
			r.Duration.Round(time.Second).String(), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(difficulty)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Longest: %s\n",
		stats.Runs, stats.HighScore, stats.AvgScore, stats.LongestRun.Round(time.Second))
	return nil
}

func printLeaderboard(store *storage.Store) error {
	entries, err := store.Leaderboard(flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("Leaderboard - Players")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %s\n", "Rank", "Player", "Best", "Runs")
	fmt.Printf("  %-4s  %-12s  %-6s  %s\n", "----", "------", "----", "----")
	for _, e := range entries {
		fmt.Printf("  %-4d  %-12s  %-6d  %d\n", e.Rank, truncate(e.Player, 12), e.BestScore, e.Runs)
	}
	return nil
}

func printPlayer(store *storage.Store, player string) error {
	rank, ok, err := store.PlayerRank(player)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Printf("%s has no recorded runs.\n", player)
		return nil
	}
	best, err := store.PlayerBest(player)
	if err != nil {
		return err
	}
	fmt.Printf("%s: best %d, rank #%d\n", player, best, rank)
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
