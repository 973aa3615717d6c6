package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mdlunited/arcade/internal/registry"
	"github.com/mdlunited/arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game.

Examples:
  arcade scores dino
  arcade scores snake --limit 25`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", registry.Title(gameID))

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10s  %s (%s)\n",
			i+1,
			humanize.Comma(int64(entry.Score)),
			entry.CreatedAt.Local().Format("2006-01-02 15:04"),
			humanize.Time(entry.CreatedAt),
		)
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %s  |  Games: %s  |  Average: %.1f\n",
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.GamesCount)),
		stats.AvgScore,
	)
	return nil
}
