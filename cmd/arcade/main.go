// arcade is a TUI arcade platform for playing retro-style games in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade api               - Start the points store HTTP API
//	arcade wallet ...        - Inspect and manage store balances
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--difficulty <name>   - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/games/runner"
	"github.com/mdlunited/arcade/internal/games/snake"
	"github.com/mdlunited/arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play retro games in your terminal",
	Long: `TUI Arcade is a terminal-based gaming platform that lets you play
classic-style games directly in your terminal.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  api      - Start the points store HTTP API
  wallet   - Inspect and manage store balances

Examples:
  arcade list
  arcade play snake
  arcade menu --difficulty hard
  arcade serve --ssh :2222
  arcade scores dino`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard (asked for when empty)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(walletCmd)
}

// setup validates global flags and builds the shared logger.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "arcade",
		Level:           level,
	})
	log.SetDefault(logger)

	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("invalid --difficulty %q: want easy, normal or hard", flagDifficulty)
		}
	}
	runner.SetDifficultyPreset(flagDifficulty)
	snake.SetDifficultyPreset(flagDifficulty)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
	}
}

// openStoreOrWarn opens the score database. Games still run without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
