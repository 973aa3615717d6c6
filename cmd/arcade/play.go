package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdlunited/arcade/internal/games/runner"
	"github.com/mdlunited/arcade/internal/games/snake"
	"github.com/mdlunited/arcade/internal/platform/tui"
	"github.com/mdlunited/arcade/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Up     - Jump (dino)
  Down         - Crouch (dino)
  Arrows/WASD  - Steer (snake)
  Enter        - Start
  V            - Revive once after game over (dino)
  P            - Pause
  R            - Restart
  B/Esc        - Back (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - Slower start and gentler progression
  normal  - Default tuning
  hard    - Faster start and steeper progression

Examples:
  arcade play dino
  arcade play snake --difficulty easy
  arcade play dino --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	switch gameID {
	case "dino":
		runner.SetConfigPath(flagConfig)
	case "snake":
		snake.SetConfigPath(flagConfig)
	}

	cfg := runtimeConfig()
	if cfg.Difficulty == "" {
		var ok bool
		var err error
		cfg, ok, err = tui.RunDifficultySelector(registry.Title(gameID), cfg)
		if err != nil || !ok {
			return err
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	logger.Debug("starting game", "game", gameID, "difficulty", cfg.Difficulty, "fps", cfg.TickRate)
	if _, err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
