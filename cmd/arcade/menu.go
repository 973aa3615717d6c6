package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mdlunited/arcade/internal/platform/tui"
	"github.com/mdlunited/arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		gameCfg := cfg
		if flagDifficulty == "" {
			var ok bool
			gameCfg, ok, err = tui.RunDifficultySelector(registry.Title(menuResult.GameID), cfg)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			// Remember the choice for the next pick.
			cfg.Difficulty = gameCfg.Difficulty
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}

		if flagSeed == 0 {
			gameCfg.Seed = time.Now().UnixNano()
		}

		quit, err := tui.Run(game, store, gameCfg)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
