package runner

import (
	"fmt"
	"time"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/registry"
)

// Terminals report key presses (with autorepeat) but no releases. A key
// counts as released once no press for it arrived within these windows.
const (
	jumpReleaseAfter = 150 * time.Millisecond
	duckReleaseAfter = 500 * time.Millisecond
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset = config.DifficultyNormal

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names mean normal.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

// heldKey tracks one key for release synthesis.
type heldKey struct {
	held  bool
	quiet int // Frames since the last press
	limit int
}

// press records a press and reports whether it is a new one.
func (k *heldKey) press() bool {
	fresh := !k.held
	k.held = true
	k.quiet = 0
	return fresh
}

// tick ages the key and reports whether it just timed out.
func (k *heldKey) tick() bool {
	if !k.held {
		return false
	}
	k.quiet++
	if k.quiet >= k.limit {
		k.held = false
		return true
	}
	return false
}

// presetFor prefers the preset carried by the runtime config over the
// package default.
func presetFor(runtime core.RuntimeConfig) config.DifficultyPreset {
	if runtime.Difficulty != "" {
		if p, ok := config.ParsePreset(runtime.Difficulty); ok {
			return p
		}
	}
	return difficultyPreset
}

// Game adapts the runner Engine to the arcade platform.
type Game struct {
	engine   *Engine
	renderer Renderer
	runtime  core.RuntimeConfig
	paused   bool
	jump     heldKey
	duck     heldKey
}

// New creates a new runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "dino"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dino Run"
}

// Reset creates the engine on first use and restarts it afterwards. The
// engine, and with it the high score, lives as long as the Game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.jump = heldKey{limit: runtime.FramesFor(jumpReleaseAfter)}
	g.duck = heldKey{limit: runtime.FramesFor(duckReleaseAfter)}

	if g.engine != nil {
		g.engine.Restart()
		return
	}

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyRunnerPreset(&cfg, presetFor(runtime))

	g.engine = NewEngine(cfg, runtime.Seed)
	g.renderer = Renderer{Sheet: NewSpriteSheet(cfg.Sprites)}
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step applies input and advances the engine by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	e := g.engine

	if in.Has(core.ActionPause) && e.Phase().Active() {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.paused = false
		e.Restart()
	}
	if in.Has(core.ActionRevive) && e.Revive() {
		g.paused = false
	}
	if in.Has(core.ActionConfirm) {
		e.Start()
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.applyKeys(in)
	e.Step()

	return core.StepResult{State: g.State()}
}

func (g *Game) applyKeys(in core.InputFrame) {
	e := g.engine

	if in.Has(core.ActionJumpRelease) {
		g.jump.held = false
		e.ReleaseJump()
	}
	if in.Has(core.ActionDuckRelease) {
		g.duck.held = false
		e.ReleaseCrouch()
	}

	jumpPressed := in.Has(core.ActionJump) || in.Has(core.ActionUp)
	duckPressed := in.Has(core.ActionDuck) || in.Has(core.ActionDown)

	if jumpPressed {
		if g.jump.press() {
			e.PressJump()
		}
	} else if g.jump.tick() {
		e.ReleaseJump()
	}

	if duckPressed {
		if g.duck.press() {
			e.PressCrouch()
		}
	} else if g.duck.tick() {
		e.ReleaseCrouch()
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.engine

	area := core.NewRect(0, 1, dst.Width(), dst.Height()-1)
	g.renderer.Draw(dst, e, area)

	// HUD
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  HI: %d ", e.DisplayScore(), e.DisplayHighScore()))
	speedText := fmt.Sprintf(" Spd: %.1f ", e.Speed())
	dst.DrawText(dst.Width()-len(speedText)-2, 0, speedText)

	switch {
	case e.Phase() == PhaseNotStarted:
		dst.DrawMessageBox("DINO RUN", "Press SPACE to start")
	case e.Phase() == PhaseGameOver && e.CanRevive():
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  SPACE restart  |  V revive", e.DisplayScore()))
	case e.Phase() == PhaseGameOver:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to restart", e.DisplayScore()))
	case g.paused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	e := g.engine
	if e == nil {
		return core.GameState{Phase: PhaseNotStarted.String()}
	}
	return core.GameState{
		Score:     e.DisplayScore(),
		HighScore: e.DisplayHighScore(),
		Phase:     e.Phase().String(),
		GameOver:  e.Phase() == PhaseGameOver,
		Paused:    g.paused,
		CanRevive: e.CanRevive(),
	}
}

// Register the game with the registry
func init() {
	registry.Register("dino", func() registry.Game {
		return New()
	})
}
