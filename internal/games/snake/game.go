package snake

import (
	"fmt"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/registry"
)

// Cell glyphs. Each grid cell is two terminal columns wide so the board
// looks square.
const (
	headGlyph = '█'
	bodyGlyph = '▓'
	foodGlyph = '●'
	cellWidth = 2
)

var steerDirections = map[core.Action]Direction{
	core.ActionUp:    DirUp,
	core.ActionDown:  DirDown,
	core.ActionLeft:  DirLeft,
	core.ActionRight: DirRight,
}

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

// Game adapts the snake Engine to the arcade's frame clock. The engine
// moves once every moveEvery frames.
type Game struct {
	engine    *Engine
	cfg       config.SnakeConfig
	runtime   core.RuntimeConfig
	moveEvery int
	frame     int
	paused    bool
	highScore int
}

// New creates a new snake game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Snake"
}

// Reset loads the config on first use and prepares a fresh engine.
// The high score survives Resets.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false
	g.frame = 0

	if g.engine == nil {
		cfg, err := config.LoadSnake(configPath)
		if err != nil {
			cfg = config.DefaultSnakeConfig()
		}
		config.ApplySnakePreset(&cfg, presetFor(runtime))
		g.cfg = cfg
		g.engine = NewEngine(cfg, runtime.Seed)
	} else {
		g.engine.Restart()
	}
	g.moveEvery = runtime.FramesFor(g.cfg.TickInterval)
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step applies input and advances the frame clock by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	e := g.engine
	running := e.Phase() == PhaseRunning

	if in.Has(core.ActionPause) && running {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.paused = false
		g.frame = 0
		e.Restart()
	}
	if !running && (in.Has(core.ActionConfirm) || in.Has(core.ActionJump)) {
		g.frame = 0
		e.Start()
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Presses apply in arrival order; the last valid one is what moves.
	for _, a := range in.Steering() {
		e.SetDirection(steerDirections[a])
	}

	if e.Phase() == PhaseRunning {
		g.frame++
		if g.frame >= g.moveEvery {
			g.frame = 0
			e.Tick()
		}
	}

	if e.Score() > g.highScore {
		g.highScore = e.Score()
	}
	return core.StepResult{State: g.State()}
}

// Render draws the board centered below the HUD row.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	e := g.engine
	size := e.GridSize()

	boardW := size*cellWidth + 2
	boardH := size + 2
	if dst.Width() < boardW || dst.Height() < boardH+1 {
		dst.DrawMessageBox("SNAKE", fmt.Sprintf("Need %dx%d terminal", boardW, boardH+1))
		return
	}

	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  HI: %d ", e.Score(), g.highScore))

	board := core.NewRect((dst.Width()-boardW)/2, 1+(dst.Height()-1-boardH)/2, boardW, boardH)
	dst.DrawBox(board)

	cellRect := func(c Cell) core.Rect {
		return core.NewRect(board.X+1+c.X*cellWidth, board.Y+1+c.Y, cellWidth, 1)
	}

	if f := e.Food(); f.X >= 0 {
		dst.FillRect(cellRect(f), foodGlyph, core.ColorRed)
	}
	for i, c := range e.Snake() {
		if i == 0 {
			dst.FillRect(cellRect(c), headGlyph, core.ColorGreen)
			continue
		}
		dst.FillRect(cellRect(c), bodyGlyph, core.ColorGreen)
	}

	switch {
	case e.Phase() == PhaseNotStarted:
		dst.DrawMessageBox("SNAKE", "Press ENTER to start")
	case e.Phase() == PhaseWon:
		dst.DrawMessageBox("YOU WIN", fmt.Sprintf("Score: %d  |  R to restart", e.Score()))
	case e.Phase() == PhaseOver:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  R to restart", e.Score()))
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
		Score:     e.Score(),
		HighScore: g.highScore,
		Phase:     e.Phase().String(),
		GameOver:  e.Phase() == PhaseOver || e.Phase() == PhaseWon,
		Paused:    g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}
