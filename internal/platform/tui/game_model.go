package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/registry"
	"github.com/mdlunited/arcade/internal/storage"
)

// lastGen hands out tick generations so every GameModel owns its loop.
var lastGen atomic.Uint64

// GameModel hosts one game: it feeds key input to the game once per tick,
// renders its screen and records the final score.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	pending    int // Score of a run that may still be revived, 0 if none
	gen        uint64
	standalone bool // Own program: leaving quits it
	stopped    bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. A zero seed is replaced with the
// current time.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	game.Reset(cfg)

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.Default(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		gen:        lastGen.Add(1),
	}
}

// WithLogger returns a copy of m that logs through logger.
func (m GameModel) WithLogger(logger *log.Logger) GameModel {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.gen, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Games read the screen size on every Render, so no Reset here.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen || m.stopped {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey buffers the key's actions until the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.flushPending()
		m.quitting = true
		m.stopped = true
		return m, tea.Quit
	}

	// Back leaves only from a screen where nothing is in motion.
	if m.inputFrame.Has(core.ActionBack) && m.canLeave() {
		m.flushPending()
		m.backToMenu = true
		m.stopped = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m GameModel) canLeave() bool {
	s := m.gameState
	return s.GameOver || s.Paused || s.Phase == "not_started"
}

// handleTick steps the game once with the buffered input.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver
	reviving := m.inputFrame.Has(core.ActionRevive)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	switch {
	case m.gameState.GameOver && !wasOver:
		m.endRun()
	case wasOver && !m.gameState.GameOver:
		// A revive continues the same run; anything else starts a new one.
		if reviving {
			m.pending = 0
		} else {
			m.flushPending()
		}
	}

	return m, tickCmd(m.gen, m.config.TickRate)
}

// endRun records the score of a run that just ended. While a revive is
// still available the score is held back, so a revived run is saved once.
func (m *GameModel) endRun() {
	if m.gameState.CanRevive {
		m.pending = m.gameState.Score
		return
	}
	m.pending = 0
	m.saveScore(m.gameState.Score)
}

// flushPending saves a held-back score once the revive can no longer happen.
func (m *GameModel) flushPending() {
	if m.pending > 0 {
		m.saveScore(m.pending)
		m.pending = 0
	}
}

// saveScore records a finished run. Zero scores are not kept.
func (m GameModel) saveScore(score int) {
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last state reported by the game.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own Bubble Tea program. It reports whether the
// player asked to quit rather than go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (quit bool, err error) {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return true, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return true, nil
	}
	return !m.BackToMenu(), nil
}
