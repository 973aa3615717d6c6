package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/mdlunited/arcade/internal/core"
	"github.com/mdlunited/arcade/internal/registry"
	"github.com/mdlunited/arcade/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves the arcade menu to every SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates the server. store may be nil, in which case scores
// are not kept.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger.WithPrefix("ssh"),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middlewares run last to first: logging wraps the whole session.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewSessionModel(s.store, cfg, sess.User()).WithLogger(s.logger)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs session start and end with the session length.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe blocks serving sessions until ctx is done, then shuts the
// server down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenDifficulty
	screenGame
	screenScoreboard
)

// SessionModel runs a whole session in one program:
// menu, difficulty, game, and back to the menu. Tab opens the scoreboard.
type SessionModel struct {
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	username string
	screen   sessionScreen

	menu       MenuModel
	difficulty DifficultyModel
	game       GameModel
	scoreboard ScoreboardModel
	gameID     string

	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		logger:   log.Default(),
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg),
	}
}

// WithLogger returns a copy of m that logs through logger.
func (m SessionModel) WithLogger(logger *log.Logger) SessionModel {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes msg to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenDifficulty:
		return m.updateDifficulty(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		m.gameID = m.menu.Selected().GameID
		m.difficulty = NewDifficultyModel(registry.Title(m.gameID), m.config.Difficulty, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenDifficulty
		return m, m.difficulty.Init()
	}

	return m, cmd
}

func (m SessionModel) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.difficulty.Update(msg)
	if dm, ok := next.(DifficultyModel); ok {
		m.difficulty = dm
	}

	switch {
	case m.difficulty.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.difficulty.WantsBack():
		return m.toMenu()
	case m.difficulty.Chosen():
		m.config.Difficulty = m.difficulty.Choice()
		return m.startGame()
	}
	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	game, err := registry.Create(m.gameID)
	if err != nil {
		m.logger.Error("cannot create game", "game", m.gameID, "error", err)
		return m.toMenu()
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	m.game = NewGameModel(game, m.store, cfg).WithLogger(m.logger)
	m.screen = screenGame

	m.logger.Info("game started", "user", m.username, "game", m.gameID, "difficulty", cfg.Difficulty)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.logger.Info("game ended", "user", m.username, "game", m.gameID, "score", m.game.State().Score)
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sm, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sm
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so high scores are fresh.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.store, m.config)
	m.screen = screenMenu
	m.gameID = ""
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenDifficulty:
		return m.difficulty.View()
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
