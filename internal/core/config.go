package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	Difficulty string // Preset name; empty means the game's default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FramesFor converts a wall-clock interval into a whole number of host
// ticks at this config's tick rate. Never returns less than 1.
func (c RuntimeConfig) FramesFor(d time.Duration) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	frames := int((d*time.Duration(rate) + time.Second/2) / time.Second)
	if frames < 1 {
		frames = 1
	}
	return frames
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	HighScore int    // Best score seen by this game instance
	Phase     string // Engine phase name ("not_started", "running", ...)
	GameOver  bool   // Whether the game has ended
	Paused    bool   // Whether the game is paused
	CanRevive bool   // Whether a one-time revive is currently available
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
