// Package registry maps game ids to factories. Game packages register
// from init(), so the platform only needs a blank import to offer a game.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mdlunited/arcade/internal/core"
)

// Game is the contract between a simulation and the platform host.
// Implementations are pure: no terminal, network or clock access. The host
// owns input mapping, frame pacing and presentation.
type Game interface {
	// ID is the stable identifier used by the CLI and the score table.
	ID() string

	// Title is the display name shown in menus.
	Title() string

	// Reset prepares a new run. The host calls it once before the first
	// Step and again whenever it wants a fresh run.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by exactly one host frame.
	Step(in core.InputFrame) core.StepResult

	// Render paints the current state into dst.
	Render(dst *core.Screen)

	// State projects the fields the host needs (score, phase, flags).
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. It panics on a duplicate id or when
// the factory's game reports a different id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: factory for %q builds game %q", id, g.ID()))
	}
	entries[id] = entry{factory: f, title: g.Title()}
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Title returns the display name for id, or id itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if e, ok := entries[id]; ok {
		return e.title
	}
	return id
}
