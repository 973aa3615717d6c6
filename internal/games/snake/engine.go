// Package snake implements the classic grid snake game.
// The Engine advances one cell per Tick; the Game type adapts it to the
// arcade platform's frame clock.
package snake

import (
	"math/rand"

	"github.com/mdlunited/arcade/internal/config"
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Add returns the cell one step away in direction d.
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// Reverses reports whether d points back along o's axis of travel.
func (d Direction) Reverses(o Direction) bool {
	return (o.DX != 0 && d.DX == -o.DX) || (o.DY != 0 && d.DY == -o.DY)
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseOver
	PhaseWon // Snake fills the grid
)

// String returns the phase name used in GameState.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Engine owns all mutable snake state.
type Engine struct {
	cfg  config.SnakeConfig
	rng  *rand.Rand
	size int

	snake   []Cell // Head at index 0
	food    Cell
	heading Direction
	pending Direction

	score int
	phase Phase
	ticks uint64
}

// NewEngine creates an engine in PhaseNotStarted showing the configured
// starting snake and food.
func NewEngine(cfg config.SnakeConfig, seed int64) *Engine {
	e := &Engine{
		cfg:  cfg,
		rng:  rand.New(rand.NewSource(seed)),
		size: cfg.GridSize,
	}
	e.resetSnake()

	e.food = Cell{X: cfg.Food[0], Y: cfg.Food[1]}
	if !e.inBounds(e.food) || e.occupied(e.food) {
		e.placeFood()
	}
	return e
}

// Start begins the first run using the configured food cell, or restarts
// a finished one. No-op while running.
func (e *Engine) Start() {
	switch e.phase {
	case PhaseNotStarted:
		e.phase = PhaseRunning
	case PhaseOver, PhaseWon:
		e.Restart()
	}
}

// Restart resets the snake, heading and score and places fresh food.
func (e *Engine) Restart() {
	e.resetSnake()
	e.score = 0
	e.phase = PhaseRunning
	if !e.placeFood() {
		e.phase = PhaseWon
	}
}

func (e *Engine) resetSnake() {
	e.snake = e.snake[:0]
	for _, c := range e.cfg.Start {
		e.snake = append(e.snake, Cell{X: c[0], Y: c[1]})
	}

	// Initial heading points from the second segment to the head.
	e.heading = DirRight
	if len(e.snake) >= 2 {
		d := Direction{DX: e.snake[0].X - e.snake[1].X, DY: e.snake[0].Y - e.snake[1].Y}
		if d == DirUp || d == DirDown || d == DirLeft || d == DirRight {
			e.heading = d
		}
	}
	e.pending = e.heading
}

// SetDirection buffers a heading change for the next tick. A request that
// reverses the active heading is rejected and leaves the buffer as is, so
// the last valid request between ticks wins.
func (e *Engine) SetDirection(d Direction) bool {
	if d.Reverses(e.heading) || (d.DX == 0 && d.DY == 0) {
		return false
	}
	e.pending = d
	return true
}

// Tick advances the snake one cell. Does nothing unless running.
func (e *Engine) Tick() {
	if e.phase != PhaseRunning {
		return
	}
	e.ticks++

	if !e.pending.Reverses(e.heading) {
		e.heading = e.pending
	}
	head := e.snake[0].Add(e.heading)

	if !e.inBounds(head) || e.occupied(head) {
		e.phase = PhaseOver
		return
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = head

	if head != e.food {
		e.snake = e.snake[:len(e.snake)-1]
		return
	}

	e.score++
	if !e.placeFood() {
		e.phase = PhaseWon
	}
}

// placeFood moves the food to a random free cell. Random probes come first;
// if they all land on the snake, a free cell is picked uniformly from the
// full list. Returns false when the grid is full.
func (e *Engine) placeFood() bool {
	free := e.size*e.size - len(e.snake)
	if free <= 0 {
		e.food = Cell{X: -1, Y: -1}
		return false
	}

	for i := 0; i < e.cfg.FoodAttempts; i++ {
		c := Cell{X: e.rng.Intn(e.size), Y: e.rng.Intn(e.size)}
		if !e.occupied(c) {
			e.food = c
			return true
		}
	}

	cells := make([]Cell, 0, free)
	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			if c := (Cell{X: x, Y: y}); !e.occupied(c) {
				cells = append(cells, c)
			}
		}
	}
	e.food = cells[e.rng.Intn(len(cells))]
	return true
}

func (e *Engine) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < e.size && c.Y >= 0 && c.Y < e.size
}

func (e *Engine) occupied(c Cell) bool {
	for _, s := range e.snake {
		if s == c {
			return true
		}
	}
	return false
}

// Snake returns a copy of the body, head first.
func (e *Engine) Snake() []Cell {
	out := make([]Cell, len(e.snake))
	copy(out, e.snake)
	return out
}

// Food returns the food cell, or (-1,-1) when the grid is full.
func (e *Engine) Food() Cell { return e.food }

// Score returns the number of food eaten this run.
func (e *Engine) Score() int { return e.score }

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Heading returns the direction applied on the last tick.
func (e *Engine) Heading() Direction { return e.heading }

// GridSize returns the grid's side length.
func (e *Engine) GridSize() int { return e.size }
