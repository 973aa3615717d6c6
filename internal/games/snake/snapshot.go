package snake

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Ticks    uint64
	Phase    Phase
	Score    int
	SnakeLen int
	Head     Cell
	Heading  Direction
	Food     Cell
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	var head Cell
	if len(e.snake) > 0 {
		head = e.snake[0]
	}
	return Snapshot{
		Ticks:    e.ticks,
		Phase:    e.phase,
		Score:    e.score,
		SnakeLen: len(e.snake),
		Head:     head,
		Heading:  e.heading,
		Food:     e.food,
	}
}
