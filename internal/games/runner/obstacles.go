package runner

import (
	"math/rand"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
)

// Kind distinguishes ground obstacles from flying ones.
type Kind int

const (
	KindGround Kind = iota
	KindFlying
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	if k == KindFlying {
		return "flying"
	}
	return "ground"
}

// Obstacle is one scrolling hazard in world coordinates.
type Obstacle struct {
	X, Y  float64
	W, H  float64
	Kind  Kind
	Large bool // Ground only: drawn from the large group
	Count int  // Ground only: cluster size, 1..3
	Frame int  // Flying only: wing frame
}

// Box returns the sprite bounds.
func (o Obstacle) Box() core.RectF {
	return core.RectF{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// ObstacleField handles spawning, movement, and removal of obstacles.
// Obstacles are kept in spawn order.
type ObstacleField struct {
	items []Obstacle
	rng   *rand.Rand
	cfg   *config.RunnerConfig
}

// NewObstacleField creates an empty field drawing randomness from rng.
func NewObstacleField(rng *rand.Rand, cfg *config.RunnerConfig) *ObstacleField {
	return &ObstacleField{
		items: make([]Obstacle, 0, 4),
		rng:   rng,
		cfg:   cfg,
	}
}

// Reset clears all obstacles.
func (f *ObstacleField) Reset() {
	f.items = f.items[:0]
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.items)
}

// Items returns the live obstacles, front to back.
func (f *ObstacleField) Items() []Obstacle {
	return f.items
}

// Prune drops obstacles whose trailing edge has scrolled to x <= 0.
func (f *ObstacleField) Prune() {
	kept := f.items[:0]
	for _, o := range f.items {
		if o.X+o.W > 0 {
			kept = append(kept, o)
		}
	}
	f.items = kept
}

// Spawn appends a new obstacle at the right edge of the world.
func (f *ObstacleField) Spawn(score int) Obstacle {
	world := f.cfg.World
	oc := f.cfg.Obstacles

	var o Obstacle
	if score > oc.FlyingMinScore && len(oc.FlyingBands) > 0 && f.rng.Intn(2) == 0 {
		size := world.Scaled(oc.Flying)
		band := oc.FlyingBands[f.rng.Intn(len(oc.FlyingBands))]
		o = Obstacle{
			X:    world.Width,
			Y:    world.GroundY() - band,
			W:    size.Width,
			H:    size.Height,
			Kind: KindFlying,
		}
	} else {
		large := f.rng.Intn(2) == 0
		group := oc.Small
		if large {
			group = oc.Large
		}
		idx := f.rng.Intn(len(group))
		size := world.Scaled(group[idx])
		o = Obstacle{
			X:     world.Width,
			Y:     world.GroundY() - size.Height,
			W:     size.Width,
			H:     size.Height,
			Kind:  KindGround,
			Large: large,
			Count: idx + 1,
		}
	}

	f.items = append(f.items, o)
	return o
}

// Advance moves every obstacle left by speed and sets the flying wing frame.
func (f *ObstacleField) Advance(speed float64, wingFrame int) {
	for i := range f.items {
		f.items[i].X -= speed
		if f.items[i].Kind == KindFlying {
			f.items[i].Frame = wingFrame
		}
	}
}

// FirstHit returns the index of the first obstacle, in spawn order, whose
// inset hitbox overlaps the given player hitbox.
func (f *ObstacleField) FirstHit(player core.RectF) (int, bool) {
	inset := f.cfg.Obstacles.Hitbox
	for i, o := range f.items {
		if player.Intersects(o.Box().Inset(inset.DX, inset.DW, inset.DH)) {
			return i, true
		}
	}
	return -1, false
}
