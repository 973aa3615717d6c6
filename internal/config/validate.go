package config

import (
	"errors"
	"fmt"
)

// Validate rejects runner configs the engine cannot simulate.
func (c RunnerConfig) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("runner: world must be positive, got %vx%v", w.Width, w.Height)
	}
	if w.GroundHeight < 0 || w.GroundHeight >= w.Height {
		return fmt.Errorf("runner: ground_height %v outside world height %v", w.GroundHeight, w.Height)
	}
	if c.Player.Stand.Width <= 0 || c.Player.Stand.Height <= 0 {
		return errors.New("runner: player stand size must be positive")
	}
	if len(c.Obstacles.Small) == 0 || len(c.Obstacles.Large) == 0 {
		return errors.New("runner: obstacles need at least one small and one large size")
	}
	if c.Obstacles.MaxActive < 1 {
		return fmt.Errorf("runner: max_active must be at least 1, got %d", c.Obstacles.MaxActive)
	}
	if c.Scoring.FramesPerPoint < 1 {
		return fmt.Errorf("runner: frames_per_point must be at least 1, got %d", c.Scoring.FramesPerPoint)
	}
	return nil
}

// Validate checks the grid and the starting body: at least two distinct
// cells inside the grid, each adjacent to the next.
func (c SnakeConfig) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("snake: grid_size must be positive, got %d", c.GridSize)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("snake: tick_interval must be positive, got %v", c.TickInterval)
	}
	if len(c.Start) < 2 {
		return fmt.Errorf("snake: start needs at least 2 cells, got %d", len(c.Start))
	}
	if c.GridSize*c.GridSize <= len(c.Start) {
		return fmt.Errorf("snake: start body of %d cells fills a %dx%d grid", len(c.Start), c.GridSize, c.GridSize)
	}

	seen := make(map[[2]int]bool, len(c.Start))
	for i, cell := range c.Start {
		if !c.inGrid(cell) {
			return fmt.Errorf("snake: start cell %v outside the grid", cell)
		}
		if seen[cell] {
			return fmt.Errorf("snake: start cell %v repeated", cell)
		}
		seen[cell] = true
		if i > 0 && !adjacent(c.Start[i-1], cell) {
			return fmt.Errorf("snake: start cells %v and %v are not adjacent", c.Start[i-1], cell)
		}
	}
	if !c.inGrid(c.Food) {
		return fmt.Errorf("snake: food %v outside the grid", c.Food)
	}
	return nil
}

func (c SnakeConfig) inGrid(cell [2]int) bool {
	return cell[0] >= 0 && cell[0] < c.GridSize && cell[1] >= 0 && cell[1] < c.GridSize
}

func adjacent(a, b [2]int) bool {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx+dy*dy == 1
}

// Validate checks item ids are present and unique and prices positive.
func (c StoreConfig) Validate() error {
	seen := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("store: item %q has no id", it.Name)
		}
		if it.Price <= 0 {
			return fmt.Errorf("store: item %q has non-positive price %d", it.ID, it.Price)
		}
		if seen[it.ID] {
			return fmt.Errorf("store: duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}
