package runner

// Snapshot captures the engine state for determinism testing and replay.
type Snapshot struct {
	Frames        uint64
	Phase         Phase
	Score         int
	HighScore     int
	Speed         float64
	PlayerY       float64
	PlayerVY      float64
	OnGround      bool
	Crouching     bool
	Obstacles     int
	FirstObstacle float64 // X of the front obstacle, 0 when none
	SpawnCooldown int
	GroundScroll  float64
	HasRevived    bool
	Deaths        int
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	first := 0.0
	if items := e.obstacles.Items(); len(items) > 0 {
		first = items[0].X
	}
	return Snapshot{
		Frames:        e.frames,
		Phase:         e.phase,
		Score:         e.score,
		HighScore:     e.highScore,
		Speed:         e.speed,
		PlayerY:       e.player.Y,
		PlayerVY:      e.player.VY,
		OnGround:      e.player.OnGround,
		Crouching:     e.player.Crouching,
		Obstacles:     e.obstacles.Len(),
		FirstObstacle: first,
		SpawnCooldown: e.spawnCooldown,
		GroundScroll:  e.groundScroll,
		HasRevived:    e.hasRevived,
		Deaths:        e.deaths,
	}
}
