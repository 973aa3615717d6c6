// Package runner implements a Chrome Dino-style endless runner.
// The Engine is a pure fixed-step simulation in world pixels; the Game type
// adapts it to the arcade platform.
package runner

import (
	"math"
	"math/rand"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
)

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseReviving // Running inside the post-revive spawn grace period
	PhaseGameOver
)

// String returns the phase name used in GameState.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseReviving:
		return "reviving"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Active reports whether Step advances the simulation in this phase.
func (p Phase) Active() bool {
	return p == PhaseRunning || p == PhaseReviving
}

// Player is the runner's avatar in world coordinates.
type Player struct {
	X, Y      float64
	VY        float64
	W, H      float64
	OnGround  bool
	Crouching bool
}

// Box returns the sprite bounds.
func (p Player) Box() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Engine owns all mutable runner state. It is not safe for concurrent use;
// one driver calls Step and the input methods on the same goroutine.
type Engine struct {
	cfg       config.RunnerConfig
	rng       *rand.Rand
	player    Player
	obstacles *ObstacleField

	phase      Phase
	hasRevived bool
	keyDown    bool // Shared press latch, cleared by any release

	score         int
	highScore     int
	speed         float64
	scoreTimer    int
	spawnCooldown int
	groundScroll  float64
	frameTimer    int
	animFrame     int
	frames        uint64
	deaths        int
}

// NewEngine creates an engine in PhaseNotStarted.
func NewEngine(cfg config.RunnerConfig, seed int64) *Engine {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	e.obstacles = NewObstacleField(e.rng, &e.cfg)
	e.speed = cfg.Speed.Speed(0)
	e.resetPlayer()
	return e
}

// Start begins a run from NotStarted or GameOver. No-op while running.
func (e *Engine) Start() {
	if e.phase.Active() {
		return
	}
	e.Restart()
}

// Restart begins a fresh run: score back to 0 and the revive restored.
func (e *Engine) Restart() {
	e.phase = PhaseRunning
	e.hasRevived = false

	e.score = 0
	e.speed = e.cfg.Speed.Speed(0)
	e.scoreTimer = 0
	e.spawnCooldown = 0
	e.groundScroll = 0
	e.frameTimer = 0
	e.animFrame = 0
	e.obstacles.Reset()
	e.resetPlayer()
}

// Revive resumes a finished run keeping its score. Allowed once per run;
// returns false when unavailable.
func (e *Engine) Revive() bool {
	if !e.CanRevive() {
		return false
	}
	e.phase = PhaseReviving
	e.hasRevived = true

	e.speed = e.cfg.Speed.Speed(e.score)
	e.obstacles.Reset()
	e.spawnCooldown = -e.cfg.Scoring.ReviveGrace
	e.resetPlayer()
	if e.spawnCooldown >= 0 {
		e.phase = PhaseRunning
	}
	return true
}

// CanRevive reports whether Revive would succeed now.
func (e *Engine) CanRevive() bool {
	return e.phase == PhaseGameOver && !e.hasRevived
}

func (e *Engine) resetPlayer() {
	stand := e.cfg.World.Scaled(e.cfg.Player.Stand)
	e.player = Player{
		X:        e.cfg.Player.X,
		Y:        e.cfg.World.GroundY() - stand.Height,
		W:        stand.Width,
		H:        stand.Height,
		OnGround: true,
	}
}

// Step advances one frame. Does nothing unless the run is active.
func (e *Engine) Step() {
	if !e.phase.Active() {
		return
	}
	e.frames++

	e.obstacles.Prune()
	e.speed = e.cfg.Speed.Speed(e.score)

	e.stepPlayer()
	e.stepSpawner()

	e.frameTimer = (e.frameTimer + 1) % 10
	if e.frameTimer == 9 {
		e.animFrame = 1 - e.animFrame
	}
	e.obstacles.Advance(e.speed, (e.frameTimer/5)%2)

	if _, hit := e.obstacles.FirstHit(e.PlayerHitbox()); hit {
		e.endRun()
		return
	}

	e.scoreTimer++
	if e.scoreTimer >= e.cfg.Scoring.FramesPerPoint {
		e.score++
		e.scoreTimer = 0
	}

	e.groundScroll = math.Mod(e.groundScroll+e.speed, e.cfg.World.GroundTileWidth)
}

func (e *Engine) stepPlayer() {
	p := &e.player
	size := e.cfg.World.Scaled(e.cfg.Player.Stand)
	if p.Crouching {
		size = e.cfg.World.Scaled(e.cfg.Player.Crouch)
	}
	p.W, p.H = size.Width, size.Height

	p.VY += e.cfg.Physics.Gravity
	p.Y += p.VY

	floor := e.cfg.World.GroundY() - p.H
	if p.Y > floor {
		p.Y = floor
		p.VY = 0
		p.OnGround = true
	}
}

func (e *Engine) stepSpawner() {
	oc := e.cfg.Obstacles
	e.spawnCooldown++
	if e.phase == PhaseReviving && e.spawnCooldown >= 0 {
		e.phase = PhaseRunning
	}
	if e.spawnCooldown > oc.SpawnAfter &&
		e.rng.Float64() < oc.SpawnChance &&
		e.obstacles.Len() < oc.MaxActive {
		e.obstacles.Spawn(e.score)
		e.spawnCooldown = 0
	}
}

func (e *Engine) endRun() {
	e.phase = PhaseGameOver
	e.deaths++
	if e.score > e.highScore {
		e.highScore = e.score
	}
}

// PressJump handles a jump key press. Presses are ignored while any key is
// held (the latch survives game over). Outside an active run the press
// starts a fresh run instead.
func (e *Engine) PressJump() {
	if e.keyDown {
		return
	}
	if !e.phase.Active() {
		e.Restart()
		return
	}
	e.keyDown = true
	if e.player.OnGround && !e.player.Crouching {
		e.player.VY = -e.cfg.Physics.JumpImpulse
		e.player.OnGround = false
	}
}

// ReleaseJump handles a jump key release.
func (e *Engine) ReleaseJump() {
	e.keyDown = false
}

// PressCrouch handles a crouch key press; only takes effect on the ground.
func (e *Engine) PressCrouch() {
	if e.keyDown || !e.phase.Active() {
		return
	}
	e.keyDown = true
	if e.player.OnGround {
		e.player.Crouching = true
	}
}

// ReleaseCrouch handles a crouch key release.
func (e *Engine) ReleaseCrouch() {
	e.keyDown = false
	e.player.Crouching = false
}

// PlayerHitbox returns the player's inset collision box.
func (e *Engine) PlayerHitbox() core.RectF {
	h := e.cfg.Player.Hitbox
	return e.player.Box().Inset(h.DX, h.DW, h.DH)
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the raw score (+1 per FramesPerPoint frames).
func (e *Engine) Score() int { return e.score }

// DisplayScore returns the score as shown on the scoreboard.
func (e *Engine) DisplayScore() int { return e.displayed(e.score) }

// HighScore returns the best raw score of this engine's lifetime.
func (e *Engine) HighScore() int { return e.highScore }

// DisplayHighScore returns the high score as shown on the scoreboard.
func (e *Engine) DisplayHighScore() int { return e.displayed(e.highScore) }

func (e *Engine) displayed(v int) int {
	if d := e.cfg.Scoring.DisplayDivisor; d > 1 {
		return v / d
	}
	return v
}

// Speed returns the current scroll speed.
func (e *Engine) Speed() float64 { return e.speed }

// Player returns a copy of the player state.
func (e *Engine) Player() Player { return e.player }

// Obstacles returns the live obstacles, front to back.
func (e *Engine) Obstacles() []Obstacle { return e.obstacles.Items() }

// GroundScroll returns the ground tile offset in [0, GroundTileWidth).
func (e *Engine) GroundScroll() float64 { return e.groundScroll }

// AnimFrame returns the run-cycle frame (0 or 1).
func (e *Engine) AnimFrame() int { return e.animFrame }

// HasRevived reports whether the revive was used this run.
func (e *Engine) HasRevived() bool { return e.hasRevived }

// Config returns the engine's configuration.
func (e *Engine) Config() config.RunnerConfig { return e.cfg }
