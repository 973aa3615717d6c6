package runner

import (
	"math"
	"testing"

	"github.com/mdlunited/arcade/internal/config"
)

func newTestEngine(seed int64) *Engine {
	e := NewEngine(config.DefaultRunnerConfig(), seed)
	e.Start()
	return e
}

// standingFloor is the player's Y when standing on the ground.
func standingFloor(e *Engine) float64 {
	return e.cfg.World.GroundY() - e.cfg.World.Scaled(e.cfg.Player.Stand).Height
}

// smallCactus returns a one-cactus ground obstacle resting on the ground at x.
func smallCactus(e *Engine, x float64) Obstacle {
	size := e.cfg.World.Scaled(e.cfg.Obstacles.Small[0])
	return Obstacle{
		X:     x,
		Y:     e.cfg.World.GroundY() - size.Height,
		W:     size.Width,
		H:     size.Height,
		Kind:  KindGround,
		Count: 1,
	}
}

func flyingAt(e *Engine, band float64, x float64) Obstacle {
	size := e.cfg.World.Scaled(e.cfg.Obstacles.Flying)
	return Obstacle{
		X:    x,
		Y:    e.cfg.World.GroundY() - band,
		W:    size.Width,
		H:    size.Height,
		Kind: KindFlying,
	}
}

// kill places a cactus on top of the player and steps once.
func kill(t *testing.T, e *Engine) {
	t.Helper()
	e.obstacles.items = append(e.obstacles.items, smallCactus(e, e.player.X+e.speed+20))
	e.Step()
	if e.Phase() != PhaseGameOver {
		t.Fatalf("expected game over after collision, got %v", e.Phase())
	}
}

func TestNewEngineNotStarted(t *testing.T) {
	e := NewEngine(config.DefaultRunnerConfig(), 1)
	if e.Phase() != PhaseNotStarted {
		t.Fatalf("Phase() = %v, expected not_started", e.Phase())
	}

	e.Step()
	if e.Snapshot().Frames != 0 {
		t.Error("Step before Start should not advance the simulation")
	}
}

func TestFreshStartScenario(t *testing.T) {
	e := newTestEngine(7)
	floor := standingFloor(e)

	for frame := 1; frame <= e.cfg.Obstacles.SpawnAfter; frame++ {
		e.Step()

		p := e.Player()
		if !p.OnGround || p.Y != floor {
			t.Fatalf("frame %d: player left the ground without input (y=%v)", frame, p.Y)
		}
		if e.Score() != frame/5 {
			t.Fatalf("frame %d: score = %d, expected %d", frame, e.Score(), frame/5)
		}
		if len(e.Obstacles()) != 0 {
			t.Fatalf("frame %d: obstacle spawned before the cooldown elapsed", frame)
		}
	}
}

func TestScoreNonDecreasing(t *testing.T) {
	e := newTestEngine(99)
	prev := 0
	for frame := 0; frame < 20000 && e.Phase().Active(); frame++ {
		if frame%37 == 0 {
			e.PressJump()
		}
		if frame%37 == 3 {
			e.ReleaseJump()
		}
		e.Step()

		if e.Score() < prev {
			t.Fatalf("frame %d: score decreased %d -> %d", frame, prev, e.Score())
		}
		prev = e.Score()

		if n := len(e.Obstacles()); n > e.cfg.Obstacles.MaxActive {
			t.Fatalf("frame %d: %d obstacles exceeds cap %d", frame, n, e.cfg.Obstacles.MaxActive)
		}
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	tests := []struct {
		score    int
		expected float64
	}{
		{0, 7},
		{250, 9.5},
		{550, 12.5},
		{1000, 17},
		{4000, 17},
	}

	for _, tc := range tests {
		e := newTestEngine(1)
		e.score = tc.score
		e.Step()
		if got := e.Speed(); got != tc.expected {
			t.Errorf("score %d: Speed() = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestCollisionMatchesInsetOverlap(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	inset := cfg.Obstacles.Hitbox

	for x := 0.0; x <= 160; x += 0.5 {
		e := newTestEngine(3)
		e.obstacles.items = append(e.obstacles.items, smallCactus(e, x+e.speed))
		e.Step()

		obstacle := smallCactus(e, x).Box().Inset(inset.DX, inset.DW, inset.DH)
		want := e.PlayerHitbox().Intersects(obstacle)
		got := e.Phase() == PhaseGameOver
		if got != want {
			t.Fatalf("cactus at x=%v: game over = %v, inset overlap = %v", x, got, want)
		}
	}
}

func TestCollisionBoundaryTouching(t *testing.T) {
	e := newTestEngine(3)
	player := e.PlayerHitbox()
	inset := e.cfg.Obstacles.Hitbox

	// Obstacle hitbox left edge exactly on the player hitbox right edge.
	touching := smallCactus(e, player.Right()-inset.DX)
	e.obstacles.items = []Obstacle{touching}
	if _, hit := e.obstacles.FirstHit(player); hit {
		t.Error("touching hitboxes should not collide")
	}

	e.obstacles.items = []Obstacle{smallCactus(e, player.Right()-inset.DX-0.01)}
	if _, hit := e.obstacles.FirstHit(player); !hit {
		t.Error("hitboxes overlapping by a hair should collide")
	}

	// Sprite bounds overlap but the inset hitboxes do not.
	grazing := smallCactus(e, e.player.Box().Right()-8)
	if !grazing.Box().Intersects(e.player.Box()) {
		t.Fatal("test setup: sprites should overlap")
	}
	e.obstacles.items = []Obstacle{grazing}
	if _, hit := e.obstacles.FirstHit(player); hit {
		t.Error("sprite-only overlap should not collide")
	}
}

func TestFirstHitInSpawnOrder(t *testing.T) {
	e := newTestEngine(3)
	x := e.player.X + 20
	e.obstacles.items = []Obstacle{smallCactus(e, 500), smallCactus(e, x), smallCactus(e, x+5)}

	idx, hit := e.obstacles.FirstHit(e.PlayerHitbox())
	if !hit || idx != 1 {
		t.Errorf("FirstHit() = %d, %v, expected 1, true", idx, hit)
	}
}

func TestCollisionHaltsFrame(t *testing.T) {
	e := newTestEngine(3)
	e.score = 42
	e.scoreTimer = e.cfg.Scoring.FramesPerPoint - 1 // would score this frame
	before := e.Score()
	kill(t, e)

	if e.Score() != before {
		t.Errorf("score changed on the collision frame: %d -> %d", before, e.Score())
	}
	if e.HighScore() != before {
		t.Errorf("HighScore() = %d, expected %d", e.HighScore(), before)
	}

	snap := e.Snapshot()
	e.Step()
	if e.Snapshot() != snap {
		t.Error("Step after game over should be a no-op")
	}
}

func TestCrouchAvoidsHighFlyer(t *testing.T) {
	e := newTestEngine(3)
	e.cfg.Obstacles.SpawnChance = 0
	x := e.player.X + e.speed

	// Highest band clears a crouching player but not a standing one.
	standing := newTestEngine(3)
	standing.obstacles.items = []Obstacle{flyingAt(standing, 110, x)}
	standing.Step()
	if standing.Phase() != PhaseGameOver {
		t.Error("standing player should hit a band-110 flyer")
	}

	e.PressCrouch()
	for i := 0; i < 20; i++ { // settle onto the lower crouch floor
		e.Step()
	}
	e.obstacles.items = []Obstacle{flyingAt(e, 110, x)}
	e.Step()
	if e.Phase() != PhaseRunning {
		t.Error("crouching player should pass under a band-110 flyer")
	}
}

func TestJumpIsEdgeTriggered(t *testing.T) {
	e := newTestEngine(5)
	e.cfg.Obstacles.SpawnChance = 0

	e.PressJump()
	if e.Player().OnGround || e.Player().VY != -e.cfg.Physics.JumpImpulse {
		t.Fatalf("jump from ground should launch the player, got %+v", e.Player())
	}

	// Let the arc land while the key stays held.
	for i := 0; i < 100; i++ {
		e.Step()
	}
	if !e.Player().OnGround {
		t.Fatal("player should land after the arc")
	}

	e.PressJump() // still held: ignored
	if !e.Player().OnGround {
		t.Error("held jump key must not trigger another jump")
	}

	e.ReleaseJump()
	e.PressJump()
	if e.Player().OnGround {
		t.Error("jump after release should launch the player")
	}
}

func TestJumpIgnoredMidAir(t *testing.T) {
	e := newTestEngine(5)
	e.PressJump()
	e.ReleaseJump()
	e.Step()

	vy := e.Player().VY
	e.PressJump()
	if e.Player().VY != vy {
		t.Error("jump mid-air should be a no-op")
	}
}

func TestCrouchRules(t *testing.T) {
	e := newTestEngine(5)
	e.cfg.Obstacles.SpawnChance = 0

	e.PressCrouch()
	for i := 0; i < 20; i++ { // standing height drops onto the crouch floor
		e.Step()
	}
	p := e.Player()
	crouch := e.cfg.World.Scaled(e.cfg.Player.Crouch)
	if !p.Crouching || p.H != crouch.Height || p.Y != e.cfg.World.GroundY()-crouch.Height {
		t.Fatalf("crouch on ground failed: %+v", p)
	}

	// Jump does nothing while crouching (and the latch is held anyway).
	e.PressJump()
	if !e.Player().OnGround {
		t.Error("cannot jump while crouching")
	}

	e.ReleaseCrouch()
	e.Step()
	if e.Player().Crouching || e.Player().Y != standingFloor(e) {
		t.Errorf("release should stand the player up, got %+v", e.Player())
	}

	// Crouch mid-air is ignored.
	e.PressJump()
	e.ReleaseJump()
	e.Step()
	e.PressCrouch()
	if e.Player().Crouching {
		t.Error("crouch mid-air should be ignored")
	}
}

func TestJumpAfterGameOverRestarts(t *testing.T) {
	e := newTestEngine(11)
	for i := 0; i < 30; i++ {
		e.Step()
	}
	kill(t, e)

	e.PressJump()
	if e.Phase() != PhaseRunning || e.Score() != 0 {
		t.Errorf("jump after game over should restart, got phase %v score %d", e.Phase(), e.Score())
	}
	if !e.Player().OnGround {
		t.Error("restart press should not also jump")
	}
	if e.HighScore() != 6 {
		t.Errorf("HighScore() = %d, expected 6 to survive restart", e.HighScore())
	}
}

func TestReviveOncePerRun(t *testing.T) {
	e := newTestEngine(13)
	e.score = 400
	kill(t, e)
	score := e.Score()

	if !e.Revive() {
		t.Fatal("first revive should succeed")
	}
	if e.Phase() != PhaseReviving || e.Score() != score || len(e.Obstacles()) != 0 {
		t.Fatalf("revive state: phase %v score %d obstacles %d", e.Phase(), e.Score(), len(e.Obstacles()))
	}
	if e.Speed() != e.cfg.Speed.Speed(score) {
		t.Errorf("revive speed = %v, expected %v", e.Speed(), e.cfg.Speed.Speed(score))
	}
	if e.Revive() {
		t.Error("revive while running should fail")
	}

	kill(t, e)
	if e.Revive() || e.CanRevive() {
		t.Error("second revive in the same run should be a no-op")
	}
	if e.Phase() != PhaseGameOver {
		t.Errorf("failed revive changed phase to %v", e.Phase())
	}

	e.Restart()
	kill(t, e)
	if !e.CanRevive() {
		t.Error("restart should restore the revive")
	}
}

func TestReviveGracePeriod(t *testing.T) {
	e := newTestEngine(17)
	e.cfg.Obstacles.SpawnChance = 1 // spawn as soon as allowed
	kill(t, e)
	e.Revive()

	grace := e.cfg.Scoring.ReviveGrace
	for i := 1; i < grace; i++ {
		e.Step()
		if e.Phase() != PhaseReviving {
			t.Fatalf("step %d: phase %v, expected reviving", i, e.Phase())
		}
	}
	e.Step()
	if e.Phase() != PhaseRunning {
		t.Fatalf("grace over: phase %v, expected running", e.Phase())
	}

	for i := 0; i < e.cfg.Obstacles.SpawnAfter; i++ {
		e.Step()
		if len(e.Obstacles()) != 0 {
			t.Fatalf("obstacle spawned %d frames after grace", i+1)
		}
	}
	e.Step()
	if len(e.Obstacles()) != 1 {
		t.Errorf("expected a spawn once the cooldown passed, got %d obstacles", len(e.Obstacles()))
	}
}

func TestPruneOffscreen(t *testing.T) {
	e := newTestEngine(19)
	gone := smallCactus(e, 0)
	gone.X = -gone.W // trailing edge at 0
	e.obstacles.items = []Obstacle{gone, smallCactus(e, 600)}

	e.Step()
	if len(e.Obstacles()) != 1 || e.Obstacles()[0].X != 600-e.speed {
		t.Errorf("expected only the on-screen obstacle to survive, got %+v", e.Obstacles())
	}
}

func TestSpawnKinds(t *testing.T) {
	e := newTestEngine(23)
	groundY := e.cfg.World.GroundY()

	for i := 0; i < 200; i++ {
		o := e.obstacles.Spawn(e.cfg.Obstacles.FlyingMinScore)
		if o.Kind != KindGround {
			t.Fatalf("flying obstacle spawned at the threshold score")
		}
		if o.X != e.cfg.World.Width || math.Abs(o.Y+o.H-groundY) > 1e-9 {
			t.Fatalf("ground obstacle misplaced: %+v", o)
		}
		if o.Count < 1 || o.Count > 3 {
			t.Fatalf("cluster size %d out of range", o.Count)
		}
	}

	bands := map[float64]bool{}
	flying := 0
	for i := 0; i < 400; i++ {
		o := e.obstacles.Spawn(e.cfg.Obstacles.FlyingMinScore + 1)
		if o.Kind == KindFlying {
			flying++
			bands[groundY-o.Y] = true
		}
	}
	if flying == 0 || flying == 400 {
		t.Errorf("expected a mix of kinds above the threshold, got %d flying", flying)
	}
	for band := range bands {
		if band != 60 && band != 80 && band != 110 {
			t.Errorf("unexpected flying band %v", band)
		}
	}
}

func TestGroundScrollWraps(t *testing.T) {
	e := newTestEngine(29)
	e.cfg.Obstacles.SpawnChance = 0
	for i := 0; i < 2000; i++ {
		e.Step()
		if s := e.GroundScroll(); s < 0 || s >= e.cfg.World.GroundTileWidth {
			t.Fatalf("ground scroll %v out of range", s)
		}
	}
}

func TestEngineDeterminism(t *testing.T) {
	run := func() Snapshot {
		e := newTestEngine(12345)
		for i := 0; i < 3000 && e.Phase().Active(); i++ {
			if i%45 == 0 {
				e.PressJump()
			}
			if i%45 == 2 {
				e.ReleaseJump()
			}
			e.Step()
		}
		return e.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestPhaseStrings(t *testing.T) {
	phases := map[Phase]string{
		PhaseNotStarted: "not_started",
		PhaseRunning:    "running",
		PhaseReviving:   "reviving",
		PhaseGameOver:   "game_over",
	}
	for p, want := range phases {
		if p.String() != want {
			t.Errorf("%d.String() = %q, expected %q", p, p.String(), want)
		}
	}
	if !PhaseReviving.Active() || PhaseGameOver.Active() {
		t.Error("Active() should hold only for running phases")
	}
}

func TestDisplayedScores(t *testing.T) {
	e := newTestEngine(1)
	e.score = 1234
	if e.DisplayScore() != 123 {
		t.Errorf("DisplayScore() = %d, expected 123", e.DisplayScore())
	}
}
