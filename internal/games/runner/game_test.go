package runner

import (
	"strings"
	"testing"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIDAndTitle(t *testing.T) {
	g := New()
	if g.ID() != "dino" {
		t.Errorf("ID() = %q, expected dino", g.ID())
	}
	if g.Title() == "" {
		t.Error("Title() should not be empty")
	}
	if g.State().Phase != "not_started" {
		t.Errorf("State() before Reset = %+v", g.State())
	}
}

func TestGameStartsOnJump(t *testing.T) {
	g := newTestGame(t)
	if g.State().Phase != "not_started" {
		t.Fatalf("first Reset should leave the game on the start screen, got %q", g.State().Phase)
	}

	g.Step(frame(core.ActionJump))
	if g.State().Phase != "running" {
		t.Fatalf("jump should start the run, got %q", g.State().Phase)
	}
	if !g.Engine().Player().OnGround {
		t.Error("the starting press should not also jump")
	}
}

func TestGameSynthesizesJumpRelease(t *testing.T) {
	g := newTestGame(t)
	g.Engine().cfg.Obstacles.SpawnChance = 0
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionJump))
	if g.Engine().Player().OnGround {
		t.Fatal("first press should jump")
	}

	// Autorepeat while airborne and after landing keeps the key held.
	for i := 0; i < 80; i++ {
		g.Step(frame(core.ActionJump))
	}
	if !g.Engine().Player().OnGround {
		t.Fatal("player should have landed")
	}

	// Quiet frames release the key, then the next press jumps again.
	limit := g.jump.limit
	for i := 0; i < limit; i++ {
		g.Step(frame())
	}
	if g.jump.held || g.Engine().keyDown {
		t.Fatal("key should be released after the quiet window")
	}
	g.Step(frame(core.ActionUp))
	if g.Engine().Player().OnGround {
		t.Error("press after release should jump")
	}
}

func TestGameSynthesizesCrouchRelease(t *testing.T) {
	g := newTestGame(t)
	g.Engine().cfg.Obstacles.SpawnChance = 0
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionDown))
	if !g.Engine().Player().Crouching {
		t.Fatal("down should crouch")
	}

	for i := 1; i < g.duck.limit; i++ {
		g.Step(frame())
	}
	if !g.Engine().Player().Crouching {
		t.Fatal("crouch should hold through the quiet window")
	}

	g.Step(frame())
	if g.Engine().Player().Crouching {
		t.Error("crouch should release once the window passes")
	}
}

func TestGameExplicitRelease(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionDuck))
	g.Step(frame(core.ActionDuckRelease))
	if g.Engine().Player().Crouching || g.duck.held {
		t.Error("explicit release should stand the player up immediately")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))

	g.Step(frame(core.ActionPause))
	before := g.Engine().Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	if g.Engine().Snapshot() != before || !g.State().Paused {
		t.Error("paused game should not advance")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameReviveAndHighScoreSurviveReset(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(core.ActionConfirm))
	e := g.Engine()
	e.score = 120
	kill(t, e)

	st := g.State()
	if !st.GameOver || !st.CanRevive || st.HighScore != 12 {
		t.Fatalf("State() after death = %+v", st)
	}

	g.Step(frame(core.ActionRevive))
	if g.State().GameOver || g.State().Score != 12 {
		t.Errorf("revive should resume with score kept, got %+v", g.State())
	}

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	if g.Engine() != e {
		t.Fatal("Reset should keep the engine")
	}
	if g.State().Phase != "running" || g.State().Score != 0 || g.State().HighScore != 12 {
		t.Errorf("Reset should restart and keep the high score, got %+v", g.State())
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if !strings.Contains(screen.String(), "DINO RUN") {
		t.Error("start screen should show the title")
	}

	g.Step(frame(core.ActionConfirm))
	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing, row 0 = %q", screen.Row(0))
	}
	if !strings.ContainsRune(out, '═') {
		t.Error("ground should be drawn")
	}
	if !strings.ContainsAny(out, "█▓") {
		t.Error("player should be drawn")
	}
}

func TestRendererSkipsMissingSprites(t *testing.T) {
	e := NewEngine(config.DefaultRunnerConfig(), 1)
	e.Start()
	e.Step()

	screen := core.NewScreen(80, 24)
	Renderer{Sheet: SpriteSheet{}}.Draw(screen, e, core.NewRect(0, 0, 80, 24))
	if strings.TrimSpace(strings.ReplaceAll(screen.String(), "\n", "")) != "" {
		t.Error("empty sheet should draw nothing")
	}

	entries := config.DefaultRunnerConfig().Sprites
	delete(entries, string(SpriteRun1))
	delete(entries, string(SpriteRun2))
	Renderer{Sheet: NewSpriteSheet(entries)}.Draw(screen, e, core.NewRect(0, 0, 80, 24))
	out := screen.String()
	if !strings.ContainsRune(out, '═') {
		t.Error("ground should still be drawn")
	}
	if strings.ContainsAny(out, "█▓") {
		t.Error("player sprite without a sheet entry should be skipped")
	}
}

func TestNewSpriteSheet(t *testing.T) {
	sheet := NewSpriteSheet(map[string]config.Sprite{
		"run_1":  {Glyph: "#", Color: "green"},
		"run_2":  {Glyph: "", Color: "green"},
		"ground": {Glyph: "=", Color: "plaid"},
	})

	if sp, ok := sheet.Lookup(SpriteRun1); !ok || sp.Glyph != '#' || sp.Color != core.ColorGreen {
		t.Errorf("run_1 = %+v, %v", sp, ok)
	}
	if _, ok := sheet.Lookup(SpriteRun2); ok {
		t.Error("empty glyph should be dropped")
	}
	if sp, _ := sheet.Lookup(SpriteGround); sp.Color != core.ColorDefault {
		t.Errorf("unknown color should fall back to default, got %v", sp.Color)
	}
}

func TestPlayerSpriteSelection(t *testing.T) {
	e := newTestEngine(1)
	if playerSprite(e) != SpriteRun1 {
		t.Errorf("grounded player at frame 0 = %v", playerSprite(e))
	}

	e.PressJump()
	if playerSprite(e) != SpriteJump {
		t.Errorf("airborne player = %v", playerSprite(e))
	}

	kill(t, e)
	if playerSprite(e) != SpriteDead {
		t.Errorf("dead player = %v", playerSprite(e))
	}
}

func TestObstacleSpriteSelection(t *testing.T) {
	tests := []struct {
		o    Obstacle
		want SpriteID
	}{
		{Obstacle{Kind: KindGround}, SpriteCactusSmall},
		{Obstacle{Kind: KindGround, Large: true}, SpriteCactusLarge},
		{Obstacle{Kind: KindFlying, Frame: 0}, SpriteBird1},
		{Obstacle{Kind: KindFlying, Frame: 1}, SpriteBird2},
	}
	for _, tc := range tests {
		if got := obstacleSprite(tc.o); got != tc.want {
			t.Errorf("obstacleSprite(%+v) = %v, expected %v", tc.o, got, tc.want)
		}
	}
}
