package runner

import (
	"math"
	"unicode/utf8"

	"github.com/mdlunited/arcade/internal/config"
	"github.com/mdlunited/arcade/internal/core"
)

// SpriteID names one entry of the sprite sheet.
type SpriteID string

const (
	SpriteRun1        SpriteID = "run_1"
	SpriteRun2        SpriteID = "run_2"
	SpriteCrouch1     SpriteID = "crouch_1"
	SpriteCrouch2     SpriteID = "crouch_2"
	SpriteJump        SpriteID = "jump"
	SpriteDead        SpriteID = "dead"
	SpriteCactusSmall SpriteID = "cactus_small"
	SpriteCactusLarge SpriteID = "cactus_large"
	SpriteBird1       SpriteID = "bird_1"
	SpriteBird2       SpriteID = "bird_2"
	SpriteGround      SpriteID = "ground"
	SpriteGroundMark  SpriteID = "ground_mark"
)

// groundMarkSpacing is the world distance between ground texture marks.
const groundMarkSpacing = 120.0

// Sprite is a resolved sheet entry.
type Sprite struct {
	Glyph rune
	Color core.Color
}

// SpriteSheet maps sprite ids to terminal glyphs. Lookups of absent ids
// fail and the caller skips that draw.
type SpriteSheet map[SpriteID]Sprite

// NewSpriteSheet resolves config entries. Entries with an empty glyph are
// dropped; unknown color names fall back to the default color.
func NewSpriteSheet(entries map[string]config.Sprite) SpriteSheet {
	sheet := make(SpriteSheet, len(entries))
	for id, e := range entries {
		r, size := utf8.DecodeRuneInString(e.Glyph)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		color, _ := core.ParseColor(e.Color)
		sheet[SpriteID(id)] = Sprite{Glyph: r, Color: color}
	}
	return sheet
}

// Lookup returns the sprite for id.
func (s SpriteSheet) Lookup(id SpriteID) (Sprite, bool) {
	sp, ok := s[id]
	return sp, ok
}

// Renderer draws an Engine onto any Canvas.
type Renderer struct {
	Sheet SpriteSheet
}

// Draw projects the world into area and paints ground, obstacles and the
// player, in that order. Sprites missing from the sheet are skipped.
func (r Renderer) Draw(dst core.Canvas, e *Engine, area core.Rect) {
	cfg := e.Config()
	vp := core.Viewport{WorldW: cfg.World.Width, WorldH: cfg.World.Height, Origin: area}

	r.drawGround(dst, vp, e)

	for _, o := range e.Obstacles() {
		r.fill(dst, vp, o.Box(), obstacleSprite(o))
	}

	r.fill(dst, vp, e.Player().Box(), playerSprite(e))
}

func (r Renderer) drawGround(dst core.Canvas, vp core.Viewport, e *Engine) {
	world := e.Config().World
	groundY := world.GroundY()

	// The tile is drawn twice so the scrolled gap is always covered.
	scroll := e.GroundScroll()
	for _, x := range []float64{-scroll, -scroll + world.GroundTileWidth} {
		line := core.RectF{X: x, Y: groundY, W: world.GroundTileWidth, H: 1}
		r.fill(dst, vp, clipX(line, world.Width), SpriteGround)
	}

	offset := math.Mod(scroll, groundMarkSpacing)
	for x := groundMarkSpacing - offset; x < world.Width; x += groundMarkSpacing {
		mark := core.RectF{X: x, Y: groundY + world.GroundHeight/2, W: 1, H: 1}
		r.fill(dst, vp, mark, SpriteGroundMark)
	}
}

func (r Renderer) fill(dst core.Canvas, vp core.Viewport, box core.RectF, id SpriteID) {
	if box.W <= 0 || box.H <= 0 {
		return
	}
	sp, ok := r.Sheet.Lookup(id)
	if !ok {
		return
	}
	dst.FillRect(vp.Project(box), sp.Glyph, sp.Color)
}

// clipX trims a box to the world's horizontal extent.
func clipX(b core.RectF, worldW float64) core.RectF {
	left := math.Max(b.X, 0)
	right := math.Min(b.Right(), worldW)
	return core.RectF{X: left, Y: b.Y, W: right - left, H: b.H}
}

func playerSprite(e *Engine) SpriteID {
	p := e.Player()
	switch {
	case e.Phase() == PhaseGameOver:
		return SpriteDead
	case p.Crouching:
		if e.AnimFrame() == 0 {
			return SpriteCrouch1
		}
		return SpriteCrouch2
	case !p.OnGround:
		return SpriteJump
	case e.AnimFrame() == 0:
		return SpriteRun1
	default:
		return SpriteRun2
	}
}

func obstacleSprite(o Obstacle) SpriteID {
	switch {
	case o.Kind == KindFlying && o.Frame == 0:
		return SpriteBird1
	case o.Kind == KindFlying:
		return SpriteBird2
	case o.Large:
		return SpriteCactusLarge
	default:
		return SpriteCactusSmall
	}
}
