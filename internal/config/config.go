// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform, plus environment-based
// settings for the store backend.
package config

import "time"

// Size is a width/height pair in source sprite pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Hitbox describes how a collision box is shrunk from its sprite bounds:
// the left edge moves right by DX, the width shrinks by DW and the height
// shrinks by DH (top edge fixed).
type Hitbox struct {
	DX float64 `yaml:"dx"`
	DW float64 `yaml:"dw"`
	DH float64 `yaml:"dh"`
}

// RunnerConfig contains all configuration for the runner (dino) game.
type RunnerConfig struct {
	World     RunnerWorld       `yaml:"world"`
	Physics   RunnerPhysics     `yaml:"physics"`
	Speed     SpeedCurve        `yaml:"speed"`
	Player    RunnerPlayer      `yaml:"player"`
	Obstacles RunnerObstacles   `yaml:"obstacles"`
	Scoring   RunnerScoring     `yaml:"scoring"`
	Sprites   map[string]Sprite `yaml:"sprites"`
}

// Sprite is one terminal sprite-sheet entry: a fill glyph and a color name.
type Sprite struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// RunnerWorld defines the simulated playfield in world pixels.
type RunnerWorld struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	GroundTileWidth float64 `yaml:"ground_tile_width"`
	GroundHeight    float64 `yaml:"ground_height"`
	SpriteScale     float64 `yaml:"sprite_scale"` // Sprite sizes are divided by this
}

// GroundY returns the world y of the ground line.
func (w RunnerWorld) GroundY() float64 {
	return w.Height - w.GroundHeight
}

// Scaled converts a sprite size into world units.
func (w RunnerWorld) Scaled(s Size) Size {
	scale := w.SpriteScale
	if scale <= 0 {
		scale = 1
	}
	return Size{Width: s.Width / scale, Height: s.Height / scale}
}

// RunnerPhysics defines the jump arc.
type RunnerPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

// SpeedCurve maps score to scroll speed: min(Max, Base + score/PerUnit).
type SpeedCurve struct {
	Base    float64 `yaml:"base"`
	Max     float64 `yaml:"max"`
	PerUnit float64 `yaml:"score_per_unit"`
}

// Speed returns the scroll speed for the given score.
// Non-decreasing in score and never above Max.
func (c SpeedCurve) Speed(score int) float64 {
	speed := c.Base
	if c.PerUnit > 0 {
		speed += float64(score) / c.PerUnit
	}
	if speed > c.Max {
		speed = c.Max
	}
	return speed
}

// RunnerPlayer defines the player sprite sizes and hitbox.
type RunnerPlayer struct {
	X      float64 `yaml:"x"`
	Stand  Size    `yaml:"stand"`
	Crouch Size    `yaml:"crouch"`
	Hitbox Hitbox  `yaml:"hitbox"`
}

// RunnerObstacles defines spawning rules and obstacle sizes.
type RunnerObstacles struct {
	SpawnAfter     int       `yaml:"spawn_after"`  // Cooldown frames before spawn trials begin
	SpawnChance    float64   `yaml:"spawn_chance"` // Per-frame probability once cooled down
	MaxActive      int       `yaml:"max_active"`
	FlyingMinScore int       `yaml:"flying_min_score"`
	FlyingBands    []float64 `yaml:"flying_bands"` // Heights above the ground line
	Flying         Size      `yaml:"flying"`
	Small          []Size    `yaml:"small"`
	Large          []Size    `yaml:"large"`
	Hitbox         Hitbox    `yaml:"hitbox"`
}

// RunnerScoring defines the score clock and revive grace.
type RunnerScoring struct {
	FramesPerPoint int `yaml:"frames_per_point"`
	ReviveGrace    int `yaml:"revive_grace"`    // Frames before spawning resumes after a revive
	DisplayDivisor int `yaml:"display_divisor"` // Shown score = score / divisor
}

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	GridSize     int           `yaml:"grid_size"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Start        [][2]int      `yaml:"start"` // Initial body, head first
	Food         [2]int        `yaml:"food"`  // Food cell on the first start
	FoodAttempts int           `yaml:"food_attempts"`
}

// StoreConfig is the points-store catalog.
type StoreConfig struct {
	Currency string      `yaml:"currency"`
	Items    []StoreItem `yaml:"items"`
}

// StoreItem is one purchasable catalog entry.
type StoreItem struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int64  `yaml:"price" json:"price"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), true
	default:
		return DifficultyNormal, false
	}
}
