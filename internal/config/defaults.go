package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

//go:embed defaults/store.yaml
var defaultStoreYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: RunnerWorld{
			Width:           800,
			Height:          400,
			GroundTileWidth: 2400,
			GroundHeight:    26,
			SpriteScale:     1.5,
		},
		Physics: RunnerPhysics{
			Gravity:     0.6,
			JumpImpulse: 15,
		},
		Speed: SpeedCurve{
			Base:    7,
			Max:     17,
			PerUnit: 100,
		},
		Player: RunnerPlayer{
			X:      50,
			Stand:  Size{Width: 88, Height: 94},
			Crouch: Size{Width: 118, Height: 60},
			Hitbox: Hitbox{DX: 10, DW: 20, DH: 10},
		},
		Obstacles: RunnerObstacles{
			SpawnAfter:     60,
			SpawnChance:    0.02,
			MaxActive:      2,
			FlyingMinScore: 300,
			FlyingBands:    []float64{60, 80, 110},
			Flying:         Size{Width: 92, Height: 80},
			Small: []Size{
				{Width: 34, Height: 70},
				{Width: 68, Height: 70},
				{Width: 102, Height: 70},
			},
			Large: []Size{
				{Width: 50, Height: 100},
				{Width: 100, Height: 100},
				{Width: 150, Height: 100},
			},
			Hitbox: Hitbox{DX: 5, DW: 10},
		},
		Scoring: RunnerScoring{
			FramesPerPoint: 5,
			ReviveGrace:    50,
			DisplayDivisor: 10,
		},
		Sprites: map[string]Sprite{
			"run_1":        {Glyph: "█", Color: "bright_white"},
			"run_2":        {Glyph: "▓", Color: "bright_white"},
			"crouch_1":     {Glyph: "▄", Color: "bright_white"},
			"crouch_2":     {Glyph: "▃", Color: "bright_white"},
			"jump":         {Glyph: "█", Color: "white"},
			"dead":         {Glyph: "▒", Color: "red"},
			"cactus_small": {Glyph: "▓", Color: "green"},
			"cactus_large": {Glyph: "█", Color: "green"},
			"bird_1":       {Glyph: "▀", Color: "yellow"},
			"bird_2":       {Glyph: "▄", Color: "yellow"},
			"ground":       {Glyph: "═", Color: "gray"},
			"ground_mark":  {Glyph: "·", Color: "gray"},
		},
	}
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		GridSize:     20,
		TickInterval: 150 * time.Millisecond,
		Start:        [][2]int{{10, 10}, {9, 10}},
		Food:         [2]int{15, 15},
		FoodAttempts: 64,
	}
}

// DefaultStoreConfig returns the default store catalog.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Currency: "coins",
		Items: []StoreItem{
			{ID: "tshirt", Name: "Clan T-Shirt", Price: 250},
			{ID: "hoodie", Name: "Clan Hoodie", Price: 450},
			{ID: "cap", Name: "Exclusive Cap", Price: 200},
			{ID: "mug", Name: "Coffee Mug", Price: 150},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "runner":
		return defaultRunnerYAML
	case "snake":
		return defaultSnakeYAML
	case "store":
		return defaultStoreYAML
	default:
		return nil
	}
}
