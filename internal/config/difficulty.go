package config

import "time"

// ApplyRunnerPreset modifies the runner config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.Base = cfg.Speed.Base * 0.75
		cfg.Speed.Max = cfg.Speed.Max * 0.8
		cfg.Obstacles.SpawnChance = cfg.Obstacles.SpawnChance * 0.75
	case DifficultyHard:
		cfg.Speed.Base = cfg.Speed.Base * 1.25
		cfg.Speed.Max = cfg.Speed.Max * 1.2
		cfg.Obstacles.SpawnChance = cfg.Obstacles.SpawnChance * 1.5
		cfg.Obstacles.FlyingMinScore = cfg.Obstacles.FlyingMinScore / 2
	}
}

// ApplySnakePreset modifies the snake config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.TickInterval = scaleInterval(cfg.TickInterval, 4, 3)
	case DifficultyHard:
		cfg.TickInterval = scaleInterval(cfg.TickInterval, 2, 3)
	}
}

func scaleInterval(d time.Duration, num, den int64) time.Duration {
	scaled := d * time.Duration(num) / time.Duration(den)
	if scaled < 10*time.Millisecond {
		scaled = 10 * time.Millisecond
	}
	return scaled
}
