package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	return load("runner", customPath, DefaultRunnerConfig)
}

// LoadSnake loads snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// LoadStore loads the store catalog.
// Search order: customPath -> ~/.arcade/configs/store.yaml -> ./configs/store.yaml -> embedded default
func LoadStore(customPath string) (StoreConfig, error) {
	return load("store", customPath, DefaultStoreConfig)
}

// validator is implemented by every loadable config.
type validator interface {
	Validate() error
}

// load walks the search order for <name>.yaml. Files are decoded over the
// defaults, so keys a file leaves out keep their default values. Only an
// explicit custom path can fail; the other locations fall through silently
// when unreadable or invalid.
func load[T validator](name, customPath string, fallback func() T) (T, error) {
	filename := name + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data, fallback)
		if err != nil {
			return fallback(), fmt.Errorf("failed to load config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, fallback); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decode(GetDefaultYAML(name), fallback); err == nil {
		return cfg, nil
	}
	return fallback(), nil
}

// decode unmarshals data over a fresh default config and validates the result.
func decode[T validator](data []byte, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fallback(), err
	}
	if err := cfg.Validate(); err != nil {
		return fallback(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
