package config

import (
	"errors"
	"fmt"
	"os"

	"skirmish/engine"
	"skirmish/game"
	"skirmish/searcher"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Map         string       `yaml:"map"`
	HitPoints   int          `yaml:"hit_points"`
	AttackPower int          `yaml:"attack_power"`
	MaxRounds   int          `yaml:"max_rounds"`
	Records     string       `yaml:"records"`
	Search      SearchConfig `yaml:"search"`
	Log         LogConfig    `yaml:"log"`
}

type SearchConfig struct {
	Faction    string `yaml:"faction"`
	Floor      int    `yaml:"floor"`
	Ceiling    int    `yaml:"ceiling"`
	Goroutines int    `yaml:"goroutines"`
	Linear     bool   `yaml:"linear"`
	SweepTo    int    `yaml:"sweep_to"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Map:         "-",
		HitPoints:   game.DefaultHitPoints,
		AttackPower: game.DefaultAttackPower,
		MaxRounds:   engine.MaxRounds,
		Search: SearchConfig{
			Faction:    "elf",
			Floor:      searcher.DefaultFloor,
			Ceiling:    searcher.DefaultCeiling,
			Goroutines: 1,
		},
		Log: LogConfig{Level: "info"},
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load overlays the YAML file at path onto the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := loadYAML(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.HitPoints <= 0 {
		errs = append(errs, fmt.Errorf("hit_points must be positive, got %d", c.HitPoints))
	}
	if c.AttackPower <= 0 {
		errs = append(errs, fmt.Errorf("attack_power must be positive, got %d", c.AttackPower))
	}
	if c.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("max_rounds must be positive, got %d", c.MaxRounds))
	}
	if _, err := game.ParseFaction(c.Search.Faction); err != nil {
		errs = append(errs, fmt.Errorf("search.faction: %w", err))
	}
	if c.Search.Floor <= 0 || c.Search.Ceiling < c.Search.Floor {
		errs = append(errs, fmt.Errorf("search bounds [%d, %d] are invalid", c.Search.Floor, c.Search.Ceiling))
	}
	if c.Search.Goroutines <= 0 {
		errs = append(errs, fmt.Errorf("search.goroutines must be positive, got %d", c.Search.Goroutines))
	}
	return errors.Join(errs...)
}

// Faction is the side whose attack power is searched.
func (c *Config) Faction() game.Faction {
	f, _ := game.ParseFaction(c.Search.Faction)
	return f
}

// GameOptions applies the configured stats to both factions.
func (c *Config) GameOptions() []game.Option {
	var options []game.Option
	for _, f := range game.Factions {
		options = append(options, game.WithHitPoints(f, c.HitPoints), game.WithAttackPower(f, c.AttackPower))
	}
	return options
}
