// Package config holds the game's tunables: movement, per-level parameters,
// the level-3 topology and key binding overrides. Values start from the code
// defaults, then the embedded default.yaml, then an optional file on disk.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"hiro/pkg/engine/world"
	"hiro/pkg/game/clues"
	"hiro/pkg/game/graph"
	"hiro/pkg/game/orbs"
	"hiro/pkg/game/sequencer"
	"hiro/pkg/game/text"
)

//go:embed default.yaml
var defaultYAML []byte

// Footsteps shapes the level-1 trail.
type Footsteps struct {
	Max      int     `yaml:"max"`
	Lifetime float64 `yaml:"lifetime"`
	Step     float64 `yaml:"step"`
	Jitter   float64 `yaml:"jitter"`
}

// Level1 configures the ring reveals.
type Level1 struct {
	EyeHeight float64          `yaml:"eye_height"`
	Clamp     float64          `yaml:"clamp"`
	Spots     sequencer.Tuning `yaml:"spots"`
	Footsteps Footsteps        `yaml:"footsteps"`
}

// Level2 configures the clue room.
type Level2 struct {
	EyeHeight   float64      `yaml:"eye_height"`
	ActorRadius float64      `yaml:"actor_radius"`
	Clues       clues.Tuning `yaml:"clues"`
}

// Level3 configures the bond puzzle and its house.
type Level3 struct {
	EyeHeight float64           `yaml:"eye_height"`
	House     graph.HouseTuning `yaml:"house"`
	Topology  graph.Topology    `yaml:"topology"`
}

// Level4 configures the orb room.
type Level4 struct {
	ClampMargin float64     `yaml:"clamp_margin"`
	Orbs        orbs.Tuning `yaml:"orbs"`
}

// Config is the full set of tunables.
type Config struct {
	Language string            `yaml:"language"`
	Actor    world.ActorTuning `yaml:"actor"`
	Level1   Level1            `yaml:"level1"`
	Level2   Level2            `yaml:"level2"`
	Level3   Level3            `yaml:"level3"`
	Level4   Level4            `yaml:"level4"`
	Bindings map[string]string `yaml:"bindings"`
}

// Default returns the built-in tunables without reading any file.
func Default() *Config {
	return &Config{
		Language: text.DefaultLanguage,
		Actor:    world.DefaultActorTuning(),
		Level1: Level1{
			EyeHeight: 5,
			Clamp:     26,
			Spots:     sequencer.DefaultTuning(),
			Footsteps: Footsteps{Max: 16, Lifetime: 10, Step: 0.6, Jitter: 0.7},
		},
		Level2: Level2{
			EyeHeight:   5,
			ActorRadius: 4,
			Clues:       clues.DefaultTuning(),
		},
		Level3: Level3{
			EyeHeight: 2,
			House:     graph.DefaultHouseTuning(),
			Topology:  graph.DefaultTopology(),
		},
		Level4: Level4{
			ClampMargin: 2.2,
			Orbs:        orbs.DefaultTuning(),
		},
		Bindings: map[string]string{},
	}
}

// Embedded decodes the shipped default.yaml over the code defaults.
func Embedded() (*Config, error) {
	cfg := Default()
	if err := cfg.decode(defaultYAML); err != nil {
		return nil, fmt.Errorf("config: embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load returns the embedded defaults with the file at path decoded over
// them. An empty path loads the defaults alone.
func Load(path string) (*Config, error) {
	cfg, err := Embedded()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Validate rejects tunables the levels cannot run with.
func (c *Config) Validate() error {
	if c.Actor.MoveSpeed <= 0 {
		return errors.New("actor.move_speed must be positive")
	}
	if c.Level1.Spots.SpotCount <= 0 {
		return errors.New("level1.spots.spot_count must be positive")
	}
	if c.Level2.Clues.Required <= 0 {
		return errors.New("level2.clues.required must be positive")
	}
	if c.Level2.Clues.Required > c.Level2.Clues.TargetCount {
		return fmt.Errorf("level2.clues.required %d exceeds target_count %d", c.Level2.Clues.Required, c.Level2.Clues.TargetCount)
	}
	if c.Level4.Orbs.Count < c.Level4.Orbs.Required {
		return fmt.Errorf("level4.orbs.count %d is below required %d", c.Level4.Orbs.Count, c.Level4.Orbs.Required)
	}
	if c.Level4.Orbs.Required > len(orbs.Keys) {
		return fmt.Errorf("level4.orbs.required %d exceeds the %d special orbs", c.Level4.Orbs.Required, len(orbs.Keys))
	}
	if c.Level4.Orbs.HashCell <= 0 {
		return errors.New("level4.orbs.hash_cell must be positive")
	}
	if err := c.Level3.Topology.Validate(); err != nil {
		return fmt.Errorf("level3.topology: %w", err)
	}
	return nil
}

// Clone returns a deep copy, so a level can keep its tunables while the
// shared config is reloaded.
func (c *Config) Clone() *Config {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched kinds, which a Config never has.
		panic(fmt.Sprintf("config: clone: %v", err))
	}
	return out
}
