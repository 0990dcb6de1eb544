// types.go
package config

import "github.com/xtding233/chaos-gacha/internal/gacha"

// Raw config loaded from YAML. Pointer fields distinguish "unset" from zero.
type RawConfig struct {
	Version  string         `yaml:"version"`
	PoolsDir string         `yaml:"pools_dir,omitempty"`
	LogLevel string         `yaml:"log_level,omitempty"`
	Store    StoreConfig    `yaml:"store,omitempty"`
	Engine   EngineConfig   `yaml:"engine,omitempty"`
	Presets  []PresetConfig `yaml:"presets,omitempty"`
}

type StoreConfig struct {
	Kind string `yaml:"kind,omitempty"` // "file" | "bolt" | "memory"
	Dir  string `yaml:"dir,omitempty"`  // file store
	Path string `yaml:"path,omitempty"` // bolt store
}

type EngineConfig struct {
	WeightSigma    *float64 `yaml:"weight_sigma,omitempty"`
	SampleSigma    *float64 `yaml:"sample_sigma,omitempty"`
	Tolerance      *float64 `yaml:"tolerance,omitempty"`
	MaxAttempts    *int     `yaml:"max_attempts,omitempty"`
	SpikeChance    *float64 `yaml:"spike_chance,omitempty"`
	PenaltyStep    *float64 `yaml:"penalty_step,omitempty"`
	PenaltyCap     *float64 `yaml:"penalty_cap,omitempty"`
	BonusChance    *float64 `yaml:"bonus_chance,omitempty"`
	BoostPerPoint  *float64 `yaml:"boost_per_point,omitempty"`
	BoostCap       *float64 `yaml:"boost_cap,omitempty"`
	BoostMinPoints *int     `yaml:"boost_min_points,omitempty"`
}

type PresetConfig struct {
	Name   string  `yaml:"name"`
	Min    float64 `yaml:"min"`
	Target float64 `yaml:"target"`
	Max    float64 `yaml:"max"`
	Color  string  `yaml:"color,omitempty"`
}

// Store kinds.
const (
	StoreFile   = "file"
	StoreBolt   = "bolt"
	StoreMemory = "memory"
)

// Preset is a named rarity window.
type Preset struct {
	Name   string
	Window gacha.Window
	Color  string
}

// Config is the normalized configuration the CLI runs with.
type Config struct {
	Version  string
	PoolsDir string
	LogLevel string
	Store    StoreConfig
	Params   gacha.Params
	Presets  []Preset
	Seed     *uint64 // nil means crypto randomness
}
