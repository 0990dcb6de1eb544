package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

// ValidateRaw checks semantic constraints of a merged RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	if strings.TrimSpace(cfg.PoolsDir) == "" {
		errs = append(errs, "pools_dir is required")
	}
	if cfg.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
			errs = append(errs, fmt.Sprintf("log_level %q is not a valid level", cfg.LogLevel))
		}
	}

	// store
	switch cfg.Store.Kind {
	case StoreFile:
		if strings.TrimSpace(cfg.Store.Dir) == "" {
			errs = append(errs, "store.dir is required for kind=file")
		}
	case StoreBolt:
		if strings.TrimSpace(cfg.Store.Path) == "" {
			errs = append(errs, "store.path is required for kind=bolt")
		}
	case StoreMemory:
	default:
		errs = append(errs, "store.kind must be one of: file, bolt, memory")
	}

	// engine
	e := cfg.Engine
	positive := func(name string, v *float64) {
		if v != nil && *v <= 0 {
			errs = append(errs, fmt.Sprintf("engine.%s must be > 0", name))
		}
	}
	prob := func(name string, v *float64) {
		if v != nil && (*v < 0 || *v > 1) {
			errs = append(errs, fmt.Sprintf("engine.%s must be in [0,1]", name))
		}
	}
	positive("weight_sigma", e.WeightSigma)
	positive("sample_sigma", e.SampleSigma)
	if e.Tolerance != nil && *e.Tolerance < 0 {
		errs = append(errs, "engine.tolerance must be >= 0")
	}
	if e.MaxAttempts != nil && *e.MaxAttempts < 1 {
		errs = append(errs, "engine.max_attempts must be >= 1")
	}
	if e.PenaltyStep != nil && *e.PenaltyStep < 0 {
		errs = append(errs, "engine.penalty_step must be >= 0")
	}
	if e.BoostPerPoint != nil && *e.BoostPerPoint < 0 {
		errs = append(errs, "engine.boost_per_point must be >= 0")
	}
	if e.BoostMinPoints != nil && *e.BoostMinPoints < 0 {
		errs = append(errs, "engine.boost_min_points must be >= 0")
	}
	prob("spike_chance", e.SpikeChance)
	prob("penalty_cap", e.PenaltyCap)
	prob("bonus_chance", e.BonusChance)
	prob("boost_cap", e.BoostCap)

	// presets
	seen := make(map[string]bool, len(cfg.Presets))
	for i, p := range cfg.Presets {
		name := strings.ToLower(strings.TrimSpace(p.Name))
		if name == "" {
			errs = append(errs, fmt.Sprintf("presets[%d].name is required", i))
		} else if seen[name] {
			errs = append(errs, fmt.Sprintf("presets[%d].name %q is duplicated", i, p.Name))
		}
		seen[name] = true
		if err := gacha.ValidateRange(p.Min, p.Target, p.Max); err != nil {
			errs = append(errs, fmt.Sprintf("presets[%d]: %v", i, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
