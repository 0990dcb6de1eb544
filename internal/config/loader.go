package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/chaos-gacha/internal/gacha"
)

// Defaults used when neither the file nor the environment set a value.
const (
	DefaultPoolsDir = "gachafiles"
	DefaultStoreDir = "gacha_log"
	DefaultBoltPath = "gacha_log/progress.db"
	DefaultLogLevel = "info"
)

// Defaults is the built-in RawConfig every file is merged over.
func Defaults() RawConfig {
	return RawConfig{
		PoolsDir: DefaultPoolsDir,
		LogLevel: DefaultLogLevel,
		Store:    StoreConfig{Kind: StoreFile, Dir: DefaultStoreDir, Path: DefaultBoltPath},
	}
}

// ReadFile loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func ReadFile(path string) (RawConfig, error) {
	var cfg RawConfig
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load merges defaults <- file <- env, validates the result and normalizes
// it into engine params.
func Load(e Env) (Config, error) {
	file, err := ReadFile(e.ConfigPath)
	if err != nil {
		return Config{}, err
	}
	raw := mergeRaw(Defaults(), file)
	raw = mergeRaw(raw, envRaw(e))
	if err := ValidateRaw(raw); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Version:  raw.Version,
		PoolsDir: raw.PoolsDir,
		LogLevel: raw.LogLevel,
		Store:    raw.Store,
		Params:   applyEngine(gacha.DefaultParams(), raw.Engine),
		Presets:  DefaultPresets(),
	}
	if len(raw.Presets) > 0 {
		cfg.Presets = presetsFromRaw(raw.Presets)
	}
	if s := strings.TrimSpace(e.Seed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GACHA_SEED must be an unsigned integer: %w", err)
		}
		cfg.Seed = &seed
	}
	return cfg, nil
}

func envRaw(e Env) RawConfig {
	return RawConfig{
		PoolsDir: e.PoolsDir,
		LogLevel: e.LogLevel,
		Store:    StoreConfig{Kind: e.StoreKind, Dir: e.StoreDir, Path: e.StorePath},
	}
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Presets in 'b' replace those in 'a' if provided.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.PoolsDir != "" {
		out.PoolsDir = b.PoolsDir
	}
	if b.LogLevel != "" {
		out.LogLevel = b.LogLevel
	}

	// store
	if b.Store.Kind != "" {
		out.Store.Kind = strings.ToLower(b.Store.Kind)
	}
	if b.Store.Dir != "" {
		out.Store.Dir = b.Store.Dir
	}
	if b.Store.Path != "" {
		out.Store.Path = b.Store.Path
	}

	// engine
	mergeFloat(&out.Engine.WeightSigma, b.Engine.WeightSigma)
	mergeFloat(&out.Engine.SampleSigma, b.Engine.SampleSigma)
	mergeFloat(&out.Engine.Tolerance, b.Engine.Tolerance)
	mergeInt(&out.Engine.MaxAttempts, b.Engine.MaxAttempts)
	mergeFloat(&out.Engine.SpikeChance, b.Engine.SpikeChance)
	mergeFloat(&out.Engine.PenaltyStep, b.Engine.PenaltyStep)
	mergeFloat(&out.Engine.PenaltyCap, b.Engine.PenaltyCap)
	mergeFloat(&out.Engine.BonusChance, b.Engine.BonusChance)
	mergeFloat(&out.Engine.BoostPerPoint, b.Engine.BoostPerPoint)
	mergeFloat(&out.Engine.BoostCap, b.Engine.BoostCap)
	mergeInt(&out.Engine.BoostMinPoints, b.Engine.BoostMinPoints)

	if len(b.Presets) > 0 {
		out.Presets = append([]PresetConfig(nil), b.Presets...)
	}
	return out
}

func mergeFloat(dst **float64, src *float64) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func applyEngine(p gacha.Params, e EngineConfig) gacha.Params {
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat(&p.WeightSigma, e.WeightSigma)
	setFloat(&p.SampleSigma, e.SampleSigma)
	setFloat(&p.Tolerance, e.Tolerance)
	setFloat(&p.SpikeChance, e.SpikeChance)
	setFloat(&p.PenaltyStep, e.PenaltyStep)
	setFloat(&p.PenaltyCap, e.PenaltyCap)
	setFloat(&p.BonusChance, e.BonusChance)
	setFloat(&p.BoostPerPoint, e.BoostPerPoint)
	setFloat(&p.BoostCap, e.BoostCap)
	if e.MaxAttempts != nil {
		p.MaxAttempts = *e.MaxAttempts
	}
	if e.BoostMinPoints != nil {
		p.BoostMinPoints = *e.BoostMinPoints
	}
	return p
}
