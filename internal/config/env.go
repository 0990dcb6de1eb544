package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides. Empty values leave the file config alone.
type Env struct {
	ConfigPath string `env:"GACHA_CONFIG"      envDefault:"gacha.yaml"`
	PoolsDir   string `env:"GACHA_POOLS_DIR"`
	StoreKind  string `env:"GACHA_STORE_KIND"`
	StoreDir   string `env:"GACHA_STORE_DIR"`
	StorePath  string `env:"GACHA_STORE_PATH"`
	Seed       string `env:"GACHA_SEED"`
	LogLevel   string `env:"GACHA_LOG_LEVEL"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ParseEnvFrom reads Env from an explicit variable map.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
