package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/config"
	"github.com/xtding233/chaos-gacha/internal/draw"
	"github.com/xtding233/chaos-gacha/internal/gacha"
	"github.com/xtding233/chaos-gacha/internal/pool"
	"github.com/xtding233/chaos-gacha/internal/progress"
)

// common holds the flags every command accepts. Set flags win over env.
type common struct {
	config    string
	pools     string
	storeKind string
	storeDir  string
	storePath string
	seed      string
	logLevel  string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "config file (default $GACHA_CONFIG or gacha.yaml)")
	fs.StringVar(&c.pools, "pools", "", "directory holding <Category>.txt pool files")
	fs.StringVar(&c.storeKind, "store", "", "progression store: file, bolt or memory")
	fs.StringVar(&c.storeDir, "store-dir", "", "directory for the file store")
	fs.StringVar(&c.storePath, "store-path", "", "database path for the bolt store")
	fs.StringVar(&c.seed, "seed", "", "random seed for reproducible draws (default crypto random)")
	fs.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func (c *common) load() (config.Config, error) {
	e, err := config.ParseEnv()
	if err != nil {
		return config.Config{}, err
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&e.ConfigPath, c.config)
	override(&e.PoolsDir, c.pools)
	override(&e.StoreKind, c.storeKind)
	override(&e.StoreDir, c.storeDir)
	override(&e.StorePath, c.storePath)
	override(&e.Seed, c.seed)
	override(&e.LogLevel, c.logLevel)
	return config.Load(e)
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	return fs, &c
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

// app is the wired set of components one command runs against.
type app struct {
	cfg     config.Config
	log     zerolog.Logger
	rng     gacha.RandomSource
	pools   *pool.Loader
	store   progress.Store
	tracker *progress.Tracker
	closers []func() error
}

func openApp(c *common, stderr io.Writer) (*app, error) {
	cfg, err := c.load()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: newLogger(stderr, cfg.LogLevel), rng: gacha.DefaultRNG()}
	if cfg.Seed != nil {
		a.rng = gacha.NewSeededRNG(*cfg.Seed)
	}
	a.pools = pool.NewLoader(cfg.PoolsDir, a.log)

	switch cfg.Store.Kind {
	case config.StoreBolt:
		db, err := progress.OpenBolt(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		a.store = db
		a.closers = append(a.closers, db.Close)
	case config.StoreMemory:
		a.store = progress.NewMemoryStore()
	default:
		a.store = progress.NewFileStore(cfg.Store.Dir)
	}
	a.tracker = progress.NewTracker(a.store, a.log)
	a.log.Debug().
		Str("pools", cfg.PoolsDir).
		Str("store", cfg.Store.Kind).
		Bool("seeded", cfg.Seed != nil).
		Msg("configured")
	return a, nil
}

func (a *app) orchestrator() *draw.Orchestrator {
	return draw.New(a.pools, a.tracker, a.cfg.Params, a.rng, a.log)
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// windowFlags resolves a rarity window from -preset or explicit bounds.
type windowFlags struct {
	preset string
	min    float64
	target float64
	max    float64
}

func (w *windowFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&w.preset, "preset", "Bronze", "rarity preset (see `gacha presets`)")
	fs.Float64Var(&w.min, "min", 0, "minimum rarity (overrides -preset)")
	fs.Float64Var(&w.target, "target", 0, "target rarity (overrides -preset)")
	fs.Float64Var(&w.max, "max", 0, "maximum rarity (overrides -preset)")
}

func (w *windowFlags) resolve(fs *flag.FlagSet, cfg config.Config) (gacha.Window, error) {
	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if !explicit["min"] && !explicit["target"] && !explicit["max"] {
		p, err := cfg.FindPreset(w.preset)
		if err != nil {
			return gacha.Window{}, err
		}
		return p.Window, nil
	}
	if !explicit["min"] || !explicit["target"] || !explicit["max"] {
		return gacha.Window{}, fmt.Errorf("-min, -target and -max must be given together")
	}
	win := gacha.Window{Min: w.min, Target: w.target, Max: w.max}
	return win, win.Validate()
}
