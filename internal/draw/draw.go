// Package draw composes pool loading, the rarity engine and the progression
// tracker into full draws that produce display-ready results.
package draw

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/xtding233/chaos-gacha/internal/gacha"
	"github.com/xtding233/chaos-gacha/internal/pool"
	"github.com/xtding233/chaos-gacha/internal/progress"
	"github.com/xtding233/chaos-gacha/internal/token"
)

// ErrInvalidCount reports a request for fewer than one pull.
var ErrInvalidCount = fmt.Errorf("%w: count must be >= 1", gacha.ErrInvalidRange)

// Request is one call from the UI collaborator.
type Request struct {
	Category pool.Category
	Window   gacha.Window
	Count    int
	Boost    bool
}

func (r Request) Validate() error {
	if r.Count < 1 {
		return ErrInvalidCount
	}
	if _, err := pool.ParseCategory(string(r.Category)); err != nil {
		return err
	}
	return r.Window.Validate()
}

// Result is one successful pull, ready to display and append to history.
type Result struct {
	Category    pool.Category // concrete, Random already resolved
	Element     string
	Rarity      float64
	Tier        string
	Color       string
	Luck        float64
	LuckRating  string
	Description string
	Notes       string

	Repeated bool
	Upgraded bool
	Spent    int
	Attempts int
	Sampled  float64
}

// PoolSource loads a category's pool weighted against a window.
type PoolSource interface {
	Load(c pool.Category, w gacha.Window, sigma float64, rng gacha.RandomSource) (pool.Pool, error)
}

// Orchestrator runs draws. The RNG is shared by Random resolution, the
// sampler and the selector so a seed reproduces a whole session.
type Orchestrator struct {
	pools   PoolSource
	tracker *progress.Tracker
	engine  *gacha.Engine
	rng     gacha.RandomSource
	log     zerolog.Logger
}

func New(pools PoolSource, tracker *progress.Tracker, p gacha.Params, rng gacha.RandomSource, log zerolog.Logger) *Orchestrator {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Orchestrator{
		pools:   pools,
		tracker: tracker,
		engine:  gacha.NewEngine(p, rng),
		rng:     rng,
		log:     log,
	}
}

// Engine exposes the underlying engine, e.g. for simulations.
func (o *Orchestrator) Engine() *gacha.Engine { return o.engine }

// Draw performs req.Count independent pulls. A pull that exhausts its attempts
// is dropped, so fewer results than requested is a normal outcome. A missing
// pool stops the request; results gathered before it are returned with the error.
func (o *Orchestrator) Draw(req Request) ([]Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out := make([]Result, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		res, ok, err := o.drawOne(req)
		if err != nil {
			return out, err
		}
		if !ok {
			o.log.Debug().Str("category", string(req.Category)).Int("pull", i+1).Msg("no item within tolerance, pull dropped")
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (o *Orchestrator) drawOne(req Request) (Result, bool, error) {
	p, err := o.pools.Load(req.Category, req.Window, o.engine.Params.WeightSigma, o.rng)
	if err != nil {
		return Result{}, false, err
	}

	before := o.tracker.Points()
	pull, ok := o.engine.Pull(p.Entries, req.Window, gacha.Boost{Enabled: req.Boost, Points: before})
	if !ok {
		return Result{}, false, nil
	}

	repeated, err := o.tracker.CheckRepeat(string(p.Category), pull.Entry.Element)
	if err != nil {
		o.log.Warn().Err(err).Msg("repeat check not persisted")
	}
	spent := 0
	if pull.Upgraded && pull.Boosted && before > 0 {
		ok, err := o.tracker.SpendPoints(before)
		if err != nil {
			o.log.Warn().Err(err).Int("points", before).Msg("point spend not persisted")
		}
		if ok {
			spent = before
		}
	}

	luck := gacha.EstimateLuck(pull.Entry.Rarity, req.Window.Min, req.Window.Max)
	tier := gacha.TierFor(pull.Entry.Rarity)
	notes := token.Notes{Repeated: repeated, Upgraded: pull.Upgraded, Spent: spent}
	return Result{
		Category:    p.Category,
		Element:     pull.Entry.Element,
		Rarity:      pull.Entry.Rarity,
		Tier:        tier.String(),
		Color:       tier.Color(),
		Luck:        luck,
		LuckRating:  gacha.LuckRating(luck),
		Description: pull.Entry.Description,
		Notes:       notes.String(),
		Repeated:    repeated,
		Upgraded:    pull.Upgraded,
		Spent:       spent,
		Attempts:    pull.Attempts,
		Sampled:     pull.Sampled,
	}, true, nil
}

// Simulate runs trials pulls against req's pool without touching progression.
// Random is resolved once for the whole run; points feeds the boost chance.
func (o *Orchestrator) Simulate(req Request, points, trials int) (pool.Category, gacha.SimReport, error) {
	req.Count = 1
	if err := req.Validate(); err != nil {
		return "", gacha.SimReport{}, err
	}
	if trials < 1 {
		return "", gacha.SimReport{}, errors.New("trials must be >= 1")
	}
	p, err := o.pools.Load(req.Category, req.Window, o.engine.Params.WeightSigma, o.rng)
	if err != nil {
		return "", gacha.SimReport{}, err
	}
	rep, err := gacha.RunMonteCarlo(o.engine, p.Entries, gacha.SimParams{
		Window: req.Window,
		Boost:  gacha.Boost{Enabled: req.Boost, Points: points},
		Trials: trials,
	})
	return p.Category, rep, err
}
