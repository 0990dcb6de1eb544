package gacha

// Window is a requested rarity range around a target.
type Window struct {
	Min    float64
	Target float64
	Max    float64
}

// Validate checks min <= target <= max inside [MinRarity, MaxRarity].
func (w Window) Validate() error { return ValidateRange(w.Min, w.Target, w.Max) }

// Pull is the result of one bounded sample-then-select loop.
type Pull struct {
	Selection
	Sampled  float64 // target rarity of the successful attempt
	Attempts int
}

// Engine runs the sample/select retry loop over one random stream.
type Engine struct {
	Params   Params
	Sampler  *Sampler
	Selector *Selector
}

// NewEngine wires a sampler and selector that share rng.
func NewEngine(p Params, rng RandomSource) *Engine {
	if rng == nil {
		rng = DefaultRNG()
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultParams().MaxAttempts
	}
	return &Engine{
		Params:   p,
		Sampler:  NewSampler(p, rng),
		Selector: NewSelector(p, rng),
	}
}

// Pull samples a target and tries to select an entry, up to MaxAttempts times.
// ok is false when every attempt came up empty.
func (e *Engine) Pull(entries []Entry, w Window, b Boost) (Pull, bool) {
	for attempt := 1; attempt <= e.Params.MaxAttempts; attempt++ {
		target := e.Sampler.Sample(w.Min, w.Max, w.Target, attempt)
		sel, ok := e.Selector.Select(entries, target, b)
		if ok {
			return Pull{Selection: sel, Sampled: target, Attempts: attempt}, true
		}
	}
	return Pull{Attempts: e.Params.MaxAttempts}, false
}
