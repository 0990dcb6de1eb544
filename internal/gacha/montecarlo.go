package gacha

import (
	"math"
	"sort"
)

// SimParams describes one simulated request.
type SimParams struct {
	Window Window
	Boost  Boost
	Trials int
}

// Stats summarizes a sample.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []float64 `json:"-"`
}

// SimReport is the outcome of RunMonteCarlo.
type SimReport struct {
	Trials   int
	Hits     int
	Upgrades int
	HitRate  float64
	Attempts Stats // attempts used by successful pulls
	Rarity   Stats // final rarity of successful pulls
	ByTier   map[string]int
}

// calcStats computes mean/variance/percentiles.
func calcStats(xs []float64) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += v
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := v - mean
		acc += d * d
	}
	variance := acc / float64(n)

	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return cp[0]
		}
		if p >= 1 {
			return cp[n-1]
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return cp[i]
		}
		return cp[i]*(1-f) + cp[i+1]*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  math.Sqrt(variance),
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// RunMonteCarlo repeats Engine.Pull against entries and summarizes the results.
// Progression state is not touched; Boost is held constant across trials.
func RunMonteCarlo(e *Engine, entries []Entry, p SimParams) (SimReport, error) {
	if err := p.Window.Validate(); err != nil {
		return SimReport{}, err
	}
	rep := SimReport{Trials: p.Trials, ByTier: make(map[string]int)}
	if p.Trials <= 0 {
		return rep, nil
	}
	attempts := make([]float64, 0, p.Trials)
	rarities := make([]float64, 0, p.Trials)
	for i := 0; i < p.Trials; i++ {
		pull, ok := e.Pull(entries, p.Window, p.Boost)
		if !ok {
			continue
		}
		rep.Hits++
		if pull.Upgraded {
			rep.Upgrades++
		}
		attempts = append(attempts, float64(pull.Attempts))
		rarities = append(rarities, pull.Entry.Rarity)
		rep.ByTier[TierFor(pull.Entry.Rarity).String()]++
	}
	rep.HitRate = float64(rep.Hits) / float64(p.Trials)
	rep.Attempts = calcStats(attempts)
	rep.Rarity = calcStats(rarities)
	return rep, nil
}
