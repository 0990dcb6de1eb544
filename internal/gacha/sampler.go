package gacha

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws candidate target rarities inside a requested window.
type Sampler struct {
	Params Params
	RNG    RandomSource
}

// NewSampler creates a sampler; nil rng means DefaultRNG.
func NewSampler(p Params, rng RandomSource) *Sampler {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Sampler{Params: p, RNG: rng}
}

// penalty returns the multiplier applied to (target - min) on the given attempt:
// 1 on the first attempt, shrinking by PenaltyStep per retry, never below 1-PenaltyCap.
func (s *Sampler) penalty(attempt int) float64 {
	if attempt < 1 {
		attempt = 1
	}
	return 1 - math.Min(s.Params.PenaltyCap, float64(attempt-1)*s.Params.PenaltyStep)
}

// Sample returns one candidate rarity in [min, max], rounded to 2 decimals.
//
// The effective center starts at target, is pulled toward min by the retry
// penalty, then pre-skewed toward min by a Beta draw. A Normal draw around that
// center is taken and, rarely, a uniform spike is added before clamping.
func (s *Sampler) Sample(min, max, target float64, attempt int) float64 {
	if min > max {
		min, max = max, min
	}
	if max-min <= 0 || math.IsNaN(target) {
		return round2Clamp(min, min, max)
	}
	target = clamp(target, min, max)

	center := min + (target-min)*s.penalty(attempt)

	skew := distuv.Beta{Alpha: s.Params.SkewAlpha, Beta: s.Params.SkewBeta, Src: s.RNG}.Rand()
	center -= (center - min) * skew

	v := distuv.Normal{Mu: center, Sigma: s.Params.SampleSigma, Src: s.RNG}.Rand()
	if chance(s.Params.SpikeChance, s.RNG) {
		v += distuv.Uniform{Min: s.Params.SpikeMin, Max: s.Params.SpikeMax, Src: s.RNG}.Rand()
	}
	return round2Clamp(v, min, max)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// round2Clamp rounds first so the clamp has the last word on the bounds.
func round2Clamp(v, lo, hi float64) float64 { return clamp(round2(v), lo, hi) }
