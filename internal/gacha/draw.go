package gacha

import "errors"

var ErrInvalidProb = errors.New("invalid probability p; must be 0..1")

// Draw is one Bernoulli trial: reports whether an event with chance p fires.
// p <= 0 never fires, p >= 1 always fires, otherwise rng.Float64() < p.
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// chance is Draw for probabilities computed internally; out-of-range values are
// clamped instead of rejected.
func chance(p float64, rng RandomSource) bool {
	if p > 1 {
		p = 1
	}
	hit, err := Draw(p, rng)
	return err == nil && hit
}
