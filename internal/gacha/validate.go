package gacha

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange reports a rarity window that breaks min <= target <= max in [0, 10].
var ErrInvalidRange = errors.New("invalid rarity range")

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// ValidateRange checks a requested rarity window.
func ValidateRange(min, target, max float64) error {
	for _, v := range []float64{min, target, max} {
		if math.IsNaN(v) || v < MinRarity || v > MaxRarity {
			return fmt.Errorf("%w: %v outside [%v, %v]", ErrInvalidRange, v, MinRarity, MaxRarity)
		}
	}
	if min > target || target > max {
		return fmt.Errorf("%w: need min <= target <= max, got %.2f/%.2f/%.2f", ErrInvalidRange, min, target, max)
	}
	return nil
}
