package gacha

import (
	"math"
	"strings"

	"github.com/mroth/weightedrand"
	"gonum.org/v1/gonum/stat/distuv"
)

// weightScale maps the largest candidate weight onto this many integer tickets.
const weightScale = 1_000_000

// Entry is one pool item. Weight is its sampling weight for the current request.
type Entry struct {
	Element     string
	Rarity      float64
	Description string
	Weight      float64
}

// Weight is the Gaussian kernel exp(-(rarity-target)^2 / (2*sigma^2)).
func Weight(rarity, target, sigma float64) float64 {
	if sigma <= 0 {
		if rarity == target {
			return 1
		}
		return 0
	}
	d := rarity - target
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// Boost carries the caller's progression state into selection.
type Boost struct {
	Enabled bool
	Points  int
}

// Selection is the outcome of one successful selection.
type Selection struct {
	Entry    Entry // final entry; starred and jittered when Upgraded
	Original Entry // entry picked before any upgrade
	Upgraded bool
	// Boosted is true when the point boost contributed to the upgrade chance.
	Boosted bool
}

// Selector picks pool entries around a sampled rarity.
type Selector struct {
	Params Params
	RNG    RandomSource
}

func NewSelector(p Params, rng RandomSource) *Selector {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Selector{Params: p, RNG: rng}
}

// Band returns the entries within Tolerance of target.
func (s *Selector) Band(entries []Entry, target float64) []Entry {
	var out []Entry
	for _, e := range entries {
		// small epsilon so 2-decimal inputs on the band edge are kept
		if math.Abs(e.Rarity-target) <= s.Params.Tolerance+1e-9 {
			out = append(out, e)
		}
	}
	return out
}

// BoostChance is the extra upgrade chance granted by points.
func (s *Selector) BoostChance(b Boost) float64 {
	if !b.Enabled || b.Points < s.Params.BoostMinPoints {
		return 0
	}
	return math.Min(s.Params.BoostPerPoint*float64(b.Points), s.Params.BoostCap)
}

// Select picks one entry near target. ok is false when nothing is in the band
// or every candidate weight is zero; the caller resamples.
func (s *Selector) Select(entries []Entry, target float64, b Boost) (Selection, bool) {
	picked, ok := s.choose(s.Band(entries, target))
	if !ok {
		return Selection{}, false
	}
	sel := Selection{Entry: picked, Original: picked}

	if picked.Rarity+s.Params.UpgradeStep > MaxRarity {
		return sel, true
	}
	boost := s.BoostChance(b)
	if !chance(s.Params.BonusChance+boost, s.RNG) {
		return sel, true
	}

	sel.Entry = s.upgrade(entries, picked)
	sel.Upgraded = true
	sel.Boosted = boost > 0
	return sel, true
}

// upgrade reselects around picked.Rarity+UpgradeStep, keeping picked when that
// band is empty, then jitters the rarity and stars the element.
func (s *Selector) upgrade(entries []Entry, picked Entry) Entry {
	up := picked.Rarity + s.Params.UpgradeStep
	band := s.Band(entries, up)
	for i := range band {
		band[i].Weight = Weight(band[i].Rarity, up, s.Params.WeightSigma)
	}
	next, ok := s.choose(band)
	if !ok {
		next = picked
	}
	jitter := distuv.Uniform{Min: s.Params.JitterMin, Max: s.Params.JitterMax, Src: s.RNG}.Rand()
	next.Rarity = round2Clamp(next.Rarity+jitter, MinRarity, MaxRarity)
	next.Element = StarMarker + StripStar(next.Element)
	return next
}

// choose does a weighted pick. Weights are rescaled so the heaviest
// candidate gets weightScale tickets.
func (s *Selector) choose(cands []Entry) (Entry, bool) {
	var top float64
	for _, c := range cands {
		if c.Weight > top {
			top = c.Weight
		}
	}
	if !(top > 0) {
		return Entry{}, false
	}
	choices := make([]weightedrand.Choice, 0, len(cands))
	for _, c := range cands {
		if !(c.Weight > 0) {
			continue
		}
		tickets := uint(math.Round(c.Weight / top * weightScale))
		if tickets == 0 {
			continue
		}
		choices = append(choices, weightedrand.NewChoice(c, tickets))
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return Entry{}, false
	}
	return chooser.PickSource(legacyRand(s.RNG)).(Entry), true
}

// StripStar removes the upgrade marker from an element name.
func StripStar(element string) string {
	return strings.TrimPrefix(strings.TrimPrefix(element, StarMarker), strings.TrimSpace(StarMarker))
}
