package gacha

import "math"

// Tier is a named rarity bracket.
type Tier int

const (
	TierTrash Tier = iota
	TierCommon
	TierUncommon
	TierRare
	TierElite
	TierEpic
	TierLegendary
	TierMythical
	TierDivine
	TierTranscendent
)

type tierLimit struct {
	limit float64
	tier  Tier
	name  string
	color string
}

// tiers is ascending; the first limit strictly greater than the rarity wins.
var tiers = []tierLimit{
	{1.0, TierTrash, "Trash", "#a39589"},
	{2.0, TierCommon, "Common", "#9c7e5a"},
	{3.0, TierUncommon, "Uncommon", "#aed1d1"},
	{4.0, TierRare, "Rare", "#11d939"},
	{5.0, TierElite, "Elite", "#1172d9"},
	{6.0, TierEpic, "Epic", "#6811d9"},
	{7.0, TierLegendary, "Legendary", "#f7d40a"},
	{8.0, TierMythical, "Mythical", "#fc61ff"},
	{9.0, TierDivine, "Divine", "#ff8c00"},
	{10.0, TierTranscendent, "Transcendent", "#ff0000"},
}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tiers) {
		return "Unknown"
	}
	return tiers[t].name
}

// Color is the display color of the tier as a hex string.
func (t Tier) Color() string {
	if t < 0 || int(t) >= len(tiers) {
		return "#f0f0f0"
	}
	return tiers[t].color
}

// TierFor maps a rarity onto its tier. Rarity at or past the last limit is
// Transcendent; NaN is treated as Trash.
func TierFor(rarity float64) Tier {
	if math.IsNaN(rarity) {
		return TierTrash
	}
	for _, t := range tiers {
		if rarity < t.limit {
			return t.tier
		}
	}
	return TierTranscendent
}

// TierAndColor returns the tier name and color for a rarity.
func TierAndColor(rarity float64) (string, string) {
	t := TierFor(rarity)
	return t.String(), t.Color()
}

// EstimateLuck expresses how far toward the low end of [min, max] a rarity
// fell, as a percentage clamped to [0.1, 100]. A degenerate window is 100.
func EstimateLuck(rarity, min, max float64) float64 {
	if max == min {
		return 100.0
	}
	luck := 100 * (1 - (rarity-min)/(max-min))
	return round2Clamp(luck, 0.1, 100)
}

// LuckRating labels a luck percentage; lower luck means a rarer pull.
func LuckRating(luck float64) string {
	switch {
	case luck > 95:
		return "Below Average"
	case luck > 75:
		return "Average"
	case luck > 55:
		return "Above Average"
	case luck > 35:
		return "Notable"
	case luck > 15:
		return "Rare"
	case luck > 5:
		return "Exceptional Pull"
	default:
		return "Mythic Pull"
	}
}
