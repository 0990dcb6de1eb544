package gacha

const (
	MinRarity = 0.0
	MaxRarity = 10.0
)

// StarMarker prefixes the element of a bonus-upgraded pull.
const StarMarker = "★ "

// Params holds every tunable of the draw pipeline. DefaultParams returns the
// shipped values; config files may override individual fields.
type Params struct {
	// Pool weighting: Gaussian kernel width around the requested target.
	WeightSigma float64

	// Rarity sampler.
	SampleSigma float64 // stddev of the Normal draw around the effective center
	SkewAlpha   float64 // Beta(alpha, beta) pre-skew toward the lower bound
	SkewBeta    float64
	PenaltyStep float64 // center shift per failed attempt
	PenaltyCap  float64 // max total shift (fraction of target-min)
	SpikeChance float64 // chance of an extra uniform bonus on the sample
	SpikeMin    float64
	SpikeMax    float64

	// Item selection.
	Tolerance   float64 // half-width of the band around the sampled rarity
	MaxAttempts int

	// Bonus upgrade.
	BonusChance    float64
	BoostPerPoint  float64
	BoostCap       float64
	BoostMinPoints int
	UpgradeStep    float64
	JitterMin      float64
	JitterMax      float64
}

func DefaultParams() Params {
	return Params{
		WeightSigma:    1.2,
		SampleSigma:    0.8,
		SkewAlpha:      2.5,
		SkewBeta:       5,
		PenaltyStep:    0.07,
		PenaltyCap:     0.7,
		SpikeChance:    0.0048,
		SpikeMin:       0.1,
		SpikeMax:       2.0,
		Tolerance:      0.25,
		MaxAttempts:    10,
		BonusChance:    0.0048,
		BoostPerPoint:  0.0023,
		BoostCap:       0.50,
		BoostMinPoints: 5,
		UpgradeStep:    2.0,
		JitterMin:      0.05,
		JitterMax:      0.40,
	}
}
