package scoring

const (
	// Epsilon guards divisions by a max-over-rows.
	Epsilon = 1e-6
	// StdFloor is the lower clip applied to column standard deviations.
	StdFloor = 1e-6

	DefaultPerturbations = 50
	DefaultNoiseScale    = 0.5
	DefaultSeed          = 42
)

func DefaultAcquisitionParams() AcquisitionParams {
	return AcquisitionParams{
		Curiosity:     0.5,
		Direction:     Maximize,
		NoveltyWeight: 1.0,
	}
}

func DefaultUncertaintyConfig() UncertaintyConfig {
	return UncertaintyConfig{
		Perturbations: DefaultPerturbations,
		NoiseScale:    DefaultNoiseScale,
		Seed:          DefaultSeed,
	}
}
