package metadata

/** @brief Tone mapping operators applied by the colour adjust stage. */
type ToneMapping int

const (
	ToneMappingNone ToneMapping = iota
	ToneMappingReinhard
	ToneMappingACES
)

func (t ToneMapping) String() string {
	switch t {
	case ToneMappingReinhard:
		return "reinhard"
	case ToneMappingACES:
		return "aces"
	default:
		return "none"
	}
}

// BloomDescription configures the bloom chain. Both fields are required.
type BloomDescription struct {
	/** @brief Luminance above which a pixel contributes to bloom. */
	Threshold float32
	/** @brief Number of blur passes. */
	Iterations uint32
}

type ColourAdjustDescription struct {
	Gamma       float32
	Exposure    float32
	ToneMapping ToneMapping
}

type AmbientOcclusionDescription struct {
	SampleCount uint32
	Radius      float32
	Bias        float32
}

/**
 * @brief Per pass post processing. Every effect is independent; a nil
 * pointer means the effect is disabled.
 */
type PostProcessingDescription struct {
	Bloom            *BloomDescription
	ColourAdjust     *ColourAdjustDescription
	AntiAliasing     bool
	AmbientOcclusion *AmbientOcclusionDescription
}

// Any reports whether at least one effect is enabled.
func (d PostProcessingDescription) Any() bool {
	return d.Bloom != nil || d.ColourAdjust != nil || d.AntiAliasing || d.AmbientOcclusion != nil
}

func DefaultColourAdjust() *ColourAdjustDescription {
	return &ColourAdjustDescription{
		Gamma:       2.2,
		Exposure:    1.0,
		ToneMapping: ToneMappingACES,
	}
}

func DefaultAmbientOcclusion() *AmbientOcclusionDescription {
	return &AmbientOcclusionDescription{
		SampleCount: 64,
		Radius:      0.5,
		Bias:        0.025,
	}
}
