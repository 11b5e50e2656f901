package filters

// HTFilterSize is the Hilbert transformer's tap count.
const HTFilterSize = 65

// HTFilterTaps is the highest usable index into the coefficient table.
const HTFilterTaps = HTFilterSize - 1

// HTReverseGain compensates for the fixed transformer's passband gain.
const HTReverseGain = 1.0 / 1.568367973

// htCoeffs is the fixed 65-tap Hilbert transformer, used by the Hartley SSB
// modulator to produce a 90-degree-shifted companion of the audio signal.
var htCoeffs = [HTFilterSize]float32{
	0.0000000000, +0.0026520976, +0.0000000000, +0.0034416361,
	+0.0000000000, +0.0049746748, +0.0000000000, +0.0073766077,
	+0.0000000000, +0.0107903952, +0.0000000000, +0.0153884524,
	+0.0000000000, +0.0213931078, +0.0000000000, +0.0291124774,
	+0.0000000000, +0.0390058590, +0.0000000000, +0.0518100732,
	+0.0000000000, +0.0688038635, +0.0000000000, +0.0924245456,
	+0.0000000000, +0.1279406869, +0.0000000000, +0.1891367563,
	+0.0000000000, +0.3267308515, +0.0000000000, +0.9977849743,
	+0.0000000000, -0.9977849743, -0.0000000000, -0.3267308515,
	-0.0000000000, -0.1891367563, -0.0000000000, -0.1279406869,
	-0.0000000000, -0.0924245456, -0.0000000000, -0.0688038635,
	-0.0000000000, -0.0518100732, -0.0000000000, -0.0390058590,
	-0.0000000000, -0.0291124774, -0.0000000000, -0.0213931078,
	-0.0000000000, -0.0153884524, -0.0000000000, -0.0107903952,
	-0.0000000000, -0.0073766077, -0.0000000000, -0.0049746748,
	-0.0000000000, -0.0034416361, -0.0000000000, -0.0026520976,
	-0.0000000000,
}

// HilbertTransformer is a fixed 65-tap FIR used by the Hartley SSB modulator
// to derive a quadrature companion of the audio signal.
type HilbertTransformer struct {
	buf [HTFilterSize]float32
}

// NewHilbertTransformer returns a zeroed Hilbert transformer instance.
func NewHilbertTransformer() *HilbertTransformer {
	return &HilbertTransformer{}
}

// Apply shifts sample into the ring buffer (scaled by HTReverseGain) and
// returns the convolution against the fixed coefficient table.
func (h *HilbertTransformer) Apply(sample float32) float32 {
	for i := 0; i < HTFilterSize-1; i++ {
		h.buf[i] = h.buf[i+1]
	}
	h.buf[HTFilterSize-1] = sample * HTReverseGain

	var out float32
	for i := 0; i <= HTFilterTaps; i++ {
		out += htCoeffs[i] * h.buf[i]
	}

	return out
}
