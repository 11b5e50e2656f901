// Package filters implements the audio-filter chain: a windowed-sinc FIR
// low-pass, a biquad FM pre-emphasis shelf, a fixed Butterworth IIR used by
// the Weaver SSB modulator, and a Hilbert transformer used by the Hartley
// SSB modulator.
package filters

import "math"

// FIRSize is the full FIR filter length; kept odd so it has a single center
// tap, and the symmetric half below it is what's actually stored.
const FIRSize = 127

// FIRHalfSize is the number of unique coefficients stored; the other half of
// the filter is the mirror image.
const FIRHalfSize = (FIRSize - 1) / 2

// FIR is a windowed-sinc low-pass filter shared by both audio channels. The
// ring buffers are per-channel but the write index is shared: it advances
// once per processed frame, not once per channel, matching the original's
// "fir_filter_update is called once per process() callback" contract.
type FIR struct {
	coeffs [FIRHalfSize]float32
	bufL   [FIRSize]float32
	bufR   [FIRSize]float32
	index  int
}

// NewFIR builds a windowed-sinc low-pass filter for the given cutoff and
// sample rate, using a Blackman-Harris window. Coefficients are normalized
// so that (after doubling for symmetry) they sum to 1, i.e. unity DC gain.
func NewFIR(cutoffFreq, sampleRate uint32) *FIR {
	f := &FIR{}

	fcDoubled := 2.0 * (float64(cutoffFreq) / float64(sampleRate))

	for i := 0; i < FIRHalfSize; i++ {
		f.coeffs[i] = float32(sincFilter(fcDoubled, i) * blackmanHarris(i))
	}

	var sum float64
	for i := 0; i < FIRHalfSize; i++ {
		sum += float64(f.coeffs[i])
	}
	sum *= 2

	for i := 0; i < FIRHalfSize; i++ {
		f.coeffs[i] = float32(float64(f.coeffs[i]) / sum)
	}

	return f
}

func sinc(phase float64) float64 {
	if phase == 0 {
		return 1
	}
	return math.Sin(math.Pi*phase) / (math.Pi * phase)
}

func sincFilter(fcDoubled float64, bin int) float64 {
	return sinc(fcDoubled * float64(bin-FIRHalfSize))
}

func blackmanHarris(bin int) float64 {
	const a0, a1, a2, a3 = 0.35875, 0.48829, 0.14128, 0.01168
	n := float64(FIRSize - 1)
	b := float64(bin)
	return a0 - a1*math.Cos(2*math.Pi*b/n) + a2*math.Cos(4*math.Pi*b/n) - a3*math.Cos(6*math.Pi*b/n)
}

// Channel selects which per-channel ring buffer Apply operates on.
type Channel uint8

const (
	ChannelLeft Channel = iota
	ChannelRight
)

// Apply pushes sample into the ring buffer for chan and returns the filtered
// output, applying coefficients symmetrically: out += c[i]*(buf[prev]+buf[later]).
func (f *FIR) Apply(sample float32, ch Channel) float32 {
	var buf *[FIRSize]float32
	switch ch {
	case ChannelLeft:
		buf = &f.bufL
	case ChannelRight:
		buf = &f.bufR
	default:
		return 0
	}

	buf[f.index] = sample

	var out float32
	previous := f.index
	later := f.index

	for i := 0; i < FIRHalfSize; i++ {
		previous--
		if previous < 0 {
			previous = FIRSize - 1
		}
		later++
		if later >= FIRSize {
			later = 0
		}
		out += f.coeffs[i] * (buf[previous] + buf[later])
	}

	return out
}

// Update advances the shared ring-buffer write index by one. It must be
// called exactly once per processed frame (i.e. once for both channels
// together), never once per channel — see DESIGN.md Open Question #1.
func (f *FIR) Update() {
	f.index = (f.index + 1) % FIRSize
}
