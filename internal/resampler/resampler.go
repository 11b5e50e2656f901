// Package resampler implements the three sample-rate converters the signal
// path needs: upsampling program audio and the RDS baseband waveform up to
// the main oscillator's rate, and downsampling the finished MPX composite
// down to the output rate. Each converter bypasses entirely when
// its input and output rates already match.
//
// Unlike the original's use of a general-purpose resampling library, this
// implementation is a from-scratch polyphase windowed-sinc interpolator:
// a bank of pre-computed fractional-delay FIR kernels (phases) is built once
// at construction time, and each output sample is produced by picking the
// phase at or just below its fractional input position and convolving against a
// short input history, following the same sinc/Blackman-Harris-window
// technique used by internal/filters for the audio low-pass.
package resampler

import "math"

// numPhases is how finely the unit interval between two input samples is
// subdivided; each phase gets its own precomputed FIR kernel.
const numPhases = 64

// kernelHalfWidth taps extend on each side of a phase's ideal center.
const kernelHalfWidth = 8

// kernelWidth is the total number of taps evaluated per output sample.
const kernelWidth = 2 * kernelHalfWidth

// Filter is a single rate converter between a fixed input and output rate.
// It holds only the precomputed phase bank; per-stream state lives in a
// Channel so one Filter can drive several independent streams (e.g. the
// left and right audio channels sharing one upsampler).
type Filter struct {
	bypass bool
	step   float64 // input samples advanced per output sample
	phases [numPhases][kernelWidth]float32
}

// New builds a converter between inRate and outRate, with prototype
// low-pass cutoff cutoffHz. If inRate == outRate the filter bypasses (pure
// copy) and cutoffHz is ignored, matching the original's bypass shortcut
// for the audio upsampler and MPX downsampler when rates already match.
func New(inRate, outRate, cutoffHz uint32) *Filter {
	if inRate == outRate {
		return &Filter{bypass: true}
	}

	f := &Filter{step: float64(inRate) / float64(outRate)}

	fcNormalized := float64(cutoffHz) / float64(inRate)
	if fcNormalized > 0.5 {
		fcNormalized = 0.5
	}

	for p := 0; p < numPhases; p++ {
		frac := float64(p) / float64(numPhases)
		for i := 0; i < kernelWidth; i++ {
			x := float64(i-kernelHalfWidth) - frac
			f.phases[p][i] = float32(2.0 * fcNormalized * sinc(2.0*fcNormalized*x))
		}
		windowPhase(&f.phases[p], frac)
		normalizePhase(&f.phases[p])
	}

	return f
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// windowPhase applies a Blackman-Harris taper centered on the phase's true
// (possibly fractional) sample position, not just the nearest integer tap.
func windowPhase(kernel *[kernelWidth]float32, frac float64) {
	const a0, a1, a2, a3 = 0.35875, 0.48829, 0.14128, 0.01168
	n := float64(kernelWidth - 1)
	for i := range kernel {
		b := float64(i) - frac
		if b < 0 {
			b = 0
		}
		if b > n {
			b = n
		}
		w := a0 - a1*math.Cos(2*math.Pi*b/n) + a2*math.Cos(4*math.Pi*b/n) - a3*math.Cos(6*math.Pi*b/n)
		kernel[i] = float32(float64(kernel[i]) * w)
	}
}

func normalizePhase(kernel *[kernelWidth]float32) {
	var sum float64
	for _, c := range kernel {
		sum += float64(c)
	}
	if sum == 0 {
		return
	}
	for i := range kernel {
		kernel[i] = float32(float64(kernel[i]) / sum)
	}
}

// Bypass reports whether this filter is a pure copy (input and output rates
// are identical).
func (f *Filter) Bypass() bool { return f.bypass }

// Channel is a single mono stream's running state against a Filter: the
// unconsumed input history and the fractional position of the next output
// sample within it. Stereo paths use one Channel per side against a shared
// Filter.
type Channel struct {
	buf []float32
	pos float64 // fractional index into buf of the next output center
}

// Process appends newly-available input to the channel's history and emits
// every output sample that can now be fully computed, appending them to out
// and returning the extended slice. Channel state persists across calls, so
// streaming works across arbitrarily small block boundaries.
func (f *Filter) Process(ch *Channel, in []float32, out []float32) []float32 {
	if f.bypass {
		return append(out, in...)
	}

	if ch.buf == nil {
		// A fresh channel starts with kernelHalfWidth samples of silence so
		// the first output sample is centered on the first input sample.
		ch.buf = make([]float32, kernelHalfWidth, kernelHalfWidth+len(in))
		ch.pos = kernelHalfWidth
	}

	ch.buf = append(ch.buf, in...)

	for {
		center := int(math.Floor(ch.pos))
		lo := center - kernelHalfWidth
		hi := center + kernelHalfWidth - 1
		if lo < 0 || hi >= len(ch.buf) {
			break
		}

		frac := ch.pos - float64(center)
		phase := int(frac * numPhases)
		if phase >= numPhases {
			phase = numPhases - 1
		}

		var sample float32
		kernel := &f.phases[phase]
		for i := 0; i < kernelWidth; i++ {
			sample += kernel[i] * ch.buf[center+i-kernelHalfWidth]
		}
		out = append(out, sample)

		ch.pos += f.step
	}

	// Trim consumed history, keeping enough lead-in for the next call's
	// earliest possible window.
	keepFrom := int(math.Floor(ch.pos)) - kernelHalfWidth
	if keepFrom > 0 {
		if keepFrom > len(ch.buf) {
			keepFrom = len(ch.buf)
		}
		ch.buf = append(ch.buf[:0], ch.buf[keepFrom:]...)
		ch.pos -= float64(keepFrom)
	}

	return out
}
