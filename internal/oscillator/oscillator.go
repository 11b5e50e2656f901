// Package oscillator implements a phase-accumulator wavetable sine/cosine
// generator used to produce the phase-synced 19/38/57 kHz tones that make up
// the FM MPX pilot, stereo subcarrier and RDS subcarrier.
package oscillator

import (
	"fmt"
	"math"
)

// MaxFrequency is the highest tone this oscillator bank is ever asked to
// produce (the RDS subcarrier); sample rates are validated against it.
const MaxFrequency = 57000

// WaveTableSize is the number of wavetable slots per period (a power of two
// minus one); table indices are wrapped with a modulo by wrapIndex.
const WaveTableSize = 63

// OnePeriod is the wavetable-slot equivalent of 2*pi radians.
const OnePeriod = WaveTableSize

// Kind selects which trigonometric function a Oscillator's table holds.
type Kind int

const (
	Sine Kind = iota
	Cosine
)

// Oscillator is a single phase-accumulator wavetable generator. It is mutated
// only by the real-time audio callback; construction and Init happen before
// streaming starts.
type Oscillator struct {
	table       [WaveTableSize]float64
	derivative  [WaveTableSize]float64
	phaseStep   float64
	phase       float64
	sampleRate  uint32
	kind        Kind
}

// New builds an Oscillator for the given sample rate and kind. It returns an
// error if rate fails the Nyquist-adjacent constraint the original encoder
// enforces: MaxFrequency must be strictly below rate, and MaxFrequency/rate
// must be an even ratio (so RDS's 57 kHz subcarrier lands on a table slot
// boundary for every supported oscillator rate).
func New(sampleRate uint32, kind Kind) (*Oscillator, error) {
	if sampleRate <= MaxFrequency || (MaxFrequency/sampleRate)%2 != 0 {
		return nil, fmt.Errorf("oscillator: invalid sample rate %d", sampleRate)
	}

	osc := &Oscillator{
		sampleRate: sampleRate,
		kind:       kind,
	}

	for i := 0; i < WaveTableSize; i++ {
		phase := 2.0 * math.Pi * float64(i) / float64(WaveTableSize)
		switch kind {
		case Sine:
			osc.table[i] = math.Sin(phase)
			osc.derivative[i] = math.Cos(phase)
		case Cosine:
			osc.table[i] = math.Cos(phase)
			osc.derivative[i] = -math.Sin(phase)
		default:
			return nil, fmt.Errorf("oscillator: unknown kind %d", kind)
		}
	}

	osc.phaseStep = float64(OnePeriod) / float64(sampleRate)

	return osc, nil
}

// Step advances the phase accumulator by one sample period, wrapping at
// OnePeriod and clamping away negative zero.
func (o *Oscillator) Step() {
	o.phase += o.phaseStep
	if o.phase >= float64(OnePeriod) {
		o.phase -= float64(OnePeriod)
	}
	if o.phase == 0 && math.Signbit(o.phase) {
		o.phase = 0
	}
}

// Phase returns the current phase, in wavetable-slot units.
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// SetPhase forcibly sets the current phase; used to phase-lock a companion
// oscillator to a master (e.g. cosine to sine) at a given instant.
func (o *Oscillator) SetPhase(phase float64) {
	o.phase = phase
}

// SampleFor returns wave(phase*freq) at the oscillator's current phase,
// cubic-interpolated between the two neighboring wavetable slots using the
// stored derivative table.
func (o *Oscillator) SampleFor(freq float64) float64 {
	phase := o.phase * freq
	return o.cubicInterpolate(phase)
}

// Sample19k, Sample38k and Sample57k are convenience accessors for the three
// tones the MPX generator needs.
func (o *Oscillator) Sample19k() float64 { return o.SampleFor(19000.0) }
func (o *Oscillator) Sample38k() float64 { return o.SampleFor(38000.0) }
func (o *Oscillator) Sample57k() float64 { return o.SampleFor(57000.0) }

// cubicInterpolate evaluates the unique cubic through the two wavetable
// slots neighboring phase, using the known derivatives f'(x)=cos(x) (or
// -sin(x) for the cosine table) to get a smoother result than a plain table
// lookup without paying for a full trig call per sample.
func (o *Oscillator) cubicInterpolate(phase float64) float64 {
	// slot rescales the per-radian derivatives to the per-slot unit x is in.
	const slot = 2.0 * math.Pi / WaveTableSize

	base := math.Floor(phase)
	x1 := wrapIndex(int(base), WaveTableSize)
	x2 := wrapIndex(x1+1, WaveTableSize)

	y1 := o.table[x1]
	y2 := o.table[x2]
	d1 := o.derivative[x1] * slot
	d2 := o.derivative[x2] * slot

	a := 2.0*(y1-y2) + d1 + d2
	b := 3.0*(y2-y1) - 2.0*d1 - d2
	c := d1
	d := y1

	x := phase - base
	xsq := x * x
	xcub := xsq * x

	return a*xcub + b*xsq + c*x + d
}

func wrapIndex(i, size int) int {
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// PhaseLock copies the phase of master into the companion oscillator so the
// two stay exactly in step. SSB paths use this to keep a cosine companion
// locked to a sine master (the quarter-turn between sine and cosine comes
// from their waveform tables, not from an offset applied here).
func PhaseLock(master, companion *Oscillator) {
	companion.SetPhase(master.Phase())
}
