package filters

import "math"

// Preemphasis is a biquad high-shelf filter implementing the FM broadcast
// pre-emphasis curve (Audio EQ Cookbook high-shelf, gain=9.477dB,
// slope=0.4845), independently stated per channel.
type Preemphasis struct {
	aTaps [2]float64 // a1, a2 (a0 normalized away)
	bTaps [3]float64 // b0, b1, b2

	inL, inL2   float64
	outL, outL2 float64
	inR, inR2   float64
	outR, outR2 float64
}

// NewPreemphasis builds a pre-emphasis shelf for the given time constant
// (50us or 75us, per region) at the given sample rate.
func NewPreemphasis(tauMicros float64, sampleRate uint32) *Preemphasis {
	const gainDB = 9.477
	const slope = 0.4845

	tau := 1e-6 * tauMicros
	cutoff := 1.0 / (2.0 * math.Pi * tau)

	a := math.Pow(10, gainDB/40.0)
	w0 := 2.0 * math.Pi * cutoff / float64(sampleRate)
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / 2.0 * math.Sqrt((a+1.0/a)*(1.0/slope-1.0)+2.0)

	sqrtA := math.Sqrt(a)
	twoSqrtAAlpha := 2.0 * sqrtA * alpha

	b0 := a * ((a + 1) + (a-1)*cosW0 + twoSqrtAAlpha)
	b1 := -2 * a * ((a - 1) + (a+1)*cosW0)
	b2 := a * ((a + 1) + (a-1)*cosW0 - twoSqrtAAlpha)
	a0 := (a + 1) - (a-1)*cosW0 + twoSqrtAAlpha
	a1 := 2 * ((a - 1) - (a+1)*cosW0)
	a2 := (a + 1) - (a-1)*cosW0 - twoSqrtAAlpha

	p := &Preemphasis{}
	p.bTaps[0] = b0 / a0
	p.bTaps[1] = b1 / a0
	p.bTaps[2] = b2 / a0
	p.aTaps[0] = a1 / a0
	p.aTaps[1] = a2 / a0

	return p
}

// Apply runs the direct-form-I biquad difference equation for the given
// channel, maintaining independent two-sample input/output history.
func (p *Preemphasis) Apply(sample float32, ch Channel) float32 {
	x := float64(sample)

	var in1, in2, out1, out2 *float64
	switch ch {
	case ChannelLeft:
		in1, in2, out1, out2 = &p.inL, &p.inL2, &p.outL, &p.outL2
	case ChannelRight:
		in1, in2, out1, out2 = &p.inR, &p.inR2, &p.outR, &p.outR2
	default:
		return 0
	}

	y := p.bTaps[0]*x + p.bTaps[1]*(*in1) + p.bTaps[2]*(*in2) -
		p.aTaps[0]*(*out1) - p.aTaps[1]*(*out2)

	*in2 = *in1
	*in1 = x
	*out2 = *out1
	*out1 = y

	return float32(y)
}

// AudioFilter is the combined pre-emphasis + optional low-pass chain applied
// to the modulating audio before it reaches the stereo encoder.
type AudioFilter struct {
	preemph *Preemphasis
	lpf     *FIR
}

// NewAudioFilter builds the combined filter. The low-pass stage is always
// built; whether it runs is decided per call by Apply/Update's useLPF
// argument, so it can be toggled live without rebuilding the filter.
func NewAudioFilter(tauMicros float64, lpfCutoff, sampleRate uint32) *AudioFilter {
	return &AudioFilter{
		preemph: NewPreemphasis(tauMicros, sampleRate),
		lpf:     NewFIR(lpfCutoff, sampleRate),
	}
}

// Apply runs pre-emphasis first, then the low-pass filter if useLPF is set,
// matching audio_filter_apply's ordering. useLPF is taken per call, mirroring
// the original passing the control flag into audio_filter_apply on every
// block so the toggle takes effect live.
func (a *AudioFilter) Apply(sample float32, ch Channel, useLPF bool) float32 {
	out := a.preemph.Apply(sample, ch)
	if useLPF {
		out = a.lpf.Apply(out, ch)
	}
	return out
}

// Update advances the shared LPF ring index once per frame, if the low-pass
// stage is in use.
func (a *AudioFilter) Update(useLPF bool) {
	if useLPF {
		a.lpf.Update()
	}
}
