package resampler

// Engines bundles the three rate converters the signal path needs,
// mirroring resampler_init's three soxr instances: audio up to the
// oscillator rate, RDS up to the oscillator rate, and MPX down to the
// output rate.
type Engines struct {
	AudioUp   *Filter
	AudioUpL  Channel
	AudioUpR  Channel

	RDSUp  *Filter
	RDSUpC Channel

	MPXDown  *Filter
	MPXDownC Channel
}

// NewEngines builds the three engines for the given rate set. cardRate is
// the sound card / transport capture rate, oscRate is the main oscillator's
// sample rate, rdsRate is the RDS encoder's native sample rate, and
// outputRate is the rate the finished MPX composite is downsampled to
// (matching resampler_init's osc->output_samplerate conversion; normally
// the same as cardRate, but distinct when the composite is consumed at a
// different rate than the capture device, e.g. over the FIFO/RTP egress).
//
// Cutoffs mirror the original's soxr quality-spec passband edges: the audio
// upsampler passes up to 16.5kHz (matching the audio low-pass cutoff), the
// RDS upsampler passes up to 16kHz, and the MPX downsampler passes up to
// 60kHz (above the 57kHz RDS subcarrier).
func NewEngines(cardRate, oscRate, rdsRate, outputRate uint32) *Engines {
	return &Engines{
		AudioUp: New(cardRate, oscRate, 16500),
		RDSUp:   New(rdsRate, oscRate, 16000),
		MPXDown: New(oscRate, outputRate, 60000),
	}
}

// UpsampleAudio converts a stereo block of program audio from the card rate
// up to the oscillator rate, appending to outL/outR.
func (e *Engines) UpsampleAudio(inL, inR, outL, outR []float32) ([]float32, []float32) {
	outL = e.AudioUp.Process(&e.AudioUpL, inL, outL)
	outR = e.AudioUp.Process(&e.AudioUpR, inR, outR)
	return outL, outR
}

// UpsampleRDS converts a block of the RDS biphase waveform from its native
// rate up to the oscillator rate, appending to out.
func (e *Engines) UpsampleRDS(in, out []float32) []float32 {
	return e.RDSUp.Process(&e.RDSUpC, in, out)
}

// DownsampleMPX converts a block of the finished MPX composite from the
// oscillator rate down to the output rate, appending to out.
func (e *Engines) DownsampleMPX(in, out []float32) []float32 {
	return e.MPXDown.Process(&e.MPXDownC, in, out)
}
