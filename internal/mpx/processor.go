// Package mpx implements the per-block FM multiplex signal path: audio
// conditioning (pre-emphasis, optional low-pass) at the audio transport's
// rate, up/down sampling to and from the oscillator's working rate, and the
// four stereo-encoding variants (mono, DSB-SC, filter-based SSB and
// Weaver/Hartley SSB) that combine L+R, L-R and the RDS subcarrier into the
// finished composite signal.
package mpx

import (
	"fmt"

	"github.com/UoC-Radio/jmpxrds-go/internal/filters"
	"github.com/UoC-Radio/jmpxrds-go/internal/oscillator"
	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
	"github.com/UoC-Radio/jmpxrds-go/internal/resampler"
)

// Mode selects how the L-R (stereo difference) signal is encoded onto the
// composite, mirroring fmmod_stereo_modulation.
type Mode int

const (
	ModeDSB Mode = iota
	ModeMono
	ModeSSBLPF
	ModeSSBWeaver
	ModeSSBHartley
)

// weaverDelayTaps is how many oscillator-rate samples the L+R path is
// delayed by in Weaver mode, to line it up with the group delay the fixed
// Weaver IIR imposes on L-R.
const weaverDelayTaps = filters.WeaverFilterTaps

// ssbLPFCutoff suppresses anything above the 38kHz subcarrier so only the
// lower sideband survives in the filter-based SSB modulator.
const ssbLPFCutoff = 38000

// weaverHartleyCarrierFreq is the subcarrier frequency both SSB modulators
// mix the phase-shifted audio up to.
const weaverHartleyCarrierFreq = 38000

// Control holds the live, tunable gains and mode selection, mirroring
// fmmod_control; a running service exposes these through the control plane
// so a tool like fmmod_tool can adjust them without restarting the signal
// path.
type Control struct {
	AudioGain         float32
	PilotGain         float32
	RDSGain           float32
	StereoCarrierGain float32
	MPXGain           float32
	Mode              Mode
	UseAudioLPF       bool
}

// DefaultControl returns the documented startup defaults.
func DefaultControl() Control {
	return Control{
		AudioGain:         0.45,
		PilotGain:         0.083,
		RDSGain:           0.026,
		StereoCarrierGain: 1.0,
		MPXGain:           1.0,
		Mode:              ModeDSB,
		UseAudioLPF:       true,
	}
}

// Stats reports the peak levels observed during the most recently processed
// block, mirroring the peak_audio_in_l/r and peak_mpx_out fields a control
// surface polls for level meters.
type Stats struct {
	PeakAudioInL float32
	PeakAudioInR float32
	PeakMPXOut   float32
}

// delayLine is a fixed-length circular delay, used to line up the Weaver
// modulator's L+R path with the group delay its IIR filter imposes on L-R.
type delayLine struct {
	buf []float32
	idx int
}

func newDelayLine(n int) *delayLine {
	return &delayLine{buf: make([]float32, n)}
}

func (d *delayLine) push(x float32) float32 {
	out := d.buf[d.idx]
	d.buf[d.idx] = x
	d.idx = (d.idx + 1) % len(d.buf)
	return out
}

// Processor runs one station's MPX signal path, driven one block at a time
// by the audio transport's callback.
type Processor struct {
	Control Control
	stats   Stats

	oscRate uint32
	sinOsc  *oscillator.Oscillator
	cosOsc  *oscillator.Oscillator

	audioFilter  *filters.AudioFilter
	ssbLPFFilter *filters.FIR
	weaverInPh   *filters.WeaverIIR
	weaverQuad  *filters.WeaverIIR
	hilbert     *filters.HilbertTransformer
	weaverDelay *delayLine

	rdsProducer *rds.Producer

	filtL, filtR []float32
	upL, upR     []float32
	lpr, lmr     []float32
	mpxBuf       []float32
	hartleyBuf   []float32
}

// New builds a Processor. cardRate is the audio transport's native sample
// rate (used for the pre-emphasis/low-pass stage); oscRate is the working
// rate all oscillators and the SSB filters run at; preemphTauMicros is 50 or
// 75 depending on region; rdsProducer supplies the 57kHz subcarrier's
// baseband samples (nil disables RDS entirely, output stays plain MPX).
func New(cardRate, oscRate uint32, preemphTauMicros float64, useAudioLPF bool, rdsProducer *rds.Producer) (*Processor, error) {
	sinOsc, err := oscillator.New(oscRate, oscillator.Sine)
	if err != nil {
		return nil, fmt.Errorf("mpx: sine oscillator: %w", err)
	}
	cosOsc, err := oscillator.New(oscRate, oscillator.Cosine)
	if err != nil {
		return nil, fmt.Errorf("mpx: cosine oscillator: %w", err)
	}

	control := DefaultControl()
	control.UseAudioLPF = useAudioLPF

	return &Processor{
		Control:      control,
		oscRate:      oscRate,
		sinOsc:       sinOsc,
		cosOsc:       cosOsc,
		audioFilter:  filters.NewAudioFilter(preemphTauMicros, 16500, cardRate),
		ssbLPFFilter: filters.NewFIR(ssbLPFCutoff, oscRate),
		weaverInPh:   filters.NewWeaverIIR(),
		weaverQuad:   filters.NewWeaverIIR(),
		hilbert:      filters.NewHilbertTransformer(),
		weaverDelay:  newDelayLine(weaverDelayTaps),
		rdsProducer:  rdsProducer,
	}, nil
}

// Stats returns the peak levels observed during the most recent ProcessBlock
// call.
func (p *Processor) Stats() Stats { return p.stats }

func (p *Processor) rdsSample() float32 {
	if p.rdsProducer == nil {
		return 0
	}
	return p.rdsProducer.NextSample()
}

func ensureLen(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n)
	}
	return buf[:n]
}

// ProcessBlock runs one block of stereo program audio through the full
// signal path (pre-emphasis/LPF, upsampling, stereo+RDS encoding,
// downsampling) and appends the resulting MPX composite, at the engines'
// output rate, to mpxOut. inL and inR must be the same length.
func (p *Processor) ProcessBlock(inL, inR []float32, engines *resampler.Engines, mpxOut []float32) []float32 {
	n := len(inL)
	if n == 0 {
		return mpxOut
	}

	p.filtL = ensureLen(p.filtL, n)
	p.filtR = ensureLen(p.filtR, n)

	var peakL, peakR float32
	for i := 0; i < n; i++ {
		p.filtL[i] = p.audioFilter.Apply(inL[i]*p.Control.AudioGain, filters.ChannelLeft, p.Control.UseAudioLPF)
		p.filtR[i] = p.audioFilter.Apply(inR[i]*p.Control.AudioGain, filters.ChannelRight, p.Control.UseAudioLPF)
		p.audioFilter.Update(p.Control.UseAudioLPF)

		if p.filtL[i] > peakL {
			peakL = p.filtL[i]
		}
		if p.filtR[i] > peakR {
			peakR = p.filtR[i]
		}
	}
	p.stats.PeakAudioInL = peakL
	p.stats.PeakAudioInR = peakR

	p.upL, p.upR = engines.UpsampleAudio(p.filtL, p.filtR, p.upL[:0], p.upR[:0])

	m := len(p.upL)
	if len(p.upR) < m {
		m = len(p.upR)
	}

	p.lpr = ensureLen(p.lpr, m)
	p.lmr = ensureLen(p.lmr, m)
	for i := 0; i < m; i++ {
		p.lpr[i] = p.upL[i] + p.upR[i]
		p.lmr[i] = p.upL[i] - p.upR[i]
	}

	p.mpxBuf = ensureLen(p.mpxBuf, m)
	switch p.Control.Mode {
	case ModeMono:
		p.mono(p.lpr, p.mpxBuf)
	case ModeSSBLPF:
		p.ssbLPF(p.lpr, p.lmr, p.mpxBuf)
	case ModeSSBWeaver:
		p.ssbWeaver(p.lpr, p.lmr, p.mpxBuf)
	case ModeSSBHartley:
		p.ssbHartley(p.lpr, p.lmr, p.mpxBuf)
	default:
		p.dsb(p.lpr, p.lmr, p.mpxBuf)
	}

	start := len(mpxOut)
	mpxOut = engines.DownsampleMPX(p.mpxBuf, mpxOut)

	var peakMPX float32
	for _, s := range mpxOut[start:] {
		if s > peakMPX {
			peakMPX = s
		}
	}
	p.stats.PeakMPXOut = peakMPX

	return mpxOut
}
