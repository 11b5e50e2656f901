package mpx

import (
	"github.com/UoC-Radio/jmpxrds-go/internal/filters"
	"github.com/UoC-Radio/jmpxrds-go/internal/oscillator"
)

// mono sums L+R plus the RDS subcarrier; no stereo pilot or subcarrier at
// all, for receivers/transmitters that don't want (or can't afford) a
// stereo signal.
func (p *Processor) mono(lpr, out []float32) {
	for i := range out {
		out[i] = lpr[i]
		out[i] += p.Control.RDSGain * float32(p.sinOsc.Sample57k()) * p.rdsSample()
		out[i] *= p.Control.MPXGain
		p.sinOsc.Step()
	}
}

// dsb is the standard double-sideband suppressed-carrier stereo encoder:
// L-R AM-modulates the 38kHz subcarrier (twice the pilot frequency).
func (p *Processor) dsb(lpr, lmr, out []float32) {
	for i := range out {
		out[i] = lpr[i]
		out[i] += p.Control.PilotGain * float32(p.sinOsc.Sample19k())
		out[i] += lmr[i] * float32(p.sinOsc.Sample38k()) * p.Control.StereoCarrierGain
		out[i] += p.Control.RDSGain * float32(p.sinOsc.Sample57k()) * p.rdsSample()
		out[i] *= p.Control.MPXGain
		p.sinOsc.Step()
	}
}

// ssbLPF derives single sideband by AM-modulating L-R onto the 38kHz
// subcarrier and then low-pass filtering away the upper sideband. The
// oscillator's phase is saved before the modulation pass and restored
// before the combining pass, so its net advance over the block is the same
// one-step-per-sample as every other generator.
func (p *Processor) ssbLPF(lpr, lmr, out []float32) {
	savedPhase := p.sinOsc.Phase()

	for i := range out {
		out[i] = lmr[i] * float32(p.sinOsc.Sample38k())
		p.sinOsc.Step()
	}

	for i := range out {
		out[i] = p.ssbLPFFilter.Apply(out[i], filters.ChannelLeft) * p.Control.StereoCarrierGain
		p.ssbLPFFilter.Update()
	}

	p.sinOsc.SetPhase(savedPhase)

	for i := range out {
		out[i] += lpr[i]
		out[i] += p.Control.PilotGain * float32(p.sinOsc.Sample19k())
		out[i] += p.Control.RDSGain * float32(p.sinOsc.Sample57k()) * p.rdsSample()
		out[i] *= p.Control.MPXGain
		p.sinOsc.Step()
	}
}

// ssbWeaver implements the Weaver SSB modulator: L-R is split into
// in-phase/quadrature components by mixing with two 90-degree-apart tones
// at a quarter of the oscillator rate, each low-pass filtered by the fixed
// Weaver IIR, then shifted back up to the 38kHz subcarrier and summed to
// produce the lower sideband while the upper sideband cancels out. L+R is
// delayed to match the IIR's group delay.
func (p *Processor) ssbWeaver(lpr, lmr, out []float32) {
	quarterFreq := float64(p.oscRate / 4)
	shiftFreq := quarterFreq - weaverHartleyCarrierFreq

	for i := range out {
		out[i] = p.weaverDelay.push(lpr[i])
		out[i] += p.Control.PilotGain * float32(p.sinOsc.Sample19k())

		oscillator.PhaseLock(p.sinOsc, p.cosOsc)

		inPhase := lmr[i] * float32(p.sinOsc.SampleFor(quarterFreq))
		quadrature := lmr[i] * float32(p.cosOsc.SampleFor(quarterFreq))

		inPhase = float32(p.weaverInPh.Apply(float64(inPhase)))
		quadrature = float32(p.weaverQuad.Apply(float64(quadrature)))

		inPhase *= float32(p.sinOsc.SampleFor(shiftFreq))
		quadrature *= float32(p.cosOsc.SampleFor(shiftFreq))

		out[i] += (inPhase + quadrature) * p.Control.StereoCarrierGain
		out[i] += p.Control.RDSGain * float32(p.sinOsc.Sample57k()) * p.rdsSample()
		out[i] *= p.Control.MPXGain

		p.sinOsc.Step()
	}
}

// ssbHartley implements the Hartley SSB modulator: L-R is phase-shifted by
// 90 degrees with a Hilbert transformer, then the shifted and original
// signals are each modulated by carriers 90 degrees apart and summed,
// canceling the upper sideband and leaving the lower one.
func (p *Processor) ssbHartley(lpr, lmr, out []float32) {
	p.hartleyBuf = ensureLen(p.hartleyBuf, len(lmr))
	for i, s := range lmr {
		p.hartleyBuf[i] = p.hilbert.Apply(s)
	}

	for i := range out {
		oscillator.PhaseLock(p.sinOsc, p.cosOsc)

		out[i] = p.hartleyBuf[i] * float32(p.cosOsc.SampleFor(weaverHartleyCarrierFreq))
		out[i] += lmr[i] * float32(p.sinOsc.SampleFor(weaverHartleyCarrierFreq))
		out[i] *= p.Control.StereoCarrierGain

		out[i] += lpr[i]
		out[i] += p.Control.PilotGain * float32(p.sinOsc.Sample19k())
		out[i] += p.Control.RDSGain * float32(p.sinOsc.Sample57k()) * p.rdsSample()
		out[i] *= p.Control.MPXGain

		p.sinOsc.Step()
	}
}
