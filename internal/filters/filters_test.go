package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFIRCoefficientsNormalizedToUnityDCGain(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cutoff := rapid.Uint32Range(1000, 20000).Draw(t, "cutoff")
		rate := rapid.Uint32Range(2*cutoff+1000, 500000).Draw(t, "rate")

		f := NewFIR(cutoff, rate)

		var sum float64
		for _, c := range f.coeffs {
			sum += float64(c)
		}
		sum *= 2

		assert.InDelta(t, 1.0, sum, 1e-6)
	})
}

func TestFIRPassesDCUnchanged(t *testing.T) {
	f := NewFIR(16500, 192000)

	var out float32
	for i := 0; i < FIRSize*3; i++ {
		out = f.Apply(1.0, ChannelLeft)
		f.Update()
	}

	assert.InDelta(t, 1.0, float64(out), 1e-3)
}

func TestPreemphasisNoNaNOverManySamples(t *testing.T) {
	p := NewPreemphasis(50.0, 192000)

	for i := 0; i < 10000; i++ {
		s := float32(math.Sin(float64(i) * 0.01))
		out := p.Apply(s, ChannelLeft)
		require.False(t, math.IsNaN(float64(out)))
	}
}

func TestAudioFilterOrderingPreemphasisBeforeLPF(t *testing.T) {
	af := NewAudioFilter(50.0, 16500, 192000)

	for i := 0; i < 1000; i++ {
		s := float32(math.Sin(float64(i) * 0.1))
		out := af.Apply(s, ChannelLeft, true)
		af.Update(true)
		require.False(t, math.IsNaN(float64(out)))
	}
}

func TestWeaverIIRStableUnderSineInput(t *testing.T) {
	w := NewWeaverIIR()

	var maxAbs float64
	for i := 0; i < 20000; i++ {
		s := math.Sin(float64(i) * 0.05)
		out := w.Apply(s)
		require.False(t, math.IsNaN(out))
		if math.Abs(out) > maxAbs {
			maxAbs = math.Abs(out)
		}
	}
	assert.Less(t, maxAbs, 10.0)
}

func TestHilbertTransformerAntiSymmetricCoefficients(t *testing.T) {
	for i := 0; i < HTFilterSize/2; i++ {
		assert.InDelta(t, htCoeffs[i], -htCoeffs[HTFilterSize-1-i], 1e-9)
	}
}

func TestHilbertTransformerNoNaN(t *testing.T) {
	h := NewHilbertTransformer()
	for i := 0; i < 1000; i++ {
		s := float32(math.Sin(float64(i) * 0.1))
		out := h.Apply(s)
		require.False(t, math.IsNaN(float64(out)))
	}
}
