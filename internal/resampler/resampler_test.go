package resampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBypassWhenRatesMatch(t *testing.T) {
	f := New(192000, 192000, 16500)
	require.True(t, f.Bypass())

	var ch Channel
	in := []float32{1, 2, 3, 4, 5}
	out := f.Process(&ch, in, nil)
	assert.Equal(t, in, out)
}

func TestNoBypassWhenRatesDiffer(t *testing.T) {
	f := New(48000, 228000, 16500)
	require.False(t, f.Bypass())
}

func TestUpsamplingProducesMoreSamplesThanConsumed(t *testing.T) {
	f := New(48000, 228000, 16500)
	var ch Channel

	in := make([]float32, 4800)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 1000 * float64(i) / 48000))
	}

	out := f.Process(&ch, in, nil)
	assert.Greater(t, len(out), len(in))

	ratio := float64(len(out)) / float64(len(in))
	assert.InDelta(t, 228000.0/48000.0, ratio, 0.2)
}

func TestDownsamplingProducesFewerSamplesThanConsumed(t *testing.T) {
	f := New(228000, 48000, 16500)
	var ch Channel

	in := make([]float32, 22800)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 1000 * float64(i) / 228000))
	}

	out := f.Process(&ch, in, nil)
	assert.Less(t, len(out), len(in))
}

func TestStreamingAcrossSmallBlocksMatchesOneShot(t *testing.T) {
	f := New(48000, 228000, 16500)

	in := make([]float32, 2000)
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * 500 * float64(i) / 48000))
	}

	var oneShotCh Channel
	oneShot := f.Process(&oneShotCh, in, nil)

	var streamedCh Channel
	var streamed []float32
	for i := 0; i < len(in); i += 17 {
		end := i + 17
		if end > len(in) {
			end = len(in)
		}
		streamed = f.Process(&streamedCh, in[i:end], streamed)
	}

	assert.InDelta(t, len(oneShot), len(streamed), 2)
}

func TestPhaseKernelsStayBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		inRate := rapid.Uint32Range(8000, 400000).Draw(t, "inRate")
		outRate := rapid.Uint32Range(8000, 400000).Draw(t, "outRate")
		cutoff := rapid.Uint32Range(100, 20000).Draw(t, "cutoff")

		f := New(inRate, outRate, cutoff)
		if f.Bypass() {
			return
		}

		for _, phase := range f.phases {
			for _, c := range phase {
				require.False(t, math.IsNaN(float64(c)))
				require.False(t, math.IsInf(float64(c), 0))
			}
		}
	})
}
