package oscillator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewRejectsBadSampleRates(t *testing.T) {
	_, err := New(57000, Sine) // MaxFrequency >= rate
	require.Error(t, err)

	_, err = New(40000, Sine) // 57000/40000 truncates to 1, odd
	require.Error(t, err)

	_, err = New(228000, Sine) // 57000/228000 -> 0, even
	require.NoError(t, err)
}

func TestStepWrapsPhase(t *testing.T) {
	osc, err := New(228000, Sine)
	require.NoError(t, err)

	// Start ten steps short of OnePeriod so the loop crosses the wrap.
	osc.SetPhase(float64(OnePeriod) - 10*osc.phaseStep)

	for i := 0; i < WaveTableSize*4; i++ {
		osc.Step()
		assert.GreaterOrEqual(t, osc.Phase(), 0.0)
		assert.Less(t, osc.Phase(), float64(OnePeriod))
	}
}

func TestPhaseLockMatchesMaster(t *testing.T) {
	sin, err := New(228000, Sine)
	require.NoError(t, err)
	cos, err := New(228000, Cosine)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		sin.Step()
	}
	PhaseLock(sin, cos)
	assert.Equal(t, sin.Phase(), cos.Phase())
}

func TestSamplePropertyAmplitudeStaysBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rate := rapid.SampledFrom([]uint32{114000, 228000, 342000, 456000}).Draw(t, "rate")
		steps := rapid.IntRange(0, 10000).Draw(t, "steps")

		osc, err := New(rate, Sine)
		require.NoError(t, err)

		for i := 0; i < steps; i++ {
			osc.Step()
			s := osc.Sample19k()
			assert.False(t, math.IsNaN(s))
			assert.LessOrEqual(t, math.Abs(s), 1.2) // interpolation overshoot tolerance
		}
	})
}
