package mpx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UoC-Radio/jmpxrds-go/internal/resampler"
)

const (
	testCardRate = 48000
	testOscRate  = 192000
)

func sineBlock(n int, freq float64, rate uint32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func newTestEngines() *resampler.Engines {
	return resampler.NewEngines(testCardRate, testOscRate, 47500, testCardRate)
}

func requireFinite(t *testing.T, out []float32) {
	t.Helper()
	for i, s := range out {
		require.False(t, math.IsNaN(float64(s)), "NaN at %d", i)
		require.False(t, math.IsInf(float64(s), 0), "Inf at %d", i)
	}
}

func TestAllModesProduceFiniteOutput(t *testing.T) {
	modes := []Mode{ModeDSB, ModeMono, ModeSSBLPF, ModeSSBWeaver, ModeSSBHartley}

	for _, mode := range modes {
		p, err := New(testCardRate, testOscRate, 50, true, nil)
		require.NoError(t, err)
		p.Control.Mode = mode

		engines := newTestEngines()
		inL := sineBlock(256, 1000, testCardRate)
		inR := sineBlock(256, 1000, testCardRate)

		var out []float32
		out = p.ProcessBlock(inL, inR, engines, out)

		require.NotEmpty(t, out)
		requireFinite(t, out)
	}
}

func TestMonoModeWithoutLPFProducesFiniteOutput(t *testing.T) {
	p, err := New(testCardRate, testOscRate, 50, false, nil)
	require.NoError(t, err)
	p.Control.Mode = ModeMono

	engines := newTestEngines()
	inL := sineBlock(128, 1000, testCardRate)
	inR := sineBlock(128, 1000, testCardRate)

	var out []float32
	out = p.ProcessBlock(inL, inR, engines, out)
	requireFinite(t, out)
}

func TestStatsTrackPeakLevels(t *testing.T) {
	p, err := New(testCardRate, testOscRate, 50, true, nil)
	require.NoError(t, err)

	engines := newTestEngines()
	inL := sineBlock(256, 1000, testCardRate)
	inR := sineBlock(256, 1000, testCardRate)

	var out []float32
	_ = p.ProcessBlock(inL, inR, engines, out)

	stats := p.Stats()
	require.Greater(t, stats.PeakAudioInL, float32(0))
	require.Greater(t, stats.PeakAudioInR, float32(0))
}

func TestDelayLineReturnsZerosUntilFull(t *testing.T) {
	d := newDelayLine(4)
	for i := 0; i < 4; i++ {
		require.Equal(t, float32(0), d.push(float32(i+1)))
	}
	require.Equal(t, float32(1), d.push(5))
}
