package rds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeBlockIsDeterministic(t *testing.T) {
	b1 := Block{Infoword: 0x1234, OffsetWord: offsetWords[0]}
	b2 := Block{Infoword: 0x1234, OffsetWord: offsetWords[0]}

	e1 := b1.encode()
	e2 := b2.encode()

	assert.Equal(t, e1, e2)
	assert.Equal(t, uint32(0x1234)<<10|uint32(b1.Checkword), e1)
}

func TestEncodeBlockVariesWithOffsetWord(t *testing.T) {
	b1 := Block{Infoword: 0x1234, OffsetWord: offsetWords[0]}
	b2 := Block{Infoword: 0x1234, OffsetWord: offsetWords[1]}

	assert.NotEqual(t, b1.encode(), b2.encode())
}

func TestGenerateSamplesFillsEntireGroupBuffer(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetPS("TESTFM"))

	var window uint8
	g, err := generateGroup(st, groupType0, VersionB, &window)
	require.NoError(t, err)

	for i, s := range g.Samples {
		require.False(t, math.IsNaN(float64(s)), "sample %d is NaN", i)
		assert.LessOrEqual(t, math.Abs(float64(s)), 1.01)
	}
}

func TestBiphaseWaveformIsContinuousAcrossSymbolBoundaries(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetPS("TESTFM"))

	var window uint8
	g, err := generateGroup(st, groupType0, VersionB, &window)
	require.NoError(t, err)

	for sym := 1; sym < BlockSizeBits*BlocksPerGroup; sym++ {
		prevEnd := g.Samples[sym*SamplesPerSymbol-1]
		nextStart := g.Samples[sym*SamplesPerSymbol]
		assert.Less(t, math.Abs(float64(prevEnd-nextStart)), 0.3)
	}
}

func TestSymbolWaveformTableHasEightEntries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		idx := rapid.IntRange(0, 7).Draw(t, "idx")
		for _, s := range symbolWaveforms[idx] {
			require.False(t, math.IsNaN(float64(s)))
		}
	})
}
