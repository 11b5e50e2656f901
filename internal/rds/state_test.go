package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPTYRejectsOutOfRange(t *testing.T) {
	st := NewState()
	require.ErrorIs(t, st.SetPTY(32), ErrInvalidPTY)
	require.NoError(t, st.SetPTY(31))
	assert.Equal(t, uint8(31), st.PTY)
}

func TestSetECCClearsFlagOnZero(t *testing.T) {
	st := NewState()
	st.SetECC(42)
	assert.True(t, st.ECCSet)

	st.SetECC(0)
	assert.False(t, st.ECCSet)
}

func TestSetLICMasksTo12Bits(t *testing.T) {
	st := NewState()
	st.SetLIC(0xFFFF)
	assert.Equal(t, uint16(0xFFF), st.LIC)
	assert.True(t, st.LICSet)
}

func TestSetPSRejectsOverlongString(t *testing.T) {
	st := NewState()
	require.ErrorIs(t, st.SetPS("WAY TOO LONG"), ErrTextTooLong)
}

func TestSetPSEmptyClearsSetFlag(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetPS("RADIO 1"))
	assert.True(t, st.PSSet)

	require.NoError(t, st.SetPS(""))
	assert.False(t, st.PSSet)
}

func TestSetPSFiltersControlCharacters(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetPS("AB\x01CD"))
	assert.Equal(t, byte(0), st.PS[2])
}

func TestSetPTYNTogglesFlushOnRepeatedSet(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetPTYN("NEWS"))
	assert.False(t, st.PTYNFlush)

	require.NoError(t, st.SetPTYN("SPORT"))
	assert.True(t, st.PTYNFlush)

	require.NoError(t, st.SetPTYN("NEWS"))
	assert.False(t, st.PTYNFlush)
}

func TestSetRTPadsToMultipleOfFour(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetRT("Hi", false))
	assert.Equal(t, 1, st.RTSegments)
	assert.Equal(t, byte(' '), st.RT[2])
	assert.Equal(t, byte(' '), st.RT[3])
}

func TestSetRTStripsControlCharactersAlways(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetRT("A\x0DB\x0AC", false))
	assert.Equal(t, byte('A'), st.RT[0])
	assert.Equal(t, byte('B'), st.RT[1])
	assert.Equal(t, byte('C'), st.RT[2])
}

func TestSetRTFlushOnlyTogglesWhenAlreadySet(t *testing.T) {
	st := NewState()
	require.NoError(t, st.SetRT("First message", true))
	assert.False(t, st.RTFlush, "first set should not toggle flush, nothing was set before")

	require.NoError(t, st.SetRT("Second message", true))
	assert.True(t, st.RTFlush)
}

func TestSetRTRejectsOverlongMessage(t *testing.T) {
	st := NewState()
	long := make([]byte, RTLength+1)
	for i := range long {
		long[i] = 'x'
	}
	require.ErrorIs(t, st.SetRT(string(long), false), ErrTextTooLong)
}
