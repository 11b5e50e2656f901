package ctlplane

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UoC-Radio/jmpxrds-go/internal/mpx"
	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
)

func TestMPXCtlDataRoundTrips(t *testing.T) {
	c := mpx.DefaultControl()
	c.Mode = mpx.ModeSSBWeaver
	s := mpx.Stats{PeakAudioInL: 0.25, PeakAudioInR: 0.5, PeakMPXOut: 0.75}

	d := FromControl(c, s, 192000, 512)
	got := UnmarshalMPXCtlData(d.MarshalBinary())

	assert.Equal(t, d, got)

	var c2 mpx.Control
	got.ApplyTo(&c2)
	assert.Equal(t, c.Mode, c2.Mode)
	assert.Equal(t, c.AudioGain, c2.AudioGain)
}

func TestRDSEncDataRoundTrips(t *testing.T) {
	st := rds.NewState()
	st.SetPI(0xC0DE)
	_ = st.SetPS("TESTFM  ")
	_ = st.SetRT("Now playing a test", true)

	d := FromState(st)
	got := UnmarshalRDSEncData(d.MarshalBinary())

	assert.Equal(t, d, got)
	assert.Equal(t, uint16(0xC0DE), got.PI)
	assert.True(t, got.PSSet)
	assert.True(t, got.RTSet)

	st2 := ToState(got)
	assert.Equal(t, st.PI, st2.PI)
	assert.Equal(t, st.PS, st2.PS)
	assert.Equal(t, st.RT, st2.RT)
}

func TestRTPCtlDataRoundTrips(t *testing.T) {
	d := RTPCtlData{
		PID:                12345,
		RTPTxKBytesPerSec:  128,
		RTCPTxKBytesPerSec: 4,
		NumReceivers:       2,
	}
	d.Receivers[0] = 0x7F000001
	d.Receivers[1] = 0x0A000001

	got := UnmarshalRTPCtlData(d.MarshalBinary())
	assert.Equal(t, d, got)
}
