package ctlplane

import (
	"encoding/binary"

	"github.com/UoC-Radio/jmpxrds-go/internal/mpx"
)

// MPXCtlData is the wire layout of the MPX control region, mirroring
// fmmod_control: the live gains and mode a tool can adjust, plus the peak
// meters the running service publishes for it to read.
type MPXCtlData struct {
	AudioGain         float32
	PilotGain         float32
	RDSGain           float32
	StereoCarrierGain float32
	MPXGain           float32
	Mode              int32
	UseAudioLPF       uint8
	PeakAudioInL      float32
	PeakAudioInR      float32
	PeakMPXOut        float32
	SampleRate        int32
	MaxSamples        int32
}

// mpxCtlSize is the fixed byte length of the marshaled struct: 5 float32 (20)
// + int32 (4) + uint8 (1) + 3 float32 (12) + 2 int32 (8) = 45 bytes.
const mpxCtlSize = 45

// MarshalBinary encodes d into a fixed 45-byte little-endian layout.
func (d MPXCtlData) MarshalBinary() []byte {
	buf := make([]byte, mpxCtlSize)
	putFloat32(buf[0:], d.AudioGain)
	putFloat32(buf[4:], d.PilotGain)
	putFloat32(buf[8:], d.RDSGain)
	putFloat32(buf[12:], d.StereoCarrierGain)
	putFloat32(buf[16:], d.MPXGain)
	binary.LittleEndian.PutUint32(buf[20:], uint32(d.Mode))
	buf[24] = d.UseAudioLPF
	putFloat32(buf[25:], d.PeakAudioInL)
	putFloat32(buf[29:], d.PeakAudioInR)
	putFloat32(buf[33:], d.PeakMPXOut)
	binary.LittleEndian.PutUint32(buf[37:], uint32(d.SampleRate))
	binary.LittleEndian.PutUint32(buf[41:], uint32(d.MaxSamples))
	return buf
}

// UnmarshalMPXCtlData decodes a fixed 45-byte little-endian layout produced
// by MarshalBinary. buf must be at least mpxCtlSize bytes.
func UnmarshalMPXCtlData(buf []byte) MPXCtlData {
	return MPXCtlData{
		AudioGain:         getFloat32(buf[0:]),
		PilotGain:         getFloat32(buf[4:]),
		RDSGain:           getFloat32(buf[8:]),
		StereoCarrierGain: getFloat32(buf[12:]),
		MPXGain:           getFloat32(buf[16:]),
		Mode:              int32(binary.LittleEndian.Uint32(buf[20:])),
		UseAudioLPF:       buf[24],
		PeakAudioInL:      getFloat32(buf[25:]),
		PeakAudioInR:      getFloat32(buf[29:]),
		PeakMPXOut:        getFloat32(buf[33:]),
		SampleRate:        int32(binary.LittleEndian.Uint32(buf[37:])),
		MaxSamples:        int32(binary.LittleEndian.Uint32(buf[41:])),
	}
}

// FromControl captures an mpx.Control + mpx.Stats pair into the wire struct.
func FromControl(c mpx.Control, s mpx.Stats, sampleRate, maxSamples int32) MPXCtlData {
	lpf := uint8(0)
	if c.UseAudioLPF {
		lpf = 1
	}
	return MPXCtlData{
		AudioGain:         c.AudioGain,
		PilotGain:         c.PilotGain,
		RDSGain:           c.RDSGain,
		StereoCarrierGain: c.StereoCarrierGain,
		MPXGain:           c.MPXGain,
		Mode:              int32(c.Mode),
		UseAudioLPF:       lpf,
		PeakAudioInL:      s.PeakAudioInL,
		PeakAudioInR:      s.PeakAudioInR,
		PeakMPXOut:        s.PeakMPXOut,
		SampleRate:        sampleRate,
		MaxSamples:        maxSamples,
	}
}

// ApplyTo writes the gain/mode fields of d back into c; the peak meters are
// read-only from a tool's perspective so they're not applied back.
func (d MPXCtlData) ApplyTo(c *mpx.Control) {
	c.AudioGain = d.AudioGain
	c.PilotGain = d.PilotGain
	c.RDSGain = d.RDSGain
	c.StereoCarrierGain = d.StereoCarrierGain
	c.MPXGain = d.MPXGain
	c.Mode = mpx.Mode(d.Mode)
	c.UseAudioLPF = d.UseAudioLPF != 0
}

// MPXCtlHandle is a mapped MPX control region.
type MPXCtlHandle struct{ r *region }

// CreateMPXCtl creates the MPX control region; called once by the running
// signal path's owner.
func CreateMPXCtl() (*MPXCtlHandle, error) {
	r, err := create(MPXCtlSHMName, mpxCtlSize)
	if err != nil {
		return nil, err
	}
	return &MPXCtlHandle{r: r}, nil
}

// AttachMPXCtl attaches to an already-running service's MPX control region;
// used by tools.
func AttachMPXCtl() (*MPXCtlHandle, error) {
	r, err := attach(MPXCtlSHMName, mpxCtlSize)
	if err != nil {
		return nil, err
	}
	return &MPXCtlHandle{r: r}, nil
}

// Read decodes the region's current contents.
func (h *MPXCtlHandle) Read() MPXCtlData { return UnmarshalMPXCtlData(h.r.mem) }

// Write encodes d into the region.
func (h *MPXCtlHandle) Write(d MPXCtlData) { copy(h.r.mem, d.MarshalBinary()) }

// Detach unmaps without removing the region.
func (h *MPXCtlHandle) Detach() error { return h.r.detach() }

// Destroy unmaps and removes the region; only the owning service should
// call this.
func (h *MPXCtlHandle) Destroy() error { return h.r.destroy() }
