package ctlplane

// RTPMaxReceivers bounds the receiver address list, mirroring
// RTP_SRV_MAX_RECEIVERS.
const RTPMaxReceivers = 64

const (
	rtpOffPID                = 0  // int32
	rtpOffRTPTxKBytesPerSec  = 4  // uint64
	rtpOffRTCPTxKBytesPerSec = 12 // uint64
	rtpOffNumReceivers       = 20 // int32
	rtpOffPendingAdd         = 24 // uint32, 0 = none pending
	rtpOffPendingRemove      = 28 // uint32, 0 = none pending
	rtpOffReceivers          = 32 // [RTPMaxReceivers]uint32

	rtpCtlSize = rtpOffReceivers + RTPMaxReceivers*4
)

// RTPCtlData is the wire layout of the RTP egress control region, mirroring
// struct rtp_server_control: transmit rate counters for a level meter, the
// current receiver address list, and a pending add/remove address slot
// rtp_tool fills in before sending SIGUSR1/SIGUSR2 - Go has no portable,
// cgo-free way to carry a payload value on a realtime signal itself, so
// the address rides in shared memory and the signal is purely a wakeup.
type RTPCtlData struct {
	PID                int32
	RTPTxKBytesPerSec  uint64
	RTCPTxKBytesPerSec uint64
	NumReceivers       int32
	PendingAdd         uint32
	PendingRemove      uint32
	Receivers          [RTPMaxReceivers]uint32
}

// MarshalBinary encodes d into a fixed rtpCtlSize-byte layout.
func (d RTPCtlData) MarshalBinary() []byte {
	buf := make([]byte, rtpCtlSize)
	putUint32(buf[rtpOffPID:], uint32(d.PID))
	putUint64(buf[rtpOffRTPTxKBytesPerSec:], d.RTPTxKBytesPerSec)
	putUint64(buf[rtpOffRTCPTxKBytesPerSec:], d.RTCPTxKBytesPerSec)
	putUint32(buf[rtpOffNumReceivers:], uint32(d.NumReceivers))
	putUint32(buf[rtpOffPendingAdd:], d.PendingAdd)
	putUint32(buf[rtpOffPendingRemove:], d.PendingRemove)
	for i, addr := range d.Receivers {
		putUint32(buf[rtpOffReceivers+i*4:], addr)
	}
	return buf
}

// UnmarshalRTPCtlData decodes a fixed rtpCtlSize-byte layout produced by
// MarshalBinary. buf must be at least rtpCtlSize bytes.
func UnmarshalRTPCtlData(buf []byte) RTPCtlData {
	var d RTPCtlData
	d.PID = int32(getUint32(buf[rtpOffPID:]))
	d.RTPTxKBytesPerSec = getUint64(buf[rtpOffRTPTxKBytesPerSec:])
	d.RTCPTxKBytesPerSec = getUint64(buf[rtpOffRTCPTxKBytesPerSec:])
	d.NumReceivers = int32(getUint32(buf[rtpOffNumReceivers:]))
	d.PendingAdd = getUint32(buf[rtpOffPendingAdd:])
	d.PendingRemove = getUint32(buf[rtpOffPendingRemove:])
	for i := range d.Receivers {
		d.Receivers[i] = getUint32(buf[rtpOffReceivers+i*4:])
	}
	return d
}

// RTPCtlHandle is a mapped RTP egress control region.
type RTPCtlHandle struct{ r *region }

// CreateRTPCtl creates the RTP egress control region; called once by the
// running egress worker's owner.
func CreateRTPCtl() (*RTPCtlHandle, error) {
	r, err := create(RTPSrvSHMName, rtpCtlSize)
	if err != nil {
		return nil, err
	}
	return &RTPCtlHandle{r: r}, nil
}

// AttachRTPCtl attaches to an already-running egress worker's control
// region; used by tools.
func AttachRTPCtl() (*RTPCtlHandle, error) {
	r, err := attach(RTPSrvSHMName, rtpCtlSize)
	if err != nil {
		return nil, err
	}
	return &RTPCtlHandle{r: r}, nil
}

// Read decodes the region's current contents.
func (h *RTPCtlHandle) Read() RTPCtlData { return UnmarshalRTPCtlData(h.r.mem) }

// Write encodes d into the region.
func (h *RTPCtlHandle) Write(d RTPCtlData) { copy(h.r.mem, d.MarshalBinary()) }

// Detach unmaps without removing the region.
func (h *RTPCtlHandle) Detach() error { return h.r.detach() }

// Destroy unmaps and removes the region; only the owning service should
// call this.
func (h *RTPCtlHandle) Destroy() error { return h.r.destroy() }
