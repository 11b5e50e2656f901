package rtpegress

import (
	"encoding/binary"
	"math"
)

const (
	rtpVersion     = 2
	rtpPayloadType = 96 // dynamic, per RFC 3551
	rtpHeaderLen   = 12
)

// marshalRTPPacket builds a minimal RFC 3550 header (no extensions, no
// CSRC list) followed by samples encoded as big-endian float32, matching
// RTP's network-byte-order convention. The caller passes the timestamp in;
// PushSamples advances it by len(samples) per packet so it tracks the
// sample clock regardless of packet size.
func marshalRTPPacket(seq uint16, timestamp, ssrc uint32, samples []float32) []byte {
	buf := make([]byte, rtpHeaderLen+len(samples)*4)

	buf[0] = rtpVersion << 6
	buf[1] = rtpPayloadType
	binary.BigEndian.PutUint16(buf[2:], seq)
	binary.BigEndian.PutUint32(buf[4:], timestamp)
	binary.BigEndian.PutUint32(buf[8:], ssrc)

	for i, s := range samples {
		binary.BigEndian.PutUint32(buf[rtpHeaderLen+i*4:], math.Float32bits(s))
	}

	return buf
}
