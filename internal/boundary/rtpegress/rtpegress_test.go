package rtpegress

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalRTPPacketHeader(t *testing.T) {
	buf := marshalRTPPacket(7, 1000, 0xDEADBEEF, []float32{1, 2, 3})

	require.Len(t, buf, rtpHeaderLen+3*4)
	assert.Equal(t, byte(rtpVersion<<6), buf[0])
	assert.Equal(t, byte(rtpPayloadType), buf[1])
	assert.Equal(t, uint16(7), uint16(buf[2])<<8|uint16(buf[3]))
}

func TestPushSamplesReachesReceiver(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	defer conn.Close()

	port := conn.LocalAddr().(*net.UDPAddr).Port

	e := NewUDPEgress(12345)
	require.NoError(t, e.AddReceiver(net.IPv4(127, 0, 0, 1), port))
	defer e.Close()

	require.NoError(t, e.PushSamples([]float32{0.5, -0.5}))

	buf := make([]byte, 64)
	conn.SetReadDeadline(time.Now().Add(time.Second))
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, rtpHeaderLen+2*4, n)
}

func TestRemoveReceiverStopsDelivery(t *testing.T) {
	e := NewUDPEgress(1)
	require.NoError(t, e.AddReceiver(net.IPv4(127, 0, 0, 1), 9)) // unbound port
	require.NoError(t, e.RemoveReceiver(net.IPv4(127, 0, 0, 1)))

	assert.NoError(t, e.PushSamples([]float32{1}))
}
