package lifecycle

import (
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRTPSignalsAreTranslated(t *testing.T) {
	h := New()
	defer h.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
	select {
	case sig := <-h.RTP:
		assert.Equal(t, RTPAdd, sig)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for SIGUSR1 translation")
	}

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR2))
	select {
	case sig := <-h.RTP:
		assert.Equal(t, RTPRemove, sig)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for SIGUSR2 translation")
	}
}

func TestShutdownSignalIsDelivered(t *testing.T) {
	h := New()
	defer h.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
	select {
	case <-h.Shutdown:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for SIGTERM delivery")
	}
}
