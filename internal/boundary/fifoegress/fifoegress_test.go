package fifoegress

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpx.fifo")
	require.NoError(t, Create(path))
	require.NoError(t, Create(path))
}

func TestWriteSamplesWithoutReaderIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpx.fifo")
	require.NoError(t, Create(path))

	w := New(path)
	assert.NoError(t, w.WriteSamples([]float32{0.1, -0.2, 0.3}))
	assert.NoError(t, w.Close())
}
