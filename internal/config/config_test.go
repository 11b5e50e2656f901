package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fmmod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	path := writeTemp(t, `
audio_sample_rate: 48000
block_size: 512
output_sample_rate: 192000
rds:
  pi: 0xC0DE
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, DefaultOscillatorSampleRate, cfg.OscillatorSampleRate)
	assert.Equal(t, DefaultRTPBasePort, cfg.RTP.BasePort)
	assert.Equal(t, DefaultRTPMaxReceivers, cfg.RTP.MaxReceivers)
	assert.EqualValues(t, 0xC0DE, cfg.RDS.PI)
	assert.Nil(t, cfg.Hamlib)
	assert.False(t, cfg.DNSSD)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTemp(t, `
audio_sample_rate: 44100
block_size: 1024
oscillator_sample_rate: 192000
output_sample_rate: 192000
rtp:
  base_port: 6000
  max_receivers: 8
rds:
  pi: 0x1001
  pty: 10
  ps: "TESTFM  "
hamlib:
  device: /dev/ttyUSB0
  model: 1234
dnssd: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.EqualValues(t, 192000, cfg.OscillatorSampleRate)
	assert.Equal(t, 6000, cfg.RTP.BasePort)
	assert.Equal(t, 8, cfg.RTP.MaxReceivers)
	assert.Equal(t, "TESTFM  ", cfg.RDS.PS)
	require.NotNil(t, cfg.Hamlib)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Hamlib.Device)
	assert.True(t, cfg.DNSSD)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	path := writeTemp(t, `
block_size: 512
output_sample_rate: 192000
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "audio_sample_rate")
}

func TestLoadRejectsInvalidPTY(t *testing.T) {
	path := writeTemp(t, `
audio_sample_rate: 48000
block_size: 512
output_sample_rate: 192000
rds:
  pty: 99
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "pty")
}

func TestLoadRejectsHamlibWithoutDevice(t *testing.T) {
	path := writeTemp(t, `
audio_sample_rate: 48000
block_size: 512
output_sample_rate: 192000
hamlib:
  model: 1234
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "hamlib")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
