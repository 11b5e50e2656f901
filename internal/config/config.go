// Package config implements the service binary's static, init-time
// configuration: sample rates, the MPX FIFO path, RTP egress parameters,
// the station's initial RDS fields and the optional transmitter-keying and
// service-discovery settings. It is read once at startup from a YAML file;
// everything adjustable afterward lives behind the control plane instead.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for fields the YAML file may leave unset.
const (
	DefaultOscillatorSampleRate = 228000
	DefaultRTPBasePort          = 5000
	DefaultRTPMaxReceivers      = 64
)

// RDSConfig holds the station's initial RDS fields. PI is the only field a
// real deployment must set; everything else is optional and left at the
// encoder's documented defaults (see rds.NewState) when omitted. MS and DI
// are pointers so "omitted" (keep the encoder default) is distinguishable
// from "explicitly set to zero".
type RDSConfig struct {
	PI   uint16 `yaml:"pi"`
	PTY  uint8  `yaml:"pty"`
	TA   bool   `yaml:"ta"`
	TP   bool   `yaml:"tp"`
	MS   *uint8 `yaml:"ms,omitempty"`
	DI   *uint8 `yaml:"di,omitempty"`
	ECC  uint8  `yaml:"ecc,omitempty"`
	LIC  uint16 `yaml:"lic,omitempty"`
	PS   string `yaml:"ps,omitempty"`
	RT   string `yaml:"rt,omitempty"`
	PTYN string `yaml:"ptyn,omitempty"`

	DynamicPSPath string `yaml:"dynamic_ps_path,omitempty"`
	DynamicRTPath string `yaml:"dynamic_rt_path,omitempty"`
}

// HamlibConfig configures optional transmitter keying through goHamlib.
// A nil *HamlibConfig on Config means keying is disabled entirely.
type HamlibConfig struct {
	Device string `yaml:"device"`
	Model  int    `yaml:"model"`
}

// RTPConfig configures the RTP egress worker.
type RTPConfig struct {
	BasePort     int `yaml:"base_port"`
	MaxReceivers int `yaml:"max_receivers"`
}

// Config is the service binary's static configuration, parsed once at
// startup from a YAML file.
type Config struct {
	AudioSampleRate      uint32 `yaml:"audio_sample_rate"`
	BlockSize            uint32 `yaml:"block_size"`
	OscillatorSampleRate uint32 `yaml:"oscillator_sample_rate"`
	OutputSampleRate     uint32 `yaml:"output_sample_rate"`

	FIFOPath string `yaml:"fifo_path,omitempty"`

	RTP RTPConfig `yaml:"rtp"`
	RDS RDSConfig `yaml:"rds"`

	Hamlib *HamlibConfig `yaml:"hamlib,omitempty"`

	DNSSD bool `yaml:"dnssd"`
}

// Default returns a Config with every documented default filled in; Load
// unmarshals a file on top of one of these so any field the file omits
// keeps its default.
func Default() Config {
	return Config{
		OscillatorSampleRate: DefaultOscillatorSampleRate,
		RTP: RTPConfig{
			BasePort:     DefaultRTPBasePort,
			MaxReceivers: DefaultRTPMaxReceivers,
		},
	}
}

// Load reads and parses a YAML configuration file at path, applying
// Default()'s values to any field the file leaves unset, then validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the field ranges the YAML decoder can't enforce on its
// own.
func (c Config) Validate() error {
	if c.AudioSampleRate == 0 {
		return fmt.Errorf("config: audio_sample_rate must be set")
	}
	if c.BlockSize == 0 {
		return fmt.Errorf("config: block_size must be set")
	}
	if c.OutputSampleRate == 0 {
		return fmt.Errorf("config: output_sample_rate must be set")
	}
	if c.RDS.PTY > 31 {
		return fmt.Errorf("config: rds.pty must be 0-31")
	}
	if c.Hamlib != nil && c.Hamlib.Device == "" {
		return fmt.Errorf("config: hamlib.device must be set when hamlib is configured")
	}
	return nil
}
