// Command fmmod is the broadcast signal generator service: it reads
// stereo program audio from the sound card, synthesizes the FM MPX
// composite with an embedded RDS subcarrier, and plays the result back
// out while also exposing it over a FIFO, RTP and the control-plane
// shared-memory regions. It mirrors the original's main.c / fmmod.c
// top-level wiring.
package main

import (
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/audiotransport"
	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/discovery"
	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/fifoegress"
	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/keying"
	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/lifecycle"
	"github.com/UoC-Radio/jmpxrds-go/internal/boundary/rtpegress"
	"github.com/UoC-Radio/jmpxrds-go/internal/config"
	"github.com/UoC-Radio/jmpxrds-go/internal/ctlplane"
	"github.com/UoC-Radio/jmpxrds-go/internal/logging"
	"github.com/UoC-Radio/jmpxrds-go/internal/mpx"
	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
	"github.com/UoC-Radio/jmpxrds-go/internal/rds/dynpsrt"
	"github.com/UoC-Radio/jmpxrds-go/internal/resampler"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "YAML configuration file")
	verbose := pflag.BoolP("verbose", "v", false, "enable debug logging")
	help := pflag.BoolP("help", "h", false, "display help text")
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "fmmod: -c/--config is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fmmod:", err)
		os.Exit(1)
	}

	logOpts := logging.DefaultOptions()
	logOpts.Debug = *verbose
	log := logging.New("fmmod", logOpts)

	if err := run(cfg, log); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log interface {
	Info(msg interface{}, kv ...interface{})
	Error(msg interface{}, kv ...interface{})
	Debug(msg interface{}, kv ...interface{})
}) error {
	st := rds.NewState()
	applyRDSConfig(st, cfg.RDS)

	engines := resampler.NewEngines(cfg.AudioSampleRate, cfg.OscillatorSampleRate, rds.SampleRate, cfg.OutputSampleRate)

	producer := rds.NewProducer(st, engines)
	producer.Start()
	defer producer.Stop()

	processor, err := mpx.New(cfg.AudioSampleRate, cfg.OscillatorSampleRate, 50, true, producer)
	if err != nil {
		return fmt.Errorf("build mpx processor: %w", err)
	}

	var dynPS *dynpsrt.DynPS
	if cfg.RDS.DynamicPSPath != "" {
		dynPS, err = dynpsrt.New(st, cfg.RDS.DynamicPSPath)
		if err != nil {
			return fmt.Errorf("dynamic PS: %w", err)
		}
		defer dynPS.Close()
	}

	var dynRT *dynpsrt.DynRT
	if cfg.RDS.DynamicRTPath != "" {
		dynRT, err = dynpsrt.NewRT(st, cfg.RDS.DynamicRTPath)
		if err != nil {
			return fmt.Errorf("dynamic RT: %w", err)
		}
		defer dynRT.Close()
	}

	mpxCtl, err := ctlplane.CreateMPXCtl()
	if err != nil {
		return fmt.Errorf("mpx control region: %w", err)
	}
	defer mpxCtl.Destroy()
	mpxCtl.Write(ctlplane.FromControl(processor.Control, processor.Stats(), int32(cfg.AudioSampleRate), int32(cfg.BlockSize)))

	rdsEnc, err := ctlplane.CreateRDSEnc()
	if err != nil {
		return fmt.Errorf("rds control region: %w", err)
	}
	defer rdsEnc.Destroy()

	rtpCtl, err := ctlplane.CreateRTPCtl()
	if err != nil {
		return fmt.Errorf("rtp control region: %w", err)
	}
	defer rtpCtl.Destroy()

	rtpData := rtpCtl.Read()
	rtpData.PID = int32(os.Getpid())
	rtpCtl.Write(rtpData)

	fifoPath := cfg.FIFOPath
	if fifoPath == "" {
		fifoPath = fmt.Sprintf("/run/user/%d/jmpxrds.sock", os.Getuid())
	}
	if err := fifoegress.Create(fifoPath); err != nil {
		return fmt.Errorf("fifo: %w", err)
	}
	fifo := fifoegress.New(fifoPath)
	defer fifo.Close()

	rtp := rtpegress.NewUDPEgress(uint32(os.Getpid()))
	defer rtp.Close()

	var keyer *keying.Keyer
	if cfg.Hamlib != nil {
		keyer, err = keying.Open(cfg.Hamlib.Device, cfg.Hamlib.Model)
		if err != nil {
			return fmt.Errorf("hamlib: %w", err)
		}
		defer keyer.Close()
		if err := keyer.Key(); err != nil {
			return fmt.Errorf("hamlib key: %w", err)
		}
		defer keyer.Unkey()
	}

	var adv *discovery.Advertiser
	if cfg.DNSSD {
		adv, err = discovery.Start("fmmod", cfg.RTP.BasePort)
		if err != nil {
			log.Error("dnssd advertise failed", "err", err)
		} else {
			defer adv.Stop()
		}
	}

	handler := lifecycle.New()
	defer handler.Stop()

	mpxOut := make([]float32, cfg.BlockSize)

	transport, err := audiotransport.Open(float64(cfg.AudioSampleRate), int(cfg.BlockSize), func(inL, inR, out []float32) {
		mpxCtl.Read().ApplyTo(&processor.Control)

		result := processor.ProcessBlock(inL, inR, engines, mpxOut[:0])
		for i := range out {
			out[i] = 0
		}
		copy(out, result)

		stats := processor.Stats()
		mpxCtl.Write(ctlplane.FromControl(processor.Control, stats, int32(cfg.AudioSampleRate), int32(cfg.BlockSize)))
		rdsEnc.Write(ctlplane.FromState(st))

		_ = fifo.WriteSamples(result)
		_ = rtp.PushSamples(result)
	})
	if err != nil {
		return fmt.Errorf("audio transport: %w", err)
	}
	defer transport.Close()

	if err := transport.Start(); err != nil {
		return fmt.Errorf("start transport: %w", err)
	}
	defer transport.Stop()

	log.Info("fmmod started", "audio_rate", cfg.AudioSampleRate, "osc_rate", cfg.OscillatorSampleRate)

	rdsFailed := producer.Failed()
	for {
		select {
		case <-handler.Shutdown:
			log.Info("shutting down")
			return nil
		case sig := <-handler.RTP:
			applyRTPSignal(sig, rtpCtl, rtp, cfg.RTP.BasePort, log)
		case <-rdsFailed:
			log.Error("rds encoder failed, terminating")
			rdsFailed = nil
			_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
		}
	}
}

func applyRTPSignal(sig lifecycle.RTPSignal, rtpCtl *ctlplane.RTPCtlHandle, rtp *rtpegress.UDPEgress, port int, log interface {
	Error(msg interface{}, kv ...interface{})
}) {
	d := rtpCtl.Read()

	switch sig {
	case lifecycle.RTPAdd:
		if d.PendingAdd == 0 {
			return
		}
		ip := uint32ToIP(d.PendingAdd)
		if err := rtp.AddReceiver(ip, port); err != nil {
			log.Error("add rtp receiver failed", "err", err)
			return
		}
		if int(d.NumReceivers) < len(d.Receivers) {
			d.Receivers[d.NumReceivers] = d.PendingAdd
			d.NumReceivers++
		}
		d.PendingAdd = 0
	case lifecycle.RTPRemove:
		if d.PendingRemove == 0 {
			return
		}
		ip := uint32ToIP(d.PendingRemove)
		if err := rtp.RemoveReceiver(ip); err != nil {
			log.Error("remove rtp receiver failed", "err", err)
		}
		removeReceiverAddr(&d, d.PendingRemove)
		d.PendingRemove = 0
	}

	rtpCtl.Write(d)
}

func removeReceiverAddr(d *ctlplane.RTPCtlData, addr uint32) {
	for i := int32(0); i < d.NumReceivers; i++ {
		if d.Receivers[i] == addr {
			for j := i; j < d.NumReceivers-1; j++ {
				d.Receivers[j] = d.Receivers[j+1]
			}
			d.NumReceivers--
			return
		}
	}
}

func uint32ToIP(v uint32) net.IP {
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func applyRDSConfig(st *rds.State, c config.RDSConfig) {
	st.SetPI(c.PI)
	_ = st.SetPTY(c.PTY)
	st.SetTA(c.TA)
	st.TP = c.TP
	if c.MS != nil {
		st.SetMS(*c.MS)
	}
	if c.DI != nil {
		st.SetDI(*c.DI)
	}
	if c.ECC != 0 {
		st.SetECC(c.ECC)
	}
	if c.LIC != 0 {
		st.SetLIC(c.LIC)
	}
	if c.PS != "" {
		_ = st.SetPS(c.PS)
	}
	if c.RT != "" {
		_ = st.SetRT(c.RT, false)
	}
	if c.PTYN != "" {
		_ = st.SetPTYN(c.PTYN)
	}
	st.Enabled = true
}
