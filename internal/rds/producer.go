package rds

import (
	"sync"

	"github.com/UoC-Radio/jmpxrds-go/internal/resampler"
)

// Status reflects the encoder's lifecycle, mirroring rds_enc_status.
type Status int

const (
	StatusInactive Status = iota
	StatusActive
	StatusFailed
	StatusTerminated
)

// outputBuffer is one half of the double buffer: an upsampled group
// waveform plus how far the real-time consumer has read into it.
type outputBuffer struct {
	waveform   []float32
	samplesOut int
}

// Producer runs group generation and RDS-to-oscillator-rate upsampling on a
// background goroutine, handing finished waveforms to the real-time audio
// callback through a double buffer. The callback-facing NextSample method
// never blocks: it only swaps to the other buffer and pings the producer
// goroutine to start refilling the one just vacated.
type Producer struct {
	st        *State
	scheduler *Scheduler
	engines   *resampler.Engines

	mu      sync.Mutex
	cond    *sync.Cond
	status  Status
	pending bool

	buffers     [2]outputBuffer
	currentIdx  int
	lastFailure error

	failOnce sync.Once
	failed   chan struct{}
}

// NewProducer builds a producer that upsamples generated groups through
// engines (whose RDSUp filter must be configured for RDS_SAMPLE_RATE ->
// oscillator rate).
func NewProducer(st *State, engines *resampler.Engines) *Producer {
	p := &Producer{
		st:        st,
		scheduler: NewScheduler(st),
		engines:   engines,
		status:    StatusInactive,
		failed:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Start launches the background refill goroutine and marks the encoder
// active. It is idempotent-unsafe by design, mirroring the original: call
// it exactly once per Producer.
func (p *Producer) Start() {
	p.mu.Lock()
	p.status = StatusActive
	p.mu.Unlock()

	go p.loop()
}

// Stop signals the background goroutine to exit and marks the encoder
// terminated. Safe to call once, after which the Producer must be
// discarded.
func (p *Producer) Stop() {
	p.mu.Lock()
	p.status = StatusTerminated
	p.pending = true
	p.cond.Broadcast()
	p.mu.Unlock()
}

// loop waits for a refill request, generates the next group, upsamples its
// waveform into the buffer NextSample isn't currently reading from, and
// goes back to waiting. It exits once Stop sets the status to terminated.
func (p *Producer) loop() {
	for {
		p.mu.Lock()
		for !p.pending {
			p.cond.Wait()
		}
		if p.status == StatusTerminated {
			p.mu.Unlock()
			return
		}
		idx := 1 - p.currentIdx
		p.pending = false
		p.mu.Unlock()

		group, err := p.scheduler.Next()
		if err != nil {
			p.mu.Lock()
			p.status = StatusFailed
			p.lastFailure = err
			p.mu.Unlock()
			p.failOnce.Do(func() { close(p.failed) })
			continue
		}

		waveform := p.engines.UpsampleRDS(group.Samples[:], nil)

		p.mu.Lock()
		p.buffers[idx] = outputBuffer{waveform: waveform}
		p.mu.Unlock()
	}
}

// NextSample returns the next baseband RDS sample for the 57kHz subcarrier
// to multiply against, advancing through the current buffer and triggering
// a background refill of the other one once it runs out. Returns 0 if the
// encoder is disabled or inactive.
func (p *Producer) NextSample() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != StatusActive || !p.st.Enabled {
		return 0
	}

	buf := &p.buffers[p.currentIdx]
	if buf.samplesOut < len(buf.waveform) {
		s := buf.waveform[buf.samplesOut]
		buf.samplesOut++
		return s
	}

	p.currentIdx = 1 - p.currentIdx
	p.pending = true
	p.cond.Signal()

	buf = &p.buffers[p.currentIdx]
	buf.samplesOut = 0
	if len(buf.waveform) == 0 {
		return 0
	}
	s := buf.waveform[0]
	buf.samplesOut = 1
	return s
}

// Status reports the encoder's current lifecycle state.
func (p *Producer) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Failed is closed the first time the scheduler hits an unrecoverable
// error and the encoder transitions ACTIVE->FAILED. The original raises
// SIGTERM at the host process from this point (rds_encoder.c); the Go
// caller is expected to select on this channel and do the same.
func (p *Producer) Failed() <-chan struct{} {
	return p.failed
}
