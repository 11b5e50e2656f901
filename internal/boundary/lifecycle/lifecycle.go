// Package lifecycle handles process-level signal delivery: ordered
// teardown on SIGQUIT/SIGTERM/SIGHUP/SIGINT, SIGPIPE ignored so a FIFO
// reader going away surfaces as an EPIPE return rather than killing the
// process, and SIGUSR1/SIGUSR2 as RTP receiver add/remove wakeups. The
// signal-handling goroutine only ever enqueues onto a channel - no
// allocation, no blocking call, nothing else - honoring the
// async-signal-safe contract the original's sigaction handlers relied on.
package lifecycle

import (
	"os"
	"os/signal"
	"syscall"
)

// RTPSignal identifies which receiver-management signal fired.
type RTPSignal int

const (
	RTPAdd RTPSignal = iota
	RTPRemove
)

// Handler receives shutdown requests and RTP receiver management wakeups.
type Handler struct {
	Shutdown chan os.Signal
	RTP      chan RTPSignal

	sigCh chan os.Signal
}

// New installs signal handling: SIGPIPE is ignored outright,
// SIGQUIT/SIGTERM/SIGHUP/SIGINT are delivered on Shutdown, and
// SIGUSR1/SIGUSR2 are translated to RTPAdd/RTPRemove on RTP.
func New() *Handler {
	signal.Ignore(syscall.SIGPIPE)

	h := &Handler{
		Shutdown: make(chan os.Signal, 1),
		RTP:      make(chan RTPSignal, 16),
		sigCh:    make(chan os.Signal, 16),
	}

	signal.Notify(h.sigCh,
		syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT,
		syscall.SIGUSR1, syscall.SIGUSR2,
	)

	go h.dispatch()

	return h
}

func (h *Handler) dispatch() {
	for sig := range h.sigCh {
		switch sig {
		case syscall.SIGUSR1:
			select {
			case h.RTP <- RTPAdd:
			default:
			}
		case syscall.SIGUSR2:
			select {
			case h.RTP <- RTPRemove:
			default:
			}
		default:
			select {
			case h.Shutdown <- sig:
			default:
			}
			return
		}
	}
}

// Stop stops receiving signals.
func (h *Handler) Stop() {
	signal.Stop(h.sigCh)
	close(h.sigCh)
}
