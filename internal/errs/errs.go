// Package errs defines the service's error taxonomy as sentinel values.
// Call sites wrap one of these with fmt.Errorf("%w: ...") for context;
// callers distinguish kinds with errors.Is rather than string matching.
package errs

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrResampler      = errors.New("resampler error")
	ErrTransport      = errors.New("transport error")
	ErrOutOfMemory    = errors.New("out of memory")
	ErrOscillator     = errors.New("oscillator error")
	ErrRDS            = errors.New("rds error")
	ErrSHM            = errors.New("shared-memory error")
	ErrFIFO           = errors.New("fifo error")
	ErrRTP            = errors.New("rtp error")
	ErrAlreadyRunning = errors.New("already running")
	ErrLPF            = errors.New("lpf error")
	ErrHilbert        = errors.New("hilbert error")
	ErrAudioFilter    = errors.New("audio filter error")
)
