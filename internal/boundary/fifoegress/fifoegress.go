// Package fifoegress writes the downsampled MPX stream out to a named
// FIFO for consumers that read raw samples directly (e.g. a software
// exciter), mirroring the original's raw FIFO egress without its cgo
// open/write wrappers.
package fifoegress

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/sys/unix"

	"github.com/UoC-Radio/jmpxrds-go/internal/errs"
)

// Writer owns a named FIFO at Path, opened write-non-blocking once a
// reader is present, and reopened transparently after the reader goes
// away.
type Writer struct {
	path string
	fd   int // -1 when not currently open
	buf  []byte
}

// Create makes the named FIFO at path (mode 0600) if it doesn't already
// exist. Call once at startup.
func Create(path string) error {
	if err := unix.Mkfifo(path, 0o600); err != nil && err != unix.EEXIST {
		return fmt.Errorf("%w: mkfifo %s: %v", errs.ErrFIFO, path, err)
	}
	return nil
}

// New returns a Writer for the FIFO at path. The FIFO is not opened until
// the first WriteSamples call succeeds in finding a reader.
func New(path string) *Writer {
	return &Writer{path: path, fd: -1}
}

// WriteSamples encodes samples as consecutive little-endian float32 values
// and writes them to the FIFO, opening it (non-blocking) first if it
// isn't already open. A missing reader (ENXIO from the non-blocking open,
// or EAGAIN from the write) is not an error: it just means there is
// nothing to write to yet, and the next call tries again. EPIPE closes
// the descriptor so the next call reopens fresh.
func (w *Writer) WriteSamples(samples []float32) error {
	if w.fd < 0 {
		fd, err := unix.Open(w.path, unix.O_WRONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			if err == unix.ENXIO || err == unix.ENOENT {
				return nil
			}
			return fmt.Errorf("%w: open %s: %v", errs.ErrFIFO, w.path, err)
		}
		w.fd = fd
	}

	needed := len(samples) * 4
	if cap(w.buf) < needed {
		w.buf = make([]byte, needed)
	}
	w.buf = w.buf[:needed]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(w.buf[i*4:], math.Float32bits(s))
	}

	_, err := unix.Write(w.fd, w.buf)
	switch err {
	case nil:
		return nil
	case unix.EAGAIN:
		return nil
	case unix.EPIPE:
		unix.Close(w.fd)
		w.fd = -1
		return nil
	default:
		return fmt.Errorf("%w: write %s: %v", errs.ErrFIFO, w.path, err)
	}
}

// Close releases the FIFO descriptor if open.
func (w *Writer) Close() error {
	if w.fd < 0 {
		return nil
	}
	fd := w.fd
	w.fd = -1
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("%w: close %s: %v", errs.ErrFIFO, w.path, err)
	}
	return nil
}
