// Package audiotransport wraps gordonklaus/portaudio in a duplex stream
// that hands each audio block's stereo input straight to a callback and
// writes that callback's composite MPX output back out, replacing the
// original's cgo ALSA/OSS backend.
package audiotransport

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/UoC-Radio/jmpxrds-go/internal/errs"
)

// BlockFunc processes one audio block: inL/inR are the card's stereo
// capture for this block, and the implementation must fill mpxOut (sized
// for the card's block length) with the composite signal to play out.
type BlockFunc func(inL, inR, mpxOut []float32)

// Transport owns a single portaudio duplex stream.
type Transport struct {
	stream    *portaudio.Stream
	blockSize int
}

// Open initializes portaudio and opens the default duplex device at
// sampleRate with the given block size, dispatching every block to fn.
func Open(sampleRate float64, blockSize int, fn BlockFunc) (*Transport, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: portaudio init: %v", errs.ErrTransport, err)
	}

	cb := func(in, out [][]float32) {
		inL, inR := in[0], in[1]
		mpxOut := out[0]
		fn(inL, inR, mpxOut)
	}

	stream, err := portaudio.OpenDefaultStream(2, 1, sampleRate, blockSize, cb)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("%w: open stream: %v", errs.ErrTransport, err)
	}

	return &Transport{stream: stream, blockSize: blockSize}, nil
}

// Start begins audio callbacks.
func (t *Transport) Start() error {
	if err := t.stream.Start(); err != nil {
		return fmt.Errorf("%w: start stream: %v", errs.ErrTransport, err)
	}
	return nil
}

// Stop halts audio callbacks without closing the device.
func (t *Transport) Stop() error {
	if err := t.stream.Stop(); err != nil {
		return fmt.Errorf("%w: stop stream: %v", errs.ErrTransport, err)
	}
	return nil
}

// Close releases the stream and terminates portaudio. Safe to call once,
// after Stop.
func (t *Transport) Close() error {
	closeErr := t.stream.Close()
	termErr := portaudio.Terminate()
	if closeErr != nil {
		return fmt.Errorf("%w: close stream: %v", errs.ErrTransport, closeErr)
	}
	if termErr != nil {
		return fmt.Errorf("%w: terminate: %v", errs.ErrTransport, termErr)
	}
	return nil
}

// BlockSize reports the fixed number of frames delivered per callback.
func (t *Transport) BlockSize() int { return t.blockSize }
