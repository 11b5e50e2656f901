package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrappedSentinelsMatchErrorsIs(t *testing.T) {
	cases := []error{
		ErrInvalidInput, ErrResampler, ErrTransport, ErrOutOfMemory,
		ErrOscillator, ErrRDS, ErrSHM, ErrFIFO, ErrRTP, ErrAlreadyRunning,
		ErrLPF, ErrHilbert, ErrAudioFilter,
	}

	for _, sentinel := range cases {
		wrapped := fmt.Errorf("%w: extra context", sentinel)
		if !errors.Is(wrapped, sentinel) {
			t.Errorf("errors.Is failed for wrapped %v", sentinel)
		}
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	cases := []error{
		ErrInvalidInput, ErrResampler, ErrTransport, ErrOutOfMemory,
		ErrOscillator, ErrRDS, ErrSHM, ErrFIFO, ErrRTP, ErrAlreadyRunning,
		ErrLPF, ErrHilbert, ErrAudioFilter,
	}

	for i, a := range cases {
		for j, b := range cases {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %d unexpectedly matches sentinel %d", i, j)
			}
		}
	}
}
