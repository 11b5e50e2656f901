// Package logging sets up the per-subsystem structured loggers used
// throughout the service: one charmbracelet/log logger per component
// (oscillator, filters, resampler, rds, mpx, ctlplane, boundary), each
// tagged with its own prefix, in place of the original's
// utils_ann/info/wrn/err/perr console helpers.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Component names for the loggers New returns; also used as each logger's
// prefix so interleaved output stays attributable.
const (
	Oscillator = "oscillator"
	Filters    = "filters"
	Resampler  = "resampler"
	RDS        = "rds"
	MPX        = "mpx"
	CtlPlane   = "ctlplane"
	Boundary   = "boundary"
)

// Options controls where log output goes and how verbose it is; the
// service binary builds one of these from its -v flag and passes it to
// every New call.
type Options struct {
	Writer   io.Writer
	Debug    bool
	ReportTS bool
}

// DefaultOptions writes to stderr at info level with timestamps, matching
// the original's console-output default.
func DefaultOptions() Options {
	return Options{Writer: os.Stderr, Debug: false, ReportTS: true}
}

// New builds a component-scoped logger. component is typically one of the
// constants above but any string is accepted so boundary adapters can
// further scope themselves (e.g. "boundary.rtpegress").
func New(component string, opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: opts.ReportTS,
		Prefix:          component,
	})

	if opts.Debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}

	return l
}
