package dynpsrt

import (
	"bufio"
	"errors"
	"os"
	"time"

	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
)

// MaxSegments bounds how many lines of the watched file are read; dynamic
// RT rotates between them in order, looping back to the first once it
// reaches the end.
const MaxSegments = 3

// RotateDelay is how long each RT segment stays on air before the next one.
const RotateDelay = 10 * time.Second

// errNoFixedRT is returned by NewRT when the station hasn't configured a
// fixed RT message yet; dynamic RT falls back to it whenever the watched
// file yields no usable segments.
var errNoFixedRT = errors.New("dynpsrt: fixed RT must be set before enabling dynamic RT")

// DynRT rotates a station's RadioText message through the lines of a
// watched text file, falling back to the station's originally-configured
// RT message whenever the file yields no usable segments.
type DynRT struct {
	st      *rds.State
	fixedRT string

	stop chan struct{}
	done chan struct{}

	segments []string
	current  int
}

// NewRT builds a DynRT driving st's RT field from the lines of filepath,
// rotating segments every RotateDelay.
func NewRT(st *rds.State, filepath string) (*DynRT, error) {
	if !st.RTSet {
		return nil, errNoFixedRT
	}

	d := &DynRT{
		st:      st,
		fixedRT: string(st.RT[:]),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	watcher, err := newFileWatcher(filepath)
	if err != nil {
		return nil, err
	}

	go d.filemon(watcher)
	go d.consume()

	return d, nil
}

// Close stops both background goroutines and restores the station's fixed
// RT message.
func (d *DynRT) Close() {
	close(d.stop)
	<-d.done
	_ = d.st.SetRT(d.fixedRT, true)
}

func (d *DynRT) filemon(w *fileWatcher) {
	defer w.close()

	events := w.events()
	for {
		select {
		case <-d.stop:
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			segments := readSegments(w.path)
			d.segments = segments
			if len(segments) == 0 {
				_ = d.st.SetRT(d.fixedRT, true)
			}
		}
	}
}

func (d *DynRT) consume() {
	defer close(d.done)

	ticker := time.NewTicker(RotateDelay)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			if len(d.segments) == 0 {
				continue
			}
			if d.current >= len(d.segments) {
				d.current = 0
			}
			_ = d.st.SetRT(d.segments[d.current], true)
			d.current++
		}
	}
}

// readSegments reads up to MaxSegments lines from filepath, sanitizing
// each and skipping any longer than the RT field's fixed width.
func readSegments(filepath string) []string {
	f, err := os.Open(filepath)
	if err != nil {
		return nil
	}
	defer f.Close()

	var segments []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(segments) < MaxSegments {
		line := sanitize(scanner.Text())
		if line == "" || len(line) > rds.RTLength {
			continue
		}
		segments = append(segments, line)
	}

	return segments
}
