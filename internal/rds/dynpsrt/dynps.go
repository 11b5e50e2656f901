package dynpsrt

import (
	"errors"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
)

// errNoFixedPS is returned by New when the station hasn't configured a
// fixed PS yet; dynamic PS has nothing to fall back to between scrolls
// without one.
var errNoFixedPS = errors.New("dynpsrt: fixed PS must be set before enabling dynamic PS")

// MaxChars bounds how many characters of the watched file's first line are
// used per update; dynamic PSN scrolls through them eight at a time.
const MaxChars = 64

// ScrollDelay is how long each 8-character PS segment stays on screen
// before advancing, per the "scroll by 8 characters" mode the original
// settled on as the most broadly compatible.
const ScrollDelay = 3 * time.Second

// spaces pads a trailing short PS segment out to rds.PSLength; receivers
// display PS with trailing blanks rather than the NUL SetPS would otherwise
// leave in place of a short string.
const spaces = "        "

// DynPS scrolls a station's PS field through the contents of a watched
// text file, falling back to the station's originally-configured PS
// whenever the scrolling text wraps around.
type DynPS struct {
	st      *rds.State
	fixedPS string

	stop chan struct{}
	done chan struct{}

	text      string
	remaining string
}

// New builds a DynPS driving st's PS field from the contents of filepath.
// The station must already have a fixed PS configured (DynPS remembers it
// as the fallback shown between scrolls); it refuses to start otherwise.
func New(st *rds.State, filepath string) (*DynPS, error) {
	if !st.PSSet {
		return nil, errNoFixedPS
	}

	d := &DynPS{
		st:      st,
		fixedPS: string(st.PS[:]),
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
// PS, mirroring rds_dynps_destroy's graceful-exit behavior.
func (d *DynPS) Close() {
	close(d.stop)
	<-d.done
	_ = d.st.SetPS(d.fixedPS)
}

func (d *DynPS) filemon(w *fileWatcher) {
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
			contents, err := os.ReadFile(w.path)
			if err != nil {
				continue
			}
			line, _, _ := strings.Cut(string(contents), "\n")
			text := sanitize(truncate(line, MaxChars))
			d.text = text
			d.remaining = text
		}
	}
}

func (d *DynPS) consume() {
	defer close(d.done)

	ticker := time.NewTicker(ScrollDelay)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			if d.text == "" {
				continue
			}
			if d.remaining == "" {
				_ = d.st.SetPS(d.fixedPS)
				d.remaining = d.text
				continue
			}

			segment := d.remaining
			if len(segment) > rds.PSLength {
				segment = segment[:rds.PSLength]
			} else if len(segment) < rds.PSLength {
				segment += spaces[:rds.PSLength-len(segment)]
			}
			_ = d.st.SetPS(segment)

			if len(d.remaining) > rds.PSLength {
				d.remaining = d.remaining[rds.PSLength:]
			} else {
				d.remaining = ""
			}
		}
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// fileWatcher wraps an inotify instance watching a single path for
// modification and deletion.
type fileWatcher struct {
	path string
	fd   int
	wd   int
	ch   chan struct{}
}

func newFileWatcher(path string) (*fileWatcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}

	wd, err := unix.InotifyAddWatch(fd, path, unix.IN_MODIFY|unix.IN_IGNORED)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}

	w := &fileWatcher{path: path, fd: fd, wd: wd, ch: make(chan struct{}, 1)}
	go w.readLoop()
	return w, nil
}

func (w *fileWatcher) readLoop() {
	buf := make([]byte, unix.SizeofInotifyEvent+unix.PathMax+1)
	for {
		n, err := unix.Read(w.fd, buf)
		if err != nil || n == 0 {
			close(w.ch)
			return
		}
		select {
		case w.ch <- struct{}{}:
		default:
		}
	}
}

func (w *fileWatcher) events() <-chan struct{} { return w.ch }

func (w *fileWatcher) close() {
	unix.InotifyRmWatch(w.fd, uint32(w.wd))
	unix.Close(w.fd)
}
