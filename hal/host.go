//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	scene  *scene
	ranger *hostRanger
	motion *hostMotion
	panel  *hostPanel
	fb     *hostFramebuffer
	serial Serial
	t      *hostTime
}

// Options configure the simulated devices on host.
type Options struct {
	// Scene scripts the simulated sensors over tick time. Empty means an
	// idle scene (nothing in range, no motion).
	Scene []SceneStep

	// LinkAddr attaches the vision-board link to a TCP endpoint instead
	// of the in-process simulator.
	LinkAddr string

	// Profile selects the in-process simulator behavior when LinkAddr is
	// empty. Empty means "person".
	Profile string

	// LegacyFrames makes the in-process simulator emit single-byte score
	// frames.
	LegacyFrames bool

	// EchoPanel mirrors panel redraws to the logger (headless mode).
	EchoPanel bool
}

// New returns a host HAL with default options.
func New() HAL {
	h, err := NewWithOptions(Options{})
	if err != nil {
		panic(err)
	}
	return h
}

// NewWithOptions returns a host HAL with simulated devices.
func NewWithOptions(opts Options) (HAL, error) {
	logger := &hostLogger{w: os.Stdout}
	sc := newScene(opts.Scene)

	serial, err := newHostLink(opts)
	if err != nil {
		return nil, fmt.Errorf("host link: %w", err)
	}

	var echo *hostLogger
	if opts.EchoPanel {
		echo = logger
	}

	return &hostHAL{
		logger: logger,
		led:    &hostLED{},
		scene:  sc,
		ranger: &hostRanger{scene: sc},
		motion: &hostMotion{scene: sc},
		panel:  newHostPanel(16, 2, echo),
		fb:     newHostFramebuffer(panelViewWidth, panelViewHeight),
		serial: serial,
		t:      newHostTime(),
	}, nil
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Ranger() Ranger { return h.ranger }
func (h *hostHAL) Motion() Motion { return h.motion }
func (h *hostHAL) Serial() Serial { return h.serial }
func (h *hostHAL) Panel() Panel   { return h.panel }
func (h *hostHAL) Time() Time     { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *hostLED) lit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
