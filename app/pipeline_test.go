package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"vigil/hal"
	"vigil/vigilos/proto"
)

const testTimeout = 2 * time.Second

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *fakeLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *fakeLogger) contains(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

type fakeLED struct {
	mu sync.Mutex
	on bool
}

func (l *fakeLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *fakeLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *fakeLED) lit() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

type fakeRanger struct{ d int }

func (r *fakeRanger) RangeCentimeters() int { return r.d }

type fakeMotion struct{ active bool }

func (m *fakeMotion) Active() bool { return m.active }

// fakeSerial plays the vision board: it records outbound capture bytes and
// hands inbound chunks to the pipeline one Read at a time.
type fakeSerial struct {
	rx chan []byte

	mu      sync.Mutex
	written []byte
}

func newFakeSerial() *fakeSerial {
	return &fakeSerial{rx: make(chan []byte)}
}

func (s *fakeSerial) Read(p []byte) (int, error) {
	chunk := <-s.rx
	return copy(p, chunk), nil
}

func (s *fakeSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, p...)
	return len(p), nil
}

func (s *fakeSerial) deliver(chunk []byte) { s.rx <- chunk }

func (s *fakeSerial) captureCount(sig byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Count(s.written, []byte{sig})
}

// fakePanel records every screen the panel service renders.
type fakePanel struct {
	mu      sync.Mutex
	top     string
	bottom  string
	history [][2]string
}

func (p *fakePanel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.top, p.bottom = "", ""
}

func (p *fakePanel) Print(text string, row, col int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if col != 0 {
		return
	}
	switch row {
	case 0:
		p.top = text
	case 1:
		p.bottom = text
	}
	p.history = append(p.history, [2]string{p.top, p.bottom})
}

func (p *fakePanel) Size() (cols, rows int) { return 16, 2 }

func (p *fakePanel) sawScreen(top, bottom string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.history {
		if s[0] == top && s[1] == bottom {
			return true
		}
	}
	return false
}

type fakeTime struct{ ch chan uint64 }

func (t *fakeTime) Ticks() <-chan uint64 { return t.ch }

type fakeHAL struct {
	logger *fakeLogger
	led    *fakeLED
	ranger *fakeRanger
	motion *fakeMotion
	serial *fakeSerial
	panel  *fakePanel
	t      *fakeTime
}

func (h *fakeHAL) Logger() hal.Logger { return h.logger }
func (h *fakeHAL) LED() hal.LED       { return h.led }
func (h *fakeHAL) Ranger() hal.Ranger { return h.ranger }
func (h *fakeHAL) Motion() hal.Motion { return h.motion }
func (h *fakeHAL) Serial() hal.Serial { return h.serial }
func (h *fakeHAL) Panel() hal.Panel   { return h.panel }
func (h *fakeHAL) Time() hal.Time     { return h.t }

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(testTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// TestPipelineEndToEnd runs the wired system against a scripted intruder:
// something at 180 cm with motion opens the gate, and two legacy score
// frames drive the verdict to "unlikely" (means 0.398 / 0.602).
func TestPipelineEndToEnd(t *testing.T) {
	h := &fakeHAL{
		logger: &fakeLogger{},
		led:    &fakeLED{},
		ranger: &fakeRanger{d: 180},
		motion: &fakeMotion{active: true},
		serial: newFakeSerial(),
		panel:  &fakePanel{},
		t:      &fakeTime{ch: make(chan uint64, 64)},
	}

	done := make(chan struct{})
	go func() {
		for seq := uint64(1); ; seq++ {
			select {
			case <-done:
				return
			default:
			}
			h.t.ch <- seq
			time.Sleep(10 * time.Microsecond)
		}
	}()
	t.Cleanup(func() { close(done) })

	_ = newSystem(h, Config{})

	// The gate opens on the first sweep.
	waitFor(t, "capture signal", func() bool {
		return h.serial.captureCount(proto.CaptureOn) >= 1
	})
	waitFor(t, "gate log line", func() bool {
		return h.logger.contains("fusion: gate open d=180cm motion=true")
	})
	waitFor(t, "alert screen", func() bool {
		return h.panel.sawScreen("MOVEMENT", "DETECTED")
	})
	if !h.led.lit() {
		t.Fatal("expected the LED to mirror the open gate")
	}

	// A second sweep means the decoder's link subscription is long since
	// registered; only then play the classifier's reply.
	waitFor(t, "second capture signal", func() bool {
		return h.serial.captureCount(proto.CaptureOn) >= 2
	})
	h.serial.deliver([]byte{proto.FrameStart, 3, proto.FrameEnd})
	h.serial.deliver([]byte{proto.FrameStart, 200, proto.FrameEnd})

	waitFor(t, "verdict screen", func() bool {
		return h.panel.sawScreen("NO PERSON", "AREA CLEAR")
	})
	waitFor(t, "verdict log line", func() bool {
		return h.logger.contains("renderer: verdict unlikely")
	})
}
