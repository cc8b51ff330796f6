// Package clsim simulates the companion vision board: it consumes capture
// signal bytes over a serial link and, while capture is requested, emits
// framed classification scores.
package clsim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"vigil/vigilos/assess"
	"vigil/vigilos/proto"
)

// Profile selects what the simulated classifier claims to see.
type Profile uint8

const (
	// ProfilePerson emits high person confidence, low no-person.
	ProfilePerson Profile = iota
	// ProfileEmpty emits low person confidence, high no-person.
	ProfileEmpty
	// ProfileUncertain emits high confidence on both outputs.
	ProfileUncertain
	// ProfileNoise emits uniform random scores and occasional stray bytes
	// outside frames.
	ProfileNoise
)

func (p Profile) String() string {
	switch p {
	case ProfilePerson:
		return "person"
	case ProfileEmpty:
		return "empty"
	case ProfileUncertain:
		return "uncertain"
	case ProfileNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// ParseProfile parses a profile name.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "", "person":
		return ProfilePerson, nil
	case "empty":
		return ProfileEmpty, nil
	case "uncertain":
		return ProfileUncertain, nil
	case "noise":
		return ProfileNoise, nil
	default:
		return 0, fmt.Errorf("unknown classifier profile %q", s)
	}
}

// Config controls a simulation engine.
type Config struct {
	Profile Profile
	// Legacy emits single-byte score frames instead of the two-byte format.
	Legacy bool
	// Period is the frame emission interval while capture is on.
	// Zero means 200ms.
	Period time.Duration
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64
}

// Engine drives one simulated vision board over an arbitrary byte link.
type Engine struct {
	cfg Config
	rng *rand.Rand

	mu        sync.Mutex
	capturing bool
}

// New creates a simulation engine.
func New(cfg Config) *Engine {
	if cfg.Period <= 0 {
		cfg.Period = 200 * time.Millisecond
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Run services the link until ctx is canceled or the link fails.
//
// Reads and writes run concurrently: capture bytes are consumed as they
// arrive while frames are emitted on the configured period.
func (e *Engine) Run(ctx context.Context, rw io.ReadWriter) error {
	readErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := rw.Read(buf)
			for _, b := range buf[:n] {
				switch b {
				case proto.CaptureOn:
					e.setCapturing(true)
				case proto.CaptureOff:
					e.setCapturing(false)
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	ticker := time.NewTicker(e.cfg.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("clsim read: %w", err)
		case <-ticker.C:
			if !e.Capturing() {
				continue
			}
			if _, err := rw.Write(e.nextFrame()); err != nil {
				return fmt.Errorf("clsim write: %w", err)
			}
		}
	}
}

func (e *Engine) setCapturing(on bool) {
	e.mu.Lock()
	e.capturing = on
	e.mu.Unlock()
}

// Capturing reports whether the last capture signal byte was '1'.
func (e *Engine) Capturing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capturing
}

// nextFrame builds one framed score report for the configured profile.
func (e *Engine) nextFrame() []byte {
	person, noPerson := e.nextScores()

	frame := make([]byte, 0, 5)
	if e.cfg.Profile == ProfileNoise && e.rng.Intn(10) == 0 {
		// Stray byte between frames; the decoder must skip it.
		frame = append(frame, byte(e.rng.Intn(256)))
	}
	frame = append(frame, proto.FrameStart, assess.ByteFromScore(person))
	if !e.cfg.Legacy {
		frame = append(frame, assess.ByteFromScore(noPerson))
	}
	return append(frame, proto.FrameEnd)
}

func (e *Engine) nextScores() (person, noPerson float32) {
	jitter := func(center, spread float32) float32 {
		v := center + (e.rng.Float32()-0.5)*2*spread
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return v
	}

	switch e.cfg.Profile {
	case ProfileEmpty:
		return jitter(0.1, 0.08), jitter(0.9, 0.08)
	case ProfileUncertain:
		return jitter(0.62, 0.06), jitter(0.62, 0.06)
	case ProfileNoise:
		return e.rng.Float32(), e.rng.Float32()
	default:
		return jitter(0.9, 0.07), jitter(0.08, 0.06)
	}
}
