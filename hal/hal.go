package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Ranger measures the distance to the nearest obstacle.
type Ranger interface {
	// RangeCentimeters returns the measured distance. 0 means the
	// measurement failed; callers must treat it as "nothing in range".
	RangeCentimeters() int
}

// Motion reports the state of a passive-infrared motion sensor.
type Motion interface {
	Active() bool
}

// Serial is the byte link to the companion vision board.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// Panel is a fixed-size character display (16x2 on current targets).
//
// Print writes text starting at (row, col); writes past the right edge are
// clipped. Rows and columns are zero-based.
type Panel interface {
	Clear()
	Print(text string, row, col int)
	Size() (cols, rows int)
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined; current targets tick at 1 ms.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Ranger() Ranger
	Motion() Motion
	Serial() Serial
	Panel() Panel
	Time() Time
}
