package clsim

import (
	"context"
	"net"
	"testing"
	"time"

	"vigil/vigilos/assess"
)

func TestNextFrameFormats(t *testing.T) {
	e := New(Config{Profile: ProfilePerson, Seed: 1})
	e.setCapturing(true)

	frame := e.nextFrame()
	if len(frame) != 4 || frame[0] != '<' || frame[3] != '>' {
		t.Fatalf("expected <pp> frame, got %v", frame)
	}
	person := assess.ScoreFromByte(frame[1])
	noPerson := assess.ScoreFromByte(frame[2])
	if person <= 0.8 || noPerson >= 0.2 {
		t.Fatalf("person profile out of band: person=%v noPerson=%v", person, noPerson)
	}

	e = New(Config{Profile: ProfileEmpty, Legacy: true, Seed: 1})
	frame = e.nextFrame()
	if len(frame) != 3 || frame[0] != '<' || frame[2] != '>' {
		t.Fatalf("expected legacy <p> frame, got %v", frame)
	}
	if got := assess.ScoreFromByte(frame[1]); got >= 0.2 {
		t.Fatalf("empty profile person score too high: %v", got)
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("")
	if err != nil || p != ProfilePerson {
		t.Fatalf("expected default person profile, got %s err=%v", p, err)
	}
	if _, err := ParseProfile("bogus"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestRunEmitsOnlyWhileCapturing(t *testing.T) {
	local, remote := net.Pipe()
	defer local.Close()

	e := New(Config{Profile: ProfilePerson, Period: 5 * time.Millisecond, Seed: 42})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Run(ctx, remote)

	// Quiet until capture turns on.
	local.SetReadDeadline(time.Now().Add(30 * time.Millisecond))
	buf := make([]byte, 16)
	if n, _ := local.Read(buf); n != 0 {
		t.Fatalf("expected no frames before capture, got %v", buf[:n])
	}

	if _, err := local.Write([]byte{'1'}); err != nil {
		t.Fatal(err)
	}
	local.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	n, err := local.Read(buf)
	if err != nil || n == 0 {
		t.Fatalf("expected a frame after capture on, err=%v", err)
	}
	if buf[0] != '<' {
		t.Fatalf("expected frame start, got %v", buf[:n])
	}
}
