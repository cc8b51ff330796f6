package link

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

const testTimeout = 1 * time.Second

// stubSerial hands out inbound chunks one Read at a time. The rx channel is
// unbuffered, so deliver returns only once the service has picked the chunk
// up and finished forwarding the previous one.
type stubSerial struct {
	rx chan []byte

	mu      sync.Mutex
	written []byte
}

func newStubSerial() *stubSerial {
	return &stubSerial{rx: make(chan []byte)}
}

func (s *stubSerial) Read(p []byte) (int, error) {
	chunk := <-s.rx
	return copy(p, chunk), nil
}

func (s *stubSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = append(s.written, p...)
	return len(p), nil
}

func (s *stubSerial) deliver(chunk []byte) {
	s.rx <- chunk
}

func (s *stubSerial) snapshotWritten() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.written...)
}

type sendReq struct {
	kind    proto.Kind
	payload []byte
	xfer    kernel.Capability
	done    chan<- kernel.SendResult
}

type senderTask struct {
	to   kernel.Capability
	reqs <-chan sendReq
}

func (t *senderTask) Run(ctx *kernel.Context) {
	for req := range t.reqs {
		req.done <- ctx.SendToCapResult(t.to, uint16(req.kind), req.payload, req.xfer)
	}
}

type recvTask struct {
	cap kernel.Capability
	out chan<- kernel.Message
}

func (t *recvTask) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.cap)
	if !ok {
		return
	}
	for msg := range ch {
		t.out <- msg
	}
}

func recvWithTimeout[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
		var zero T
		return zero
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(testTimeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached")
}

type harness struct {
	k      *kernel.Kernel
	serial *stubSerial
	reqs   chan sendReq
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	k := kernel.New()
	linkEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !linkEP.Valid() {
		t.Fatal("expected valid capability")
	}

	h := &harness{
		k:      k,
		serial: newStubSerial(),
		reqs:   make(chan sendReq, 16),
	}
	k.AddTask(&senderTask{to: linkEP.Restrict(kernel.RightSend), reqs: h.reqs})
	k.AddTask(New(h.serial, linkEP.Restrict(kernel.RightRecv), kernel.Capability{}))
	return h
}

func (h *harness) send(t *testing.T, kind proto.Kind, payload []byte, xfer kernel.Capability) {
	t.Helper()
	done := make(chan kernel.SendResult, 1)
	h.reqs <- sendReq{kind: kind, payload: payload, xfer: xfer, done: done}
	if res := recvWithTimeout(t, done); res != kernel.SendOK {
		t.Fatalf("send %s: %s", kind, res)
	}
}

// subscribe registers out as the link subscriber and waits until the
// service has acted on it, using a write as the ordering barrier: requests
// are served in order, so once the barrier byte reaches the stub the
// subscription is live.
func (h *harness) subscribe(t *testing.T, out chan<- kernel.Message, barrier byte) {
	t.Helper()
	rxEP := h.k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !rxEP.Valid() {
		t.Fatal("expected valid capability")
	}
	h.k.AddTask(&recvTask{cap: rxEP.Restrict(kernel.RightRecv), out: out})
	h.send(t, proto.MsgLinkSubscribe, nil, rxEP.Restrict(kernel.RightSend))
	h.send(t, proto.MsgLinkWrite, []byte{barrier}, kernel.Capability{})
	waitFor(t, func() bool {
		return bytes.Contains(h.serial.snapshotWritten(), []byte{barrier})
	})
}

func expectChunk(t *testing.T, out <-chan kernel.Message, want []byte) {
	t.Helper()
	msg := recvWithTimeout(t, out)
	if proto.Kind(msg.Kind) != proto.MsgLinkData {
		t.Fatalf("expected MsgLinkData, got %s", proto.Kind(msg.Kind))
	}
	if !bytes.Equal(msg.Payload(), want) {
		t.Fatalf("expected chunk %v, got %v", want, msg.Payload())
	}
}

func TestWritePassesThrough(t *testing.T) {
	h := newHarness(t)

	h.send(t, proto.MsgLinkWrite, []byte{proto.CaptureOn}, kernel.Capability{})
	h.send(t, proto.MsgLinkWrite, []byte{proto.CaptureOff}, kernel.Capability{})

	waitFor(t, func() bool {
		return bytes.Equal(h.serial.snapshotWritten(), []byte{proto.CaptureOn, proto.CaptureOff})
	})
}

func TestSubscriberReceivesChunks(t *testing.T) {
	h := newHarness(t)
	out := make(chan kernel.Message, 16)
	h.subscribe(t, out, 'A')

	chunk := []byte{proto.FrameStart, 5, proto.FrameEnd}
	h.serial.deliver(chunk)
	expectChunk(t, out, chunk)

	h.serial.deliver([]byte{7})
	expectChunk(t, out, []byte{7})
}

func TestSubscribeReplacesPrevious(t *testing.T) {
	h := newHarness(t)

	outA := make(chan kernel.Message, 16)
	h.subscribe(t, outA, 'A')
	h.serial.deliver([]byte{1})
	expectChunk(t, outA, []byte{1})

	outB := make(chan kernel.Message, 16)
	h.subscribe(t, outB, 'B')
	h.serial.deliver([]byte{2})
	expectChunk(t, outB, []byte{2})

	select {
	case msg := <-outA:
		t.Fatalf("replaced subscriber still receives: %s", proto.Kind(msg.Kind))
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBytesBeforeSubscribeAreDropped(t *testing.T) {
	h := newHarness(t)

	// Nobody is listening yet; the chunk is forwarded nowhere.
	h.serial.deliver([]byte{9})
	time.Sleep(20 * time.Millisecond)

	out := make(chan kernel.Message, 16)
	h.subscribe(t, out, 'A')
	h.serial.deliver([]byte{8})

	expectChunk(t, out, []byte{8})
	select {
	case msg := <-out:
		t.Fatalf("unexpected message: %s", proto.Kind(msg.Kind))
	case <-time.After(50 * time.Millisecond):
	}
}
