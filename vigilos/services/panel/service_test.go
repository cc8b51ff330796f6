package panel

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

const testTimeout = 1 * time.Second

// stubPanel records display operations in call order.
type stubPanel struct {
	mu  sync.Mutex
	ops []string
}

func (p *stubPanel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, "clear")
}

func (p *stubPanel) Print(text string, row, col int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops = append(p.ops, fmt.Sprintf("print %d,%d %q", row, col, text))
}

func (p *stubPanel) Size() (cols, rows int) { return 16, 2 }

func (p *stubPanel) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.ops...)
}

type sendReq struct {
	kind    proto.Kind
	payload []byte
	done    chan<- kernel.SendResult
}

type senderTask struct {
	to   kernel.Capability
	reqs <-chan sendReq
}

func (t *senderTask) Run(ctx *kernel.Context) {
	for req := range t.reqs {
		req.done <- ctx.SendToCapResult(t.to, uint16(req.kind), req.payload, kernel.Capability{})
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

func waitForOps(t *testing.T, p *stubPanel, n int) []string {
	t.Helper()
	deadline := time.Now().Add(testTimeout)
	for time.Now().Before(deadline) {
		ops := p.snapshot()
		if len(ops) >= n {
			return ops
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d panel ops, got %v", n, p.snapshot())
	return nil
}

func assertOps(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ops %v, got %v", want, got)
		}
	}
}

func drawOps(top, bottom string) []string {
	return []string{
		"clear",
		fmt.Sprintf("print 0,0 %q", top),
		fmt.Sprintf("print 1,0 %q", bottom),
	}
}

type harness struct {
	panel *stubPanel
	reqs  chan sendReq
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	k := kernel.New()
	panelEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !panelEP.Valid() {
		t.Fatal("expected valid capability")
	}

	h := &harness{
		panel: &stubPanel{},
		reqs:  make(chan sendReq, 16),
	}
	k.AddTask(&senderTask{to: panelEP.Restrict(kernel.RightSend), reqs: h.reqs})
	k.AddTask(New(h.panel, panelEP.Restrict(kernel.RightRecv)))
	return h
}

func (h *harness) send(t *testing.T, kind proto.Kind, payload []byte) {
	t.Helper()
	done := make(chan kernel.SendResult, 1)
	h.reqs <- sendReq{kind: kind, payload: payload, done: done}
	if res := recvWithTimeout(t, done); res != kernel.SendOK {
		t.Fatalf("send %s: %s", kind, res)
	}
}

func (h *harness) draw(t *testing.T, top, bottom string) {
	t.Helper()
	h.send(t, proto.MsgPanelDraw, proto.PanelDrawPayload(top, bottom))
}

func TestDrawRendersBothRows(t *testing.T) {
	h := newHarness(t)

	h.draw(t, "MOVEMENT", "DETECTED")

	ops := waitForOps(t, h.panel, 3)
	assertOps(t, ops, drawOps("MOVEMENT", "DETECTED"))
}

func TestIdenticalDrawIsSkipped(t *testing.T) {
	h := newHarness(t)

	h.draw(t, "STANDBY", "")
	h.draw(t, "STANDBY", "")
	h.draw(t, "MOVEMENT", "DETECTED")

	// Requests are served in order, so once the second screen shows up the
	// duplicate has already been swallowed.
	ops := waitForOps(t, h.panel, 6)
	assertOps(t, ops, append(drawOps("STANDBY", ""), drawOps("MOVEMENT", "DETECTED")...))
}

func TestClearResetsDedupe(t *testing.T) {
	h := newHarness(t)

	h.draw(t, "STANDBY", "")
	h.send(t, proto.MsgPanelClear, nil)
	h.draw(t, "STANDBY", "")

	want := append(drawOps("STANDBY", ""), "clear")
	want = append(want, drawOps("STANDBY", "")...)
	ops := waitForOps(t, h.panel, len(want))
	assertOps(t, ops, want)
}

func TestMalformedDrawIsIgnored(t *testing.T) {
	h := newHarness(t)

	// Length byte claims more text than the payload carries.
	h.send(t, proto.MsgPanelDraw, []byte{200, 'x'})
	h.draw(t, "MOVEMENT", "DETECTED")

	ops := waitForOps(t, h.panel, 3)
	assertOps(t, ops, drawOps("MOVEMENT", "DETECTED"))
}
