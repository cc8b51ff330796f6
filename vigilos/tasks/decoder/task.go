package decoder

import (
	"vigil/vigilos/assess"
	linkclient "vigil/vigilos/client/link"
	logclient "vigil/vigilos/client/logger"
	monclient "vigil/vigilos/client/monitor"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// handoffTicks bounds the wait for a free aggregator slot. Past it the
// frame is dropped and scanning resumes; frame loss under backpressure is
// accepted, never escalated.
const handoffTicks = 100

// maxPayload is the retained frame payload size. Frames carrying more
// bytes keep the most recent two (last write wins, as with the original
// single-byte format).
const maxPayload = 2

// Task reassembles score frames from the link byte stream and hands each
// decoded pair to the aggregator through the single-slot endpoint.
type Task struct {
	linkCap kernel.Capability
	aggCap  kernel.Capability
	logCap  kernel.Capability
	monCap  kernel.Capability

	inFrame bool
	payload [maxPayload]byte
	n       int

	decoded        uint32
	dropped        uint32
	corrupt        uint32
	discardedBytes uint32
}

// New creates a decoder task.
func New(linkCap, aggCap, logCap, monCap kernel.Capability) *Task {
	return &Task{linkCap: linkCap, aggCap: aggCap, logCap: logCap, monCap: monCap}
}

// Run subscribes to the link and scans the byte stream until it closes.
func (t *Task) Run(ctx *kernel.Context) {
	rxEP := ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	if !rxEP.Valid() {
		return
	}
	if res := linkclient.Subscribe(ctx, t.linkCap, rxEP.Restrict(kernel.RightSend)); res != kernel.SendOK {
		_ = logclient.Logf(ctx, t.logCap, "decoder: link subscribe: %s", res)
		return
	}

	ch, ok := ctx.RecvChan(rxEP.Restrict(kernel.RightRecv))
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgLinkData {
			continue
		}
		for _, b := range msg.Payload() {
			t.scan(ctx, b)
		}
	}
}

// scan advances the frame state machine by one byte.
func (t *Task) scan(ctx *kernel.Context, b byte) {
	switch {
	case !t.inFrame:
		if b == proto.FrameStart {
			t.openFrame()
			return
		}
		t.discardedBytes++

	case b == proto.FrameStart:
		// A second start abandons the open frame; the most recent one wins.
		t.corrupt++
		t.openFrame()

	case b == proto.FrameEnd:
		t.closeFrame(ctx)

	default:
		t.retain(b)
	}
}

func (t *Task) openFrame() {
	t.inFrame = true
	t.n = 0
}

func (t *Task) retain(b byte) {
	if t.n < maxPayload {
		t.payload[t.n] = b
		t.n++
		return
	}
	t.payload[0] = t.payload[1]
	t.payload[1] = b
}

func (t *Task) closeFrame(ctx *kernel.Context) {
	t.inFrame = false
	if t.n == 0 {
		// Empty <> frame.
		t.corrupt++
		t.reportStats(ctx)
		return
	}

	pair, ok := assess.PairFromPayload(t.payload[:t.n])
	if !ok {
		t.corrupt++
		t.reportStats(ctx)
		return
	}

	res := ctx.SendToCapRetry(t.aggCap, uint16(proto.MsgScorePair),
		proto.ScorePairPayload(pair.Person, pair.NoPerson), kernel.Capability{}, handoffTicks)
	switch res {
	case kernel.SendOK:
		t.decoded++
	case kernel.SendErrQueueFull:
		t.dropped++
	default:
		t.dropped++
		_ = logclient.Logf(ctx, t.logCap, "decoder: hand-off: %s", res)
	}
	t.reportStats(ctx)
}

func (t *Task) reportStats(ctx *kernel.Context) {
	_ = monclient.Report(ctx, t.monCap, proto.MsgLinkStats,
		proto.LinkStatsPayload(t.decoded, t.dropped, t.corrupt, t.discardedBytes))
}
