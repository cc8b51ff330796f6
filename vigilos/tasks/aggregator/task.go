package aggregator

import (
	"vigil/vigilos/assess"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Task owns the two class windows. It blocks on the single-slot hand-off
// endpoint with no timeout (aggregation has nothing to do without input),
// absorbs each score pair, and publishes a window snapshot downstream.
//
// The blocking Recv is also what frees the hand-off slot for the decoder's
// next bounded send.
type Task struct {
	ep      kernel.Capability
	rendCap kernel.Capability

	person   assess.Window
	noPerson assess.Window
}

// New creates an aggregator task.
func New(ep, rendCap kernel.Capability) *Task {
	return &Task{ep: ep, rendCap: rendCap}
}

// Run absorbs score pairs until the endpoint closes.
func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) != proto.MsgScorePair {
			continue
		}
		person, noPerson, ok := proto.DecodeScorePairPayload(msg.Payload())
		if !ok {
			continue
		}
		t.person.Push(person)
		t.noPerson.Push(noPerson)
		t.publish(ctx)
	}
}

// publish sends a copy of both windows to the renderer, best-effort.
func (t *Task) publish(ctx *kernel.Context) {
	_ = ctx.SendToCapResult(t.rendCap, uint16(proto.MsgWindowSnapshot),
		proto.WindowSnapshotPayload(t.person.Values(), t.noPerson.Values()), kernel.Capability{})
}
