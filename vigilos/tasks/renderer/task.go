package renderer

import (
	"vigil/vigilos/assess"
	logclient "vigil/vigilos/client/logger"
	monclient "vigil/vigilos/client/monitor"
	panelclient "vigil/vigilos/client/panel"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// renderPauseTicks rests the loop after a draw so the panel does not
// flicker. The no-match branch holds the previous screen and yields for a
// single tick only; the asymmetry is deliberate and kept.
const renderPauseTicks = 1000

// Task folds window snapshots into the displayed verdict.
type Task struct {
	ep       kernel.Capability
	panelCap kernel.Capability
	logCap   kernel.Capability
	monCap   kernel.Capability

	person   []float32
	noPerson []float32
	last     assess.Verdict
}

// New creates a renderer task.
func New(ep, panelCap, logCap, monCap kernel.Capability) *Task {
	return &Task{ep: ep, panelCap: panelCap, logCap: logCap, monCap: monCap}
}

// Run classifies and draws until power-off.
func (t *Task) Run(ctx *kernel.Context) {
	for {
		fresh := t.drain(ctx)

		meanPerson := assess.Mean(t.person)
		meanNoPerson := assess.Mean(t.noPerson)

		v, ok := assess.Classify(meanPerson, meanNoPerson)
		if !ok {
			// Band gap: hold the previous rendering.
			if fresh {
				t.report(ctx, meanPerson, meanNoPerson)
			}
			ctx.BlockOnTick()
			continue
		}

		if v != t.last {
			t.last = v
			_ = logclient.Logf(ctx, t.logCap, "renderer: verdict %s (person %.2f, no-person %.2f)",
				v, meanPerson, meanNoPerson)
		}
		top, bottom := screen(v)
		_ = panelclient.Draw(ctx, t.panelCap, top, bottom)
		if fresh {
			t.report(ctx, meanPerson, meanNoPerson)
		}
		ctx.WaitTicks(renderPauseTicks)
	}
}

// drain consumes every queued snapshot and keeps the newest.
func (t *Task) drain(ctx *kernel.Context) bool {
	fresh := false
	for {
		msg, ok := ctx.TryRecv(t.ep)
		if !ok {
			return fresh
		}
		if proto.Kind(msg.Kind) != proto.MsgWindowSnapshot {
			continue
		}
		person, noPerson, ok := proto.DecodeWindowSnapshotPayload(msg.Payload())
		if !ok {
			continue
		}
		t.person = person
		t.noPerson = noPerson
		fresh = true
	}
}

func (t *Task) report(ctx *kernel.Context, meanPerson, meanNoPerson float32) {
	_ = monclient.Report(ctx, t.monCap, proto.MsgVerdictStatus,
		proto.VerdictStatusPayload(uint8(t.last), meanPerson, meanNoPerson,
			uint8(len(t.person)), uint8(len(t.noPerson))))
}

// screen maps a verdict onto its two panel rows.
func screen(v assess.Verdict) (top, bottom string) {
	switch v {
	case assess.HighLikelihood:
		return "PERSON DETECTED", "HIGH CONFIDENCE"
	case assess.SomewhatLikely:
		return "PERSON LIKELY", "CHECK FEED"
	case assess.Indeterminate:
		return "SIGNAL UNCLEAR", "AWAIT SCORES"
	case assess.Unlikely:
		return "NO PERSON", "AREA CLEAR"
	default:
		return "STANDBY", ""
	}
}
