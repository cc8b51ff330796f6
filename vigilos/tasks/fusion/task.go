package fusion

import (
	"vigil/hal"
	linkclient "vigil/vigilos/client/link"
	logclient "vigil/vigilos/client/logger"
	monclient "vigil/vigilos/client/monitor"
	panelclient "vigil/vigilos/client/panel"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Gate thresholds in centimeters. The operative window is
// MinDistanceCm < d < MaxDistanceCm; HardCapCm rejects out-of-range sensor
// noise before the window is considered. A fault reading of 0 fails the
// lower bound, so a broken ranger can never open the gate.
const (
	MinDistanceCm = 150
	MaxDistanceCm = 210
	HardCapCm     = 500
)

// sweepTicks is the sampling cadence: one sensor sweep per 100 kernel ticks.
const sweepTicks = 100

const (
	alertTop      = "MOVEMENT"
	alertBottom   = "DETECTED"
	standbyTop    = "STANDBY"
	standbyBottom = ""
)

// Task fuses the ranger and the motion sensor into the capture gate. Every
// sweep it reports the gate as a capture signal byte over the link, mirrors
// it on the panel and the LED, and on gate transitions posts a capture-edge
// event to the monitor.
type Task struct {
	ranger hal.Ranger
	motion hal.Motion
	led    hal.LED

	linkCap  kernel.Capability
	panelCap kernel.Capability
	logCap   kernel.Capability
	monCap   kernel.Capability

	capturing bool
}

// New creates a fusion task.
func New(ranger hal.Ranger, motion hal.Motion, led hal.LED, linkCap, panelCap, logCap, monCap kernel.Capability) *Task {
	return &Task{
		ranger:   ranger,
		motion:   motion,
		led:      led,
		linkCap:  linkCap,
		panelCap: panelCap,
		logCap:   logCap,
		monCap:   monCap,
	}
}

// Run samples forever at the sweep cadence.
func (t *Task) Run(ctx *kernel.Context) {
	for {
		t.sweep(ctx)
		ctx.WaitTicks(sweepTicks)
	}
}

func (t *Task) sweep(ctx *kernel.Context) {
	d := 0
	if t.ranger != nil {
		d = t.ranger.RangeCentimeters()
	}
	motion := t.motion != nil && t.motion.Active()

	capture := d > MinDistanceCm && d < HardCapCm && d < MaxDistanceCm && motion

	sig := byte(proto.CaptureOff)
	if capture {
		sig = proto.CaptureOn
	}
	_ = linkclient.Write(ctx, t.linkCap, []byte{sig})

	if capture {
		if t.led != nil {
			t.led.High()
		}
		_ = panelclient.Draw(ctx, t.panelCap, alertTop, alertBottom)
	} else {
		if t.led != nil {
			t.led.Low()
		}
		_ = panelclient.Draw(ctx, t.panelCap, standbyTop, standbyBottom)
	}

	if capture != t.capturing {
		t.capturing = capture
		state := "closed"
		if capture {
			state = "open"
		}
		_ = logclient.Logf(ctx, t.logCap, "fusion: gate %s d=%dcm motion=%v", state, d, motion)
		_ = monclient.Report(ctx, t.monCap, proto.MsgCaptureEdge,
			proto.CaptureEdgePayload(clampDistance(d), motion, capture))
	}
}

func clampDistance(d int) uint16 {
	if d < 0 {
		return 0
	}
	if d > 0xFFFF {
		return 0xFFFF
	}
	return uint16(d)
}
