// Package monitor mirrors pipeline telemetry to the outside world.
//
// The kernel half is a plain task: pipeline tasks post MsgCaptureEdge,
// MsgLinkStats and MsgVerdictStatus to its endpoint best-effort, and the
// service folds them into a State. The host half serves that state over
// HTTP (GET /health, GET /status), streams events to websocket clients at
// /ws, and optionally republishes them to an MQTT broker.
package monitor

import (
	"time"

	"vigil/vigilos/assess"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Event is the JSON envelope broadcast to websocket clients and MQTT.
type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Session   string `json:"session"`
	Data      any    `json:"data"`
}

type captureEdgeEvent struct {
	DistanceCm int  `json:"distance_cm"`
	Motion     bool `json:"motion"`
	Capturing  bool `json:"capturing"`
}

type linkStatsEvent struct {
	FramesDecoded  uint32 `json:"frames_decoded"`
	FramesDropped  uint32 `json:"frames_dropped"`
	FramesCorrupt  uint32 `json:"frames_corrupt"`
	BytesDiscarded uint32 `json:"bytes_discarded"`
}

type verdictEvent struct {
	Verdict        string  `json:"verdict"`
	MeanPerson     float32 `json:"mean_person"`
	MeanNoPerson   float32 `json:"mean_no_person"`
	WindowPerson   int     `json:"window_person"`
	WindowNoPerson int     `json:"window_no_person"`
}

// Service consumes telemetry messages and feeds the state, hub and broker.
// Hub and publisher may be nil; the state is required.
type Service struct {
	state *State
	hub   *Hub
	pub   *Publisher
	ep    kernel.Capability
}

// New creates a monitor service.
func New(state *State, hub *Hub, pub *Publisher, ep kernel.Capability) *Service {
	return &Service{state: state, hub: hub, pub: pub, ep: ep}
}

// Run folds telemetry into the state until the endpoint closes.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgCaptureEdge:
			d, motion, open, ok := proto.DecodeCaptureEdgePayload(msg.Payload())
			if !ok {
				continue
			}
			s.state.setCapture(int(d), motion, open)
			s.emit("capture_edge", captureEdgeEvent{
				DistanceCm: int(d),
				Motion:     motion,
				Capturing:  open,
			})

		case proto.MsgLinkStats:
			decoded, dropped, corrupt, discarded, ok := proto.DecodeLinkStatsPayload(msg.Payload())
			if !ok {
				continue
			}
			s.state.setLinkStats(decoded, dropped, corrupt, discarded)
			s.emit("link_stats", linkStatsEvent{
				FramesDecoded:  decoded,
				FramesDropped:  dropped,
				FramesCorrupt:  corrupt,
				BytesDiscarded: discarded,
			})

		case proto.MsgVerdictStatus:
			code, meanP, meanN, lenP, lenN, ok := proto.DecodeVerdictStatusPayload(msg.Payload())
			if !ok {
				continue
			}
			v := assess.VerdictFromCode(code)
			s.state.setVerdict(v, meanP, meanN, int(lenP), int(lenN))
			s.emit("verdict", verdictEvent{
				Verdict:        v.String(),
				MeanPerson:     meanP,
				MeanNoPerson:   meanN,
				WindowPerson:   int(lenP),
				WindowNoPerson: int(lenN),
			})
		}
	}
}

func (s *Service) emit(typ string, data any) {
	ev := Event{
		Type:      typ,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Session:   s.state.Session(),
		Data:      data,
	}
	if s.hub != nil {
		_ = s.hub.BroadcastJSON(ev)
	}
	if s.pub != nil {
		s.pub.Publish(ev)
	}
}
