package panel

import (
	"vigil/hal"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Service owns the status panel. Draw requests replace the whole screen;
// repeating the previous screen is a no-op so steady-state tasks can resend
// without flicker on slow panels.
type Service struct {
	panel hal.Panel
	ep    kernel.Capability

	haveLast bool
	lastTop  string
	lastBot  string
}

// New creates a panel service.
func New(panel hal.Panel, ep kernel.Capability) *Service {
	return &Service{panel: panel, ep: ep}
}

// Run services draw and clear requests until the endpoint closes.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if s.panel == nil {
			continue
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgPanelDraw:
			top, bottom, ok := proto.DecodePanelDrawPayload(msg.Payload())
			if !ok {
				continue
			}
			s.draw(top, bottom)
		case proto.MsgPanelClear:
			s.panel.Clear()
			s.haveLast = false
		}
	}
}

func (s *Service) draw(top, bottom string) {
	if s.haveLast && top == s.lastTop && bottom == s.lastBot {
		return
	}
	s.panel.Clear()
	s.panel.Print(top, 0, 0)
	s.panel.Print(bottom, 1, 0)
	s.haveLast = true
	s.lastTop = top
	s.lastBot = bottom
}
