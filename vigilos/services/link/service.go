package link

import (
	"fmt"
	"sync"

	"vigil/hal"
	logclient "vigil/vigilos/client/logger"
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Service owns the serial link to the vision board.
//
// Clients write capture signal bytes with MsgLinkWrite. One subscriber (the
// frame decoder) registers with MsgLinkSubscribe and receives the inbound
// byte stream as MsgLinkData chunks.
type Service struct {
	serial hal.Serial
	ep     kernel.Capability
	logCap kernel.Capability

	mu    sync.Mutex
	rxCap kernel.Capability
}

// New creates a link service.
func New(serial hal.Serial, ep, logCap kernel.Capability) *Service {
	return &Service{serial: serial, ep: ep, logCap: logCap}
}

// Run handles link requests and streams incoming bytes to the subscriber.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	if s.serial != nil {
		go s.readLoop(ctx)
	}

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgLinkSubscribe:
			s.setRxCap(msg.Cap)
		case proto.MsgLinkWrite:
			if s.serial == nil || len(msg.Payload()) == 0 {
				continue
			}
			_, _ = s.serial.Write(msg.Payload())
		}
	}
}

func (s *Service) setRxCap(cap kernel.Capability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rxCap = cap
}

func (s *Service) readLoop(ctx *kernel.Context) {
	buf := make([]byte, kernel.MaxMessageBytes)
	for {
		n, err := s.serial.Read(buf)
		if n > 0 {
			if serr := s.sendData(ctx, buf[:n]); serr != nil {
				// The chunk is lost; the decoder resynchronizes on the
				// next start marker.
				_ = logclient.Logf(ctx, s.logCap, "link: %v", serr)
			}
		}
		if err != nil {
			ctx.BlockOnTick()
		}
	}
}

func (s *Service) sendData(ctx *kernel.Context, payload []byte) error {
	s.mu.Lock()
	cap := s.rxCap
	s.mu.Unlock()
	if !cap.Valid() {
		return nil
	}
	for len(payload) > 0 {
		chunk := payload
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToCapRetry(cap, uint16(proto.MsgLinkData), chunk, kernel.Capability{}, 100)
		if res != kernel.SendOK {
			return fmt.Errorf("link send data: %s", res)
		}
		payload = payload[len(chunk):]
	}
	return nil
}
