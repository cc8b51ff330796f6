package link

import (
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Subscribe registers a receive endpoint for inbound link data.
//
// The link service holds one subscriber; a later Subscribe replaces it.
func Subscribe(ctx *kernel.Context, linkCap, rxCap kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(linkCap, uint16(proto.MsgLinkSubscribe), nil, rxCap)
}

// Write sends bytes out over the link.
func Write(ctx *kernel.Context, linkCap kernel.Capability, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	if len(payload) > kernel.MaxMessageBytes {
		payload = payload[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(linkCap, uint16(proto.MsgLinkWrite), payload, kernel.Capability{})
}
