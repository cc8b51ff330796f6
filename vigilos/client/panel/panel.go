package panel

import (
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Draw replaces both panel rows. The panel service skips the redraw when the
// screen is unchanged, so callers may resend their current screen freely.
func Draw(ctx *kernel.Context, panelCap kernel.Capability, top, bottom string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(panelCap, uint16(proto.MsgPanelDraw), proto.PanelDrawPayload(top, bottom), kernel.Capability{})
}

// Clear blanks the panel.
func Clear(ctx *kernel.Context, panelCap kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(panelCap, uint16(proto.MsgPanelClear), nil, kernel.Capability{})
}
