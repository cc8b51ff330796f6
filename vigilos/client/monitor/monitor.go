package monitor

import (
	"vigil/vigilos/kernel"
	"vigil/vigilos/proto"
)

// Report sends a telemetry payload to the monitor service.
//
// Monitor traffic is fire-and-forget. Device builds wire no monitor and pass
// an empty capability; Report then fails without side effects.
func Report(ctx *kernel.Context, monCap kernel.Capability, kind proto.Kind, payload []byte) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	return ctx.SendToCapResult(monCap, uint16(kind), payload, kernel.Capability{})
}
