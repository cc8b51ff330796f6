package kernel

// SendToCapRetry sends like SendToCap, retrying while the destination queue
// is full.
//
// It re-attempts once per kernel tick and gives up after limitTicks ticks.
// A limit of 0 means a single non-blocking attempt. Errors other than a full
// queue are returned immediately.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limitTicks uint64) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	if res != SendErrQueueFull || limitTicks == 0 {
		return res
	}
	if c.k == nil {
		return res
	}

	now := c.k.nowTick()
	deadline := now + limitTicks
	for {
		now = c.k.waitTick(now)
		res = c.SendToCapResult(toCap, kind, payload, xfer)
		if res != SendErrQueueFull {
			return res
		}
		if now >= deadline {
			return SendErrQueueFull
		}
	}
}
