package app

import (
	"fmt"
	"strings"

	"vigil/hal"
	"vigil/vigilos/kernel"
)

// installPanicHandler routes the first task panic to the log console and
// the panel, then parks the panicking goroutine. The kernel stays in panic
// mode; surviving tasks keep running but the screen names the fault.
func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("vigil panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}

		if p := h.Panel(); p != nil {
			p.Clear()
			p.Print("KERNEL PANIC", 0, 0)
			p.Print(fmt.Sprintf("task %d", info.TaskID), 1, 0)
		}
		select {}
	})
}
