//go:build tinygo && bootdebug

package app

import (
	"sync"
	"time"

	"vigil/hal"
)

var (
	bootMu   sync.Mutex
	bootMsg  string
	bootOnce sync.Once
)

// bootStep traces boot progress during board bring-up. The last step is
// shown on the panel bottom row and re-logged every 250 ms, so a boot hang
// names the stage it is stuck in.
func bootStep(h hal.HAL, msg string) {
	bootMu.Lock()
	bootMsg = msg
	bootMu.Unlock()

	if h == nil {
		return
	}
	if p := h.Panel(); p != nil {
		p.Print(padRow("boot: "+msg), 1, 0)
	}

	bootOnce.Do(func() {
		l := h.Logger()
		if l == nil {
			return
		}
		go func() {
			for {
				bootMu.Lock()
				step := bootMsg
				bootMu.Unlock()
				l.WriteLineString("boot: " + step)
				time.Sleep(250 * time.Millisecond)
			}
		}()
	})
}

func padRow(s string) string {
	for len(s) < 16 {
		s += " "
	}
	return s
}
