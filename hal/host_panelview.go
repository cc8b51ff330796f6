//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// Panel view geometry: the simulated 16x2 LCD plus a status strip with the
// LED and the scripted sensor values.
const (
	panelCellW = 8
	panelCellH = 14
	panelPadX  = 12
	panelPadY  = 10

	statusStripH = 18

	panelViewWidth  = 16*panelCellW + 2*panelPadX
	panelViewHeight = 2*panelCellH + 2*panelPadY + statusStripH
)

var panelFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// fbDisplay adapts the host framebuffer to the displayer interface expected
// by tinyfont.
type fbDisplay struct {
	fb *hostFramebuffer
}

func (d fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.setPixel(int(x), int(y), c.R, c.G, c.B)
}

func (d fbDisplay) Display() error { return nil }

// renderPanelView redraws the framebuffer from the current panel, LED, and
// scene state.
func renderPanelView(h *hostHAL) {
	fb := h.fb
	fb.clearRGB(16, 20, 28)

	// LCD plate.
	plateW := 16*panelCellW + 12
	plateH := 2*panelCellH + 10
	fb.fillRect(panelPadX-6, panelPadY-5, plateW, plateH, 24, 34, 20)

	d := fbDisplay{fb: fb}
	ink := color.RGBA{R: 178, G: 255, B: 120, A: 255}
	for row := 0; row < 2; row++ {
		text := h.panel.Row(row)
		y := panelPadY + row*panelCellH + panelCellH - 4
		tinyfont.WriteLine(d, panelFont, int16(panelPadX), int16(y), text, ink)
	}

	// Status strip: LED state plus the simulated sensor values.
	stripY := 2*panelCellH + 2*panelPadY
	ledColor := color.RGBA{R: 70, G: 70, B: 70, A: 255}
	if h.led.lit() {
		ledColor = color.RGBA{R: 255, G: 60, B: 40, A: 255}
	}
	fb.fillRect(panelViewWidth-panelPadX-8, stripY+3, 8, 8, ledColor.R, ledColor.G, ledColor.B)

	dist, motion := h.scene.current()
	pir := 0
	if motion {
		pir = 1
	}
	status := fmt.Sprintf("DIST %dCM PIR %d", dist, pir)
	gray := color.RGBA{R: 150, G: 155, B: 165, A: 255}
	tinyfont.WriteLine(d, panelFont, int16(panelPadX), int16(stripY+10), status, gray)
}
