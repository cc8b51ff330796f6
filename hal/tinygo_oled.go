//go:build tinygo && baremetal && oledpanel

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/hcsr04"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

type tinyGoHAL struct {
	logger *usbLogger
	led    *pinLED
	ranger *ultrasonicRanger
	motion *pirMotion
	serial *uartSerial
	panel  *oledPanel
	t      *tinyGoTime
}

// New returns a Pico (RP2040) HAL implementation with an SSD1306 OLED in
// place of the character LCD.
//
// Wiring matches the default variant except the I2C0 device: a 128x64
// SSD1306 at 0x3C.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	rangerDev := hcsr04.New(machine.GP2, machine.GP3)
	rangerDev.Configure()

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 400 * machine.KHz,
	})
	dsp := ssd1306.NewI2C(machine.I2C0)
	dsp.Configure(ssd1306.Config{
		Width:    128,
		Height:   64,
		Address:  0x3C,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dsp.ClearDisplay()

	pir := machine.GP6
	pir.Configure(machine.PinConfig{Mode: machine.PinInput})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	panel := &oledPanel{dev: dsp, cols: 16, rows: 2}
	panel.reset()

	return &tinyGoHAL{
		logger: &usbLogger{out: machine.Serial},
		led:    &pinLED{pin: ledPin},
		ranger: &ultrasonicRanger{dev: rangerDev},
		motion: &pirMotion{pin: pir},
		serial: &uartSerial{uart: uart},
		panel:  panel,
		t:      newTinyGoTime(),
	}
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Ranger() Ranger { return h.ranger }
func (h *tinyGoHAL) Motion() Motion { return h.motion }
func (h *tinyGoHAL) Serial() Serial { return h.serial }
func (h *tinyGoHAL) Panel() Panel   { return h.panel }
func (h *tinyGoHAL) Time() Time     { return h.t }

// oledPanel renders the two text rows onto the SSD1306 with tinyfont.
type oledPanel struct {
	dev   ssd1306.Device
	cols  int
	rows  int
	cells []byte
}

func (p *oledPanel) reset() {
	p.cells = make([]byte, p.cols*p.rows)
	for i := range p.cells {
		p.cells[i] = ' '
	}
}

func (p *oledPanel) Size() (cols, rows int) { return p.cols, p.rows }

func (p *oledPanel) Clear() {
	for i := range p.cells {
		p.cells[i] = ' '
	}
	p.redraw()
}

func (p *oledPanel) Print(text string, row, col int) {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return
	}
	for i := 0; i < len(text); i++ {
		c := col + i
		if c >= p.cols {
			break
		}
		p.cells[row*p.cols+c] = text[i]
	}
	p.redraw()
}

func (p *oledPanel) redraw() {
	p.dev.ClearBuffer()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for row := 0; row < p.rows; row++ {
		line := string(p.cells[row*p.cols : (row+1)*p.cols])
		y := int16(20 + row*24)
		tinyfont.WriteLine(&p.dev, &proggy.TinySZ8pt7b, 0, y, line, white)
	}
	_ = p.dev.Display()
}
