//go:build tinygo && baremetal && !oledpanel

package hal

import (
	"machine"

	"tinygo.org/x/drivers/hcsr04"
	"tinygo.org/x/drivers/hd44780i2c"
)

type tinyGoHAL struct {
	logger *usbLogger
	led    *pinLED
	ranger *ultrasonicRanger
	motion *pirMotion
	serial *uartSerial
	panel  *lcdPanel
	t      *tinyGoTime
}

// New returns a Pico (RP2040) HAL implementation.
//
// Wiring:
//   - UART0 on GP0 (TX) / GP1 (RX), 115200 8N1: vision board link
//   - GP2 (trigger) / GP3 (echo): HC-SR04 ranger
//   - I2C0 on GP4 (SDA) / GP5 (SCL): HD44780 16x2 panel at 0x27
//   - GP6: PIR motion input
//   - Log console on the USB CDC serial
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
	lcd := hd44780i2c.New(machine.I2C0, 0x27)
	_ = lcd.Configure(hd44780i2c.Config{Width: 16, Height: 2})

	pir := machine.GP6
	pir.Configure(machine.PinConfig{Mode: machine.PinInput})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &tinyGoHAL{
		logger: &usbLogger{out: machine.Serial},
		led:    &pinLED{pin: ledPin},
		ranger: &ultrasonicRanger{dev: rangerDev},
		motion: &pirMotion{pin: pir},
		serial: &uartSerial{uart: uart},
		panel:  &lcdPanel{dev: lcd, cols: 16, rows: 2},
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

// lcdPanel adapts the HD44780 driver to the Panel interface.
type lcdPanel struct {
	dev  hd44780i2c.Device
	cols int
	rows int
}

func (p *lcdPanel) Size() (cols, rows int) { return p.cols, p.rows }

func (p *lcdPanel) Clear() {
	_ = p.dev.ClearDisplay()
}

func (p *lcdPanel) Print(text string, row, col int) {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return
	}
	if len(text) > p.cols-col {
		text = text[:p.cols-col]
	}
	if len(text) == 0 {
		return
	}
	_ = p.dev.SetCursor(uint8(col), uint8(row))
	_ = p.dev.Print([]byte(text))
}
