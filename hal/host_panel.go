//go:build !tinygo

package hal

import "sync"

type hostPanel struct {
	mu    sync.Mutex
	cols  int
	rows  int
	cells []byte // rows*cols, space-filled
	echo  *hostLogger
}

func newHostPanel(cols, rows int, echo *hostLogger) *hostPanel {
	p := &hostPanel{cols: cols, rows: rows, cells: make([]byte, cols*rows), echo: echo}
	for i := range p.cells {
		p.cells[i] = ' '
	}
	return p
}

func (p *hostPanel) Size() (cols, rows int) { return p.cols, p.rows }

func (p *hostPanel) Clear() {
	p.mu.Lock()
	for i := range p.cells {
		p.cells[i] = ' '
	}
	p.mu.Unlock()
}

func (p *hostPanel) Print(text string, row, col int) {
	p.mu.Lock()
	if row < 0 || row >= p.rows || col >= p.cols {
		p.mu.Unlock()
		return
	}
	for i := 0; i < len(text); i++ {
		c := col + i
		if c < 0 {
			continue
		}
		if c >= p.cols {
			break
		}
		ch := text[i]
		if ch < 0x20 || ch > 0x7E {
			ch = '?'
		}
		p.cells[row*p.cols+c] = ch
	}
	p.mu.Unlock()

	if p.echo != nil {
		p.echo.WriteLineString("panel: [" + p.Row(0) + "][" + p.Row(1) + "]")
	}
}

// Row returns the text of one panel row, space-padded to full width.
func (p *hostPanel) Row(row int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if row < 0 || row >= p.rows {
		return ""
	}
	return string(p.cells[row*p.cols : (row+1)*p.cols])
}
