//go:build !tinygo && cgo

package hal

import (
	"image"

	"vigil/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow starts a desktop window showing the simulated panel and sensors.
//
// Keys: up/down nudge the ranged distance by 10 cm, left/right by 1 cm,
// M toggles the motion sensor. It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, opts Options) error {
	hi, err := NewWithOptions(opts)
	if err != nil {
		return err
	}
	h := hi.(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("Vigil (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*4, h.fb.height*4)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error
}

func (g *hostGame) Update() error {
	g.pollKeys()
	g.h.t.step(1)
	g.h.scene.advance(g.h.t.now())
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) pollKeys() {
	sc := g.h.scene
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		sc.nudgeDistance(10)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		sc.nudgeDistance(-10)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		sc.nudgeDistance(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		sc.nudgeDistance(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		sc.toggleMotion()
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	renderPanelView(g.h)

	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)

	src := g.scratch
	dst := g.img.Pix
	for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
		r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = gg
		dst[j+2] = b
		dst[j+3] = 0xFF
	}

	g.fbImg.ReplacePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
