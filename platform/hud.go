package platform

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const hudLineHeight = 16

// HUD draws plain status lines with the built-in bitmap font.
type HUD struct {
	face ebtext.Face
}

func NewHUD() *HUD {
	return &HUD{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

// Face returns the font face, shared with the menu widgets.
func (h *HUD) Face() ebtext.Face {
	return h.face
}

// DrawLines draws lines top-down starting at (x, y), scaled by scale.
func (h *HUD) DrawLines(screen *ebiten.Image, x, y, scale float64, clr color.Color, lines ...string) {
	if screen == nil || len(lines) == 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	for i, line := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y+float64(i)*hudLineHeight*scale)
		op.ColorScale.ScaleWithColor(clr)
		ebtext.Draw(screen, line, h.face, op)
	}
}

// DrawCentered draws one line centred horizontally on cx.
func (h *HUD) DrawCentered(screen *ebiten.Image, cx, y, scale float64, clr color.Color, line string) {
	if scale <= 0 {
		scale = 1
	}
	width, _ := ebtext.Measure(line, h.face, 0)
	h.DrawLines(screen, cx-width*scale/2, y, scale, clr, line)
}
