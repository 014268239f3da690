package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debug font cell size
const (
	glyphWidth  = 6
	glyphHeight = 16
)

func textWidth(s string, scale float64) float64 {
	return float64(len(s)*glyphWidth) * scale
}

// textImage renders s once with the debug font and caches it.
func (g *Game) textImage(s string) *ebiten.Image {
	if img, ok := g.text[s]; ok {
		return img
	}
	w := len(s) * glyphWidth
	if w == 0 {
		w = 1
	}
	img := ebiten.NewImage(w, glyphHeight)
	ebitenutil.DebugPrint(img, s)
	g.text[s] = img
	return img
}

// drawText draws s with its top-left corner at x, y.
func (g *Game) drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(g.textImage(s), op)
}

// drawTextCentered centers s horizontally on cx.
func (g *Game) drawTextCentered(dst *ebiten.Image, s string, cx, y, scale float64, clr color.Color) {
	g.drawText(dst, s, cx-textWidth(s, scale)/2, y, scale, clr)
}

// drawTextShadow draws a drop shadow under s, like the page's text-shadow.
func (g *Game) drawTextShadow(dst *ebiten.Image, s string, cx, y, scale float64, fg, shadow color.Color, offset float64) {
	g.drawTextCentered(dst, s, cx+offset, y+offset, scale, shadow)
	g.drawTextCentered(dst, s, cx, y, scale, fg)
}
