package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"hiro/pkg/game/renderer"
)

// drawText draws str with its top-left corner at (x, y).
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, face *text.GoTextFace, col color.Color, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, str, face, op)
}

// drawMarkup draws a marked-up message as colored segments from (x, y),
// stopping at maxWidth pixels.
func (e *EbitenRenderer) drawMarkup(screen *ebiten.Image, msg string, x, y, maxWidth float64, face *text.GoTextFace) {
	end := x + maxWidth
	for _, span := range renderer.ApplyMarkup(msg) {
		if x >= end {
			return
		}
		e.drawText(screen, span.Text, x, y, face, spanColors[span.Style], 1)
		w, _ := text.Measure(span.Text, face, 0)
		x += w
	}
}
