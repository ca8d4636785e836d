package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"hiro/pkg/game/renderer"
	"hiro/pkg/game/state"
)

// appendRoundedRect adds a rounded rectangle to the path. (x, y) is top-left; w, h are size; r is corner radius.
// Uses clockwise arcs so the path winds correctly for fill.
func appendRoundedRect(p *vector.Path, x, y, w, h, r float32) {
	appendRoundedRectDir(p, x, y, w, h, r, vector.Clockwise)
}

// appendRoundedRectDir adds a rounded rectangle with the given winding direction.
// CounterClockwise creates a hole when combined with an outer clockwise rect.
func appendRoundedRectDir(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	r = min(r, w/2, h/2)
	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, 3*halfPi, 0, dir)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, halfPi, dir)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, halfPi, pi, dir)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, pi, 3*halfPi, dir)
	p.Close()
}

// drawRoundedRectWithShadow draws a rounded rectangle with drop shadow, fill and border.
// alpha scales every layer for fades.
func drawRoundedRectWithShadow(screen *ebiten.Image, x, y, w, h, cornerRadius, borderWidth float32, bgColor, borderColor color.Color, alpha float32) {
	const shadowSpread = 8

	var path vector.Path
	for i := shadowSpread; i >= 1; i-- {
		ringAlpha := min(uint8(12+i*8), 55)
		path.Reset()
		appendRoundedRect(&path,
			x-float32(i), y-float32(i),
			w+float32(i*2), h+float32(i*2),
			cornerRadius+float32(i))
		appendRoundedRectDir(&path,
			x-float32(i-1), y-float32(i-1),
			w+float32((i-1)*2), h+float32((i-1)*2),
			cornerRadius+float32(i-1), vector.CounterClockwise)
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(color.RGBA{8, 8, 12, uint8(float32(ringAlpha) * alpha)})
		vector.FillPath(screen, &path, nil, drawOpts)
	}

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(bgColor)
	drawOpts.ColorScale.ScaleAlpha(alpha)
	vector.FillPath(screen, &path, nil, drawOpts)

	strokeOpts := &vector.StrokeOptions{Width: borderWidth, MiterLimit: 10}
	drawOpts = &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(borderColor)
	drawOpts.ColorScale.ScaleAlpha(alpha)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}

// updatePanelFade restarts the fade-in whenever the panel changes and
// advances it by dt.
func (e *EbitenRenderer) updatePanelFade(p state.Panel, dt float64) {
	if p != e.shownPanel {
		e.shownPanel = p
		e.panelAlpha = 0
		e.panelFade = gween.New(0, 1, panelFadeTime, ease.OutCubic)
	}
	if e.panelFade == nil {
		return
	}
	v, done := e.panelFade.Update(float32(dt))
	e.panelAlpha = v
	if done {
		e.panelFade = nil
	}
}

// drawPanel draws the narrative panel centered over the map: a bold title,
// the wrapped body and the hint underneath.
func (e *EbitenRenderer) drawPanel(screen *ebiten.Image, p state.Panel, area rect) {
	if !p.Visible() || e.panelAlpha <= 0 {
		return
	}
	face := e.getSansFontFace()
	titleFace := e.getBoldFontFace()
	lineHeight := e.uiFontSize + 6
	const padding = 24.0

	w := min(float64(panelMaxWidth), area.w-2*padding)
	inner := w - 2*padding
	body := e.wrap(renderer.Plain(p.Body), face, inner)
	hint := e.wrap(renderer.Plain(p.Hint), face, inner)

	h := 2*padding + titleFace.Size + lineHeight + float64(len(body)+len(hint))*lineHeight + lineHeight/2
	x := area.x + (area.w-w)/2
	y := area.y + max((area.h-h)/2, 0)

	drawRoundedRectWithShadow(screen, float32(x), float32(y), float32(w), float32(h),
		panelCorner, panelBorder, colorPanelBackground, colorPanelBorder, e.panelAlpha)

	ty := y + padding
	e.drawText(screen, renderer.Plain(p.Title), x+padding, ty, titleFace, colorTitle, e.panelAlpha)
	ty += titleFace.Size + lineHeight
	for _, line := range body {
		e.drawText(screen, line, x+padding, ty, face, colorText, e.panelAlpha)
		ty += lineHeight
	}
	ty += lineHeight / 2
	for _, line := range hint {
		e.drawText(screen, line, x+padding, ty, face, colorSubtle, e.panelAlpha)
		ty += lineHeight
	}
}

// wrap breaks s into lines that fit maxWidth pixels in face.
func (e *EbitenRenderer) wrap(s string, face *text.GoTextFace, maxWidth float64) []string {
	// Start from a character estimate and shrink until every line fits.
	em, _ := text.Measure("n", face, 0)
	chars := max(int(maxWidth/max(em, 1)), 8)
	for {
		lines := renderer.Wrap(s, chars)
		fits := true
		for _, l := range lines {
			if w, _ := text.Measure(l, face, 0); w > maxWidth {
				fits = false
				break
			}
		}
		if fits || chars <= 8 {
			return lines
		}
		chars--
	}
}
