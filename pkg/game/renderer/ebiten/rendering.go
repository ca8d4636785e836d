package ebiten

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"hiro/pkg/game/renderer"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

type rect struct {
	x, y, w, h float64
}

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if e.loop == nil {
		return
	}
	g := e.loop.Game()

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	lineHeight := e.uiFontSize + 6
	headerHeight := lineHeight + 12
	footerHeight := lineHeight*float64(messageLines+1) + 16

	area := rect{
		x: mapMargin,
		y: headerHeight,
		w: float64(screenWidth) - 2*mapMargin,
		h: float64(screenHeight) - headerHeight - footerHeight,
	}
	if area.w <= 0 || area.h <= 0 {
		return
	}

	e.drawHeader(screen, g, area.w)
	e.drawMap(screen, g, e.loop.Scene(), area)
	e.drawMessages(screen, g, area.y+area.h+8, float64(screenWidth))
	e.drawPanel(screen, g.Panel, area)
}

func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, g *state.Game, width float64) {
	header := text.Get("HUD_LEVEL", g.Level) + "  " + g.HUD
	if g.Aim {
		header += "  " + text.Get("HUD_AIM")
	}
	e.drawMarkup(screen, header, mapMargin, 8, width, e.getMonoFontFace())
}

// drawMap draws the scene top-down, lowest objects first, with the actor at
// the center facing up.
func (e *EbitenRenderer) drawMap(screen *ebiten.Image, g *state.Game, scene scenefile.Scene, area rect) {
	vector.DrawFilledRect(screen, float32(area.x), float32(area.y), float32(area.w), float32(area.h), colorMapBackground, false)

	clip := image.Rect(int(area.x), int(area.y), int(area.x+area.w), int(area.y+area.h))
	sub := screen.SubImage(clip).(*ebiten.Image)

	scale := e.mapScale()
	cx, cy := area.x+area.w/2, area.y+area.h/2
	v := renderer.NewView(g, cx, cy, scale)

	var path vector.Path
	for _, o := range renderer.Layered(scene) {
		col := objectColor(o)
		if o.Type == scenefile.TypeSphere {
			x, y := v.Project(o.Position())
			vector.DrawFilledCircle(sub, float32(x), float32(y), float32(max(o.Radius*scale, 1)), col, true)
			continue
		}
		c := v.Corners(o)
		path.Reset()
		path.MoveTo(float32(c[0][0]), float32(c[0][1]))
		for _, p := range c[1:] {
			path.LineTo(float32(p[0]), float32(p[1]))
		}
		path.Close()
		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(col)
		vector.FillPath(sub, &path, nil, op)
	}

	// Actor
	size := float32(max(scale*0.6, 6))
	ax, ay := float32(cx), float32(cy)
	path.Reset()
	path.MoveTo(ax, ay-size)
	path.LineTo(ax+size*0.7, ay+size*0.7)
	path.LineTo(ax-size*0.7, ay+size*0.7)
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(colorActor)
	vector.FillPath(sub, &path, nil, op)

	if g.Aim {
		// The crosshair sits a few units ahead, lifted by the pitch.
		ahead := 4 * math.Cos(g.Actor.Pitch)
		vector.StrokeCircle(sub, ax, ay-float32(ahead*scale), crosshairRadius, 2, colorCrosshair, true)
	}
}

// objectColor shades an object by how high its top sits so walls stand out
// from the floor under them.
func objectColor(o scenefile.Object) color.RGBA {
	hex := o.Color.Hex()
	c := color.RGBA{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
	if o.Type == scenefile.TypeCube && o.LengthY <= 0.2 {
		c.R, c.G, c.B = c.R/4*3, c.G/4*3, c.B/4*3
	}
	return c
}

// drawMessages draws the latest messages and the key help under the map.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, g *state.Game, y, screenWidth float64) {
	face := e.getSansFontFace()
	lineHeight := e.uiFontSize + 6
	width := screenWidth - 2*mapMargin

	vector.StrokeLine(screen, mapMargin, float32(y), float32(mapMargin+width), float32(y), 1, colorMessageBorder, false)
	y += 4

	start := max(len(g.Messages)-messageLines, 0)
	for i, msg := range g.Messages[start:] {
		e.drawMarkup(screen, msg, mapMargin, y+float64(i)*lineHeight, width, face)
	}
	e.drawMarkup(screen, text.Get("KEYS_WINDOW"), mapMargin, y+messageLines*lineHeight, width, face)
}
