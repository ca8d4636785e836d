// Package tui draws the game as a top-down map in a terminal.
package tui

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"hiro/pkg/engine/input"
	"hiro/pkg/game/renderer"
	"hiro/pkg/game/scenefile"
	"hiro/pkg/game/state"
	"hiro/pkg/game/text"
)

// Map glyphs
const (
	IconActor  = '▲'
	IconFloor  = '·'
	IconTile   = '▪'
	IconWall   = '█'
	IconOrb    = '●'
	IconPortal = '◎'
)

const (
	// FrameTime is the tick period.
	FrameTime = 16 * time.Millisecond

	// viewRadius is how many world units fit between the map's center and
	// its top edge.
	viewRadius = 14.0

	// cellAspect is the height of a terminal cell over its width.
	cellAspect = 2.0

	messageRows = 4
	panelWidth  = 64

	// maxDt caps a tick after the process was stopped or the terminal stalled.
	maxDt = 0.1
)

var errNotInitialized = errors.New("tui: screen not initialized")

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	screen  tcell.Screen
	builder *input.Builder
	hold    *input.HoldTracker
	buttons tcell.ButtonMask
	closed  bool

	styleActor  tcell.Style
	styleBorder tcell.Style
	stylePanel  tcell.Style
	spanStyles  map[renderer.TextStyle]tcell.Style
}

// New creates a renderer on the controlling terminal.
func New() *TUIRenderer {
	return NewWithScreen(nil)
}

// NewWithScreen creates a renderer on s, which may be a simulation screen.
// A nil screen is opened on the terminal at Init.
func NewWithScreen(s tcell.Screen) *TUIRenderer {
	return &TUIRenderer{
		screen:  s,
		builder: input.NewBuilder(),
		hold:    input.NewHoldTracker(input.DefaultHoldTime),
	}
}

// Init opens the screen and sets up styles.
func (t *TUIRenderer) Init() error {
	if t.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		t.screen = s
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	t.screen.EnableMouse()
	t.screen.HideCursor()

	base := tcell.StyleDefault
	t.styleActor = base.Foreground(tcell.ColorLime).Bold(true)
	t.styleBorder = base.Foreground(tcell.ColorTeal)
	t.stylePanel = base
	t.spanStyles = map[renderer.TextStyle]tcell.Style{
		renderer.StyleNormal:      base,
		renderer.StyleItem:        base.Foreground(tcell.ColorGreen).Bold(true),
		renderer.StyleAction:      base.Foreground(tcell.ColorPurple),
		renderer.StyleActionShort: base.Foreground(tcell.ColorFuchsia).Bold(true),
		renderer.StyleDenied:      base.Foreground(tcell.ColorRed).Bold(true),
		renderer.StyleSubtle:      base.Foreground(tcell.ColorGray),
		renderer.StyleTitle:       base.Foreground(tcell.ColorAqua).Bold(true),
	}
	return nil
}

// Close restores the terminal.
func (t *TUIRenderer) Close() {
	if t.screen == nil || t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

// Run polls terminal events on a goroutine and steps loop on a fixed ticker
// until it quits.
func (t *TUIRenderer) Run(loop renderer.Loop) error {
	if t.screen == nil || t.spanStyles == nil {
		return errNotInitialized
	}

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	t.Draw(loop.Game(), loop.Scene())
	last := time.Now()
	for {
		select {
		case ev := <-events:
			t.handleEvent(ev, time.Now())
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt > maxDt {
				dt = maxDt
			}
			t.hold.Apply(t.builder, now)
			if !loop.Step(t.builder.Build(dt)) {
				return nil
			}
			t.Draw(loop.Game(), loop.Scene())
		}
	}
}

func (t *TUIRenderer) handleEvent(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.builder.Press(input.ActionQuit)
			return
		}
		code, shifted := keyCode(ev)
		if code == "" {
			return
		}
		if shifted {
			t.hold.Press(input.ActionSprint, now)
		}
		t.route(code, now)
	case *tcell.EventMouse:
		b := ev.Buttons()
		pressed := b &^ t.buttons
		t.buttons = b
		if pressed&tcell.Button1 != 0 {
			t.route("mouse_left", now)
		}
		if pressed&tcell.Button2 != 0 {
			t.route("mouse_right", now)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// route maps a raw code through the bindings. Terminals never report key
// releases, so held actions live in the hold tracker.
func (t *TUIRenderer) route(code string, now time.Time) {
	raw := input.RawInput{Device: input.DeviceTerminal, Code: code, Timestamp: now}
	a := input.MapToIntent(input.NewDebouncedInput(raw)).Action
	if a == input.ActionNone {
		return
	}
	if a.Held() {
		t.hold.Press(a, now)
		return
	}
	t.builder.Press(a)
}

// keyCode names a key the way the bindings do. An upper-case letter also
// reports shift.
func keyCode(ev *tcell.EventKey) (code string, shifted bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "space", false
		}
		return string(r), unicode.IsUpper(r)
	case tcell.KeyUp:
		return "arrow_up", false
	case tcell.KeyDown:
		return "arrow_down", false
	case tcell.KeyLeft:
		return "arrow_left", false
	case tcell.KeyRight:
		return "arrow_right", false
	case tcell.KeyPgUp:
		return "page_up", false
	case tcell.KeyPgDn:
		return "page_down", false
	case tcell.KeyEnter:
		return "enter", false
	case tcell.KeyEscape:
		return "escape", false
	case tcell.KeyF9:
		return "f9", false
	case tcell.KeyF10:
		return "f10", false
	}
	return "", false
}

// Draw renders one frame: header, map, messages, key help and the panel on
// top.
func (t *TUIRenderer) Draw(g *state.Game, scene scenefile.Scene) {
	s := t.screen
	s.Clear()
	w, h := s.Size()

	header := text.Get("HUD_LEVEL", g.Level) + "  " + g.HUD
	if g.Aim {
		header += "  " + text.Get("HUD_AIM")
	}
	t.drawSpans(0, 0, w, renderer.ApplyMarkup(header))

	mapBottom := h - messageRows - 1
	t.drawMap(g, scene, 0, 1, w, mapBottom-1)

	start := len(g.Messages) - messageRows
	if start < 0 {
		start = 0
	}
	for i, msg := range g.Messages[start:] {
		t.drawSpans(0, mapBottom+i, w, renderer.ApplyMarkup(msg))
	}
	t.drawSpans(0, h-1, w, renderer.ApplyMarkup(text.Get("KEYS_TERMINAL")))

	if g.Panel.Visible() {
		t.drawPanel(g.Panel, w, mapBottom)
	}
	s.Show()
}

// drawMap paints the area (x0, y0, w, h) by looking up, for each cell, the
// highest object whose footprint covers the ground under it.
func (t *TUIRenderer) drawMap(g *state.Game, scene scenefile.Scene, x0, y0, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	v := renderer.NewView(g, 0, 0, float64(h)/2/viewRadius)
	objects := renderer.Layered(scene)
	cx, cy := w/2, h/2

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			p := v.Unproject(float64(col-cx)/cellAspect, float64(row-cy))
			for i := len(objects) - 1; i >= 0; i-- {
				o := objects[i]
				if !renderer.Covers(o, p) {
					continue
				}
				style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(o.Color.Hex())))
				t.screen.SetContent(x0+col, y0+row, glyph(o), nil, style)
				break
			}
		}
	}
	t.screen.SetContent(x0+cx, y0+cy, IconActor, nil, t.styleActor)
}

func glyph(o scenefile.Object) rune {
	switch {
	case o.Type == scenefile.TypeSphere && o.Radius >= 1.5:
		return IconPortal
	case o.Type == scenefile.TypeSphere:
		return IconOrb
	case o.LengthY > 0.2:
		return IconWall
	case o.LengthX <= 3 && o.LengthZ <= 3:
		return IconTile
	}
	return IconFloor
}

// drawPanel draws the panel as a bordered box centered over the map.
func (t *TUIRenderer) drawPanel(p state.Panel, w, h int) {
	pw := panelWidth
	if pw > w-2 {
		pw = w - 2
	}
	if pw < 8 {
		return
	}
	inner := pw - 4

	body := renderer.Wrap(renderer.Plain(p.Body), inner)
	ph := len(body) + 6
	if ph > h {
		ph = h
	}
	x0 := (w - pw) / 2
	y0 := (h - ph) / 2
	if y0 < 1 {
		y0 = 1
	}

	for y := y0; y < y0+ph; y++ {
		for x := x0; x < x0+pw; x++ {
			r := ' '
			switch {
			case y == y0 && x == x0:
				r = '┌'
			case y == y0 && x == x0+pw-1:
				r = '┐'
			case y == y0+ph-1 && x == x0:
				r = '└'
			case y == y0+ph-1 && x == x0+pw-1:
				r = '┘'
			case y == y0 || y == y0+ph-1:
				r = '─'
			case x == x0 || x == x0+pw-1:
				r = '│'
			}
			style := t.stylePanel
			if r != ' ' {
				style = t.styleBorder
			}
			t.screen.SetContent(x, y, r, nil, style)
		}
	}

	row := y0 + 1
	t.drawSpans(x0+2, row, inner, []renderer.Span{{Text: renderer.Plain(p.Title), Style: renderer.StyleTitle}})
	row += 2
	for _, line := range body {
		if row >= y0+ph-2 {
			break
		}
		t.drawSpans(x0+2, row, inner, []renderer.Span{{Text: line}})
		row++
	}
	t.drawSpans(x0+2, y0+ph-2, inner, []renderer.Span{{Text: renderer.Plain(p.Hint), Style: renderer.StyleSubtle}})
}

// drawSpans writes spans from (x, y), clipped to maxWidth cells.
func (t *TUIRenderer) drawSpans(x, y, maxWidth int, spans []renderer.Span) {
	end := x + maxWidth
	for _, s := range spans {
		style := t.spanStyles[s.Style]
		for _, r := range s.Text {
			if x >= end {
				return
			}
			if r == '\n' {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
}
