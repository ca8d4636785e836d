// Package ebiten draws the game top-down in a desktop window.
package ebiten

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	engineinput "hiro/pkg/engine/input"
	"hiro/pkg/game/renderer"
	"hiro/pkg/game/state"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	windowTitle  = "Hiro"
)

// EbitenRenderer runs the loop inside ebiten's game loop.
type EbitenRenderer struct {
	loop    renderer.Loop
	builder *engineinput.Builder

	// Cursor position last tick, for pointer look.
	cursorX, cursorY int
	cursorKnown      bool

	sansFontSource     *text.GoTextFaceSource
	sansBoldFontSource *text.GoTextFaceSource
	monoFontSource     *text.GoTextFaceSource

	uiFontSize     float64
	cachedSansFace *text.GoTextFace
	cachedBoldFace *text.GoTextFace
	cachedMonoFace *text.GoTextFace

	// Panel fade-in, restarted whenever a different panel appears.
	shownPanel state.Panel
	panelFade  *gween.Tween
	panelAlpha float32

	windowOpenedLogged bool
}

// New creates a renderer. The window opens in Run.
func New() *EbitenRenderer {
	return &EbitenRenderer{
		builder:    engineinput.NewBuilder(),
		uiFontSize: baseFontSize,
	}
}

// Init loads fonts and configures the window.
func (e *EbitenRenderer) Init() error {
	var err error
	if e.sansFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF)); err != nil {
		return fmt.Errorf("ebiten: regular font: %w", err)
	}
	if e.sansBoldFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF)); err != nil {
		return fmt.Errorf("ebiten: bold font: %w", err)
	}
	if e.monoFontSource, err = text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF)); err != nil {
		return fmt.Errorf("ebiten: mono font: %w", err)
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	return nil
}

// Run opens the window and blocks until the loop quits or the window closes.
func (e *EbitenRenderer) Run(loop renderer.Loop) error {
	if e.sansFontSource == nil {
		return errors.New("ebiten: renderer not initialized")
	}
	e.loop = loop
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

// Close releases nothing; ebiten tears the window down when RunGame returns.
func (e *EbitenRenderer) Close() {}

// Update reads input and steps the loop (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("window opened (%dx%d)", w, h)
	}

	e.handleZoom()
	e.pollInput()

	dt := 1.0 / float64(ebiten.TPS())
	if !e.loop.Step(e.builder.Build(dt)) {
		return ebiten.Termination
	}
	e.updatePanelFade(e.loop.Game().Panel, dt)
	return nil
}

// Layout uses the window size as the logical screen (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
