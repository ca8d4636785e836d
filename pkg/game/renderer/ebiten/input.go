package ebiten

import (
	"strings"
	"time"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "hiro/pkg/engine/input"
)

// heldActions are the actions read from the keys currently down.
var heldActions = []engineinput.Action{
	engineinput.ActionMoveForward,
	engineinput.ActionMoveBack,
	engineinput.ActionMoveLeft,
	engineinput.ActionMoveRight,
	engineinput.ActionSprint,
	engineinput.ActionLookLeft,
	engineinput.ActionLookRight,
	engineinput.ActionLookUp,
	engineinput.ActionLookDown,
}

// keyCode names an ebiten key the way the bindings do: "ArrowUp" becomes
// "arrow_up" and either shift key is "shift".
func keyCode(k ebiten.Key) string {
	switch k {
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight:
		return "shift"
	}
	var b strings.Builder
	for i, r := range k.String() {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func toAction(device engineinput.Device, code string) engineinput.Action {
	raw := engineinput.RawInput{Device: device, Code: code, Timestamp: time.Now()}
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(raw)).Action
}

// pollInput feeds this tick's keys, buttons and cursor movement into the
// frame builder.
func (e *EbitenRenderer) pollInput() {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if a := toAction(engineinput.DeviceKeyboard, keyCode(k)); !a.Held() {
			e.builder.Press(a)
		}
	}

	down := make(map[engineinput.Action]bool, len(heldActions))
	for _, k := range inpututil.AppendPressedKeys(nil) {
		if a := toAction(engineinput.DeviceKeyboard, keyCode(k)); a.Held() {
			down[a] = true
		}
	}
	for _, a := range heldActions {
		e.builder.SetHeld(a, down[a])
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.builder.Press(toAction(engineinput.DeviceMouse, "mouse_left"))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		e.builder.Press(toAction(engineinput.DeviceMouse, "mouse_right"))
	}

	x, y := ebiten.CursorPosition()
	if e.cursorKnown && ebiten.CursorMode() == ebiten.CursorModeCaptured {
		e.builder.AddLook(float64(x-e.cursorX), float64(y-e.cursorY))
	}
	e.cursorX, e.cursorY, e.cursorKnown = x, y, true
}

// handleZoom handles =/- for font and map scale, 0 to reset
func (e *EbitenRenderer) handleZoom() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		if e.uiFontSize < maxFontSize {
			e.uiFontSize += fontSizeStep
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		if e.uiFontSize > minFontSize {
			e.uiFontSize -= fontSizeStep
		}
	case inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0):
		e.uiFontSize = baseFontSize
	}
}
