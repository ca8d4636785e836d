package ebiten

import (
	"image/color"

	"hiro/pkg/game/renderer"
)

// Color palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}
	colorMapBackground   = color.RGBA{15, 15, 26, 255}
	colorActor           = color.RGBA{0, 255, 0, 255}
	colorCrosshair       = color.RGBA{255, 240, 200, 255}
	colorSubtle          = color.RGBA{120, 130, 180, 255}
	colorText            = color.RGBA{200, 210, 245, 255}
	colorAction          = color.RGBA{180, 150, 250, 255}
	colorActionShort     = color.RGBA{220, 190, 255, 255}
	colorItem            = color.RGBA{120, 230, 140, 255}
	colorDenied          = color.RGBA{255, 100, 100, 255}
	colorTitle           = color.RGBA{140, 220, 255, 255}
	colorPanelBackground = color.RGBA{30, 30, 50, 230}
	colorPanelBorder     = color.RGBA{120, 110, 200, 255}
	colorMessageBorder   = color.RGBA{80, 80, 100, 255}
)

var spanColors = map[renderer.TextStyle]color.RGBA{
	renderer.StyleNormal:      colorText,
	renderer.StyleItem:        colorItem,
	renderer.StyleAction:      colorAction,
	renderer.StyleActionShort: colorActionShort,
	renderer.StyleDenied:      colorDenied,
	renderer.StyleSubtle:      colorSubtle,
	renderer.StyleTitle:       colorTitle,
}

// Layout and zoom
const (
	baseFontSize = 16.0
	minFontSize  = 10.0
	maxFontSize  = 32.0
	fontSizeStep = 2.0

	// pixelsPerUnit is the map scale at the base font size.
	pixelsPerUnit = 18.0

	mapMargin       = 20
	messageLines    = 4
	panelMaxWidth   = 620
	panelFadeTime   = 0.25
	panelCorner     = 10
	panelBorder     = 2
	crosshairRadius = 6
)
