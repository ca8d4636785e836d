package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// getSansFontFace returns a cached sans-serif face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	if e.cachedSansFace == nil || e.cachedSansFace.Size != e.uiFontSize {
		e.cachedSansFace = &text.GoTextFace{Source: e.sansFontSource, Size: e.uiFontSize}
	}
	return e.cachedSansFace
}

// getBoldFontFace returns a cached bold face two points larger than UI text,
// used for panel titles
func (e *EbitenRenderer) getBoldFontFace() *text.GoTextFace {
	size := e.uiFontSize + 2
	if e.cachedBoldFace == nil || e.cachedBoldFace.Size != size {
		e.cachedBoldFace = &text.GoTextFace{Source: e.sansBoldFontSource, Size: size}
	}
	return e.cachedBoldFace
}

// getMonoFontFace returns a cached monospace face for the HUD line
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	if e.cachedMonoFace == nil || e.cachedMonoFace.Size != e.uiFontSize {
		e.cachedMonoFace = &text.GoTextFace{Source: e.monoFontSource, Size: e.uiFontSize}
	}
	return e.cachedMonoFace
}

// mapScale is pixels per world unit, following the font zoom.
func (e *EbitenRenderer) mapScale() float64 {
	return pixelsPerUnit * e.uiFontSize / baseFontSize
}
