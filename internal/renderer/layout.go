package renderer

import (
	"image/color"

	"github.com/ivlev/img2clip/internal/source"
)

// Layout describes the fixed output canvas and where the settled image sits
// on it: the image is fitted (never upscaled) into a horizontal band at the
// top of the canvas, like the original illustration layout.
type Layout struct {
	CanvasWidth  int
	CanvasHeight int
	PadTop       int
	BandHeight   int
	TargetWidth  int
	TargetHeight int

	Background    color.RGBA
	HasBackground bool
}

// NewLayout computes the layout for an image of imgW x imgH pixels.
// bandPercent is the share of canvas height reserved for the image,
// paddingPercent the top padding share. Zero values fall back to the
// classic 40% band with 1% padding.
func NewLayout(canvasW, canvasH int, bandPercent, paddingPercent float64, imgW, imgH int) Layout {
	if bandPercent <= 0 || bandPercent > 1 {
		bandPercent = 0.4
	}
	if paddingPercent < 0 || paddingPercent > 1 {
		paddingPercent = 0.01
	}

	band := int(float64(canvasH) * bandPercent)
	pad := int(float64(canvasH) * paddingPercent)
	tw, th := source.FitSize(imgW, imgH, canvasW, band-pad)

	return Layout{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		PadTop:       pad,
		BandHeight:   band,
		TargetWidth:  tw,
		TargetHeight: th,
	}
}

// SettledOrigin returns the top-left corner of a w x h image at the settled
// (identity pose) position.
func (l Layout) SettledOrigin(w, h int) (int, int) {
	x := (l.CanvasWidth - w) / 2
	y := l.PadTop + (l.BandHeight-l.PadTop-h)/2
	return x, y
}
