package renderer

import (
	"image"
	"math"

	"github.com/ivlev/img2clip/internal/system"
)

// GaussianBlur returns a blurred copy of src using a separable gaussian
// kernel with sigma = radius/2. The source is never modified. The
// horizontal pass writes into a pooled scratch buffer.
func GaussianBlur(src *image.RGBA, radius float64) *image.RGBA {
	if radius <= 0 {
		return src
	}

	sigma := radius / 2
	if sigma < 0.5 {
		sigma = 0.5
	}
	kernel := gaussianKernel(sigma)

	w := src.Rect.Dx()
	h := src.Rect.Dy()

	tmp := system.GetScratch(w, h)
	defer system.PutScratch(tmp)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	blurPass(src, tmp, kernel, w, h, true)
	blurPass(tmp, dst, kernel, w, h, false)
	return dst
}

// gaussianKernel builds a normalized 1D kernel of half-width ceil(2.5*sigma).
func gaussianKernel(sigma float64) []float64 {
	half := int(math.Ceil(2.5 * sigma))
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// blurPass convolves one axis with clamped edges, all four channels
// including alpha.
func blurPass(src, dst *image.RGBA, kernel []float64, w, h int, horizontal bool) {
	half := len(kernel) / 2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for k, kv := range kernel {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+k-half, 0, w-1)
				} else {
					sy = clampInt(y+k-half, 0, h-1)
				}
				off := src.PixOffset(src.Rect.Min.X+sx, src.Rect.Min.Y+sy)
				r += kv * float64(src.Pix[off])
				g += kv * float64(src.Pix[off+1])
				b += kv * float64(src.Pix[off+2])
				a += kv * float64(src.Pix[off+3])
			}
			off := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
			dst.Pix[off] = uint8(r + 0.5)
			dst.Pix[off+1] = uint8(g + 0.5)
			dst.Pix[off+2] = uint8(b + 0.5)
			dst.Pix[off+3] = uint8(a + 0.5)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
