package renderer

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/img2clip/internal/anim"
)

// RenderFrame composites one frame: blur the working copy if the pose asks
// for it, scale and rotate (Y/X-axis rotations become foreshortening, Z-axis
// is a true affine rotation), translate onto the canvas, then alpha-over
// with the pose's opacity as a global multiplier. The source image is never
// mutated; the order of these steps is fixed.
func RenderFrame(src *image.RGBA, pose anim.Pose, l Layout) (*image.RGBA, error) {
	if err := validatePose(pose); err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, l.CanvasWidth, l.CanvasHeight))
	if l.HasBackground {
		stddraw.Draw(canvas, canvas.Bounds(), &image.Uniform{l.Background}, image.Point{}, stddraw.Src)
	}

	alpha := uint8(math.Round(pose.Opacity * 255))
	if alpha == 0 {
		return canvas, nil
	}

	working := src
	if pose.Blur > 0 {
		working = GaussianBlur(src, pose.Blur)
	}

	sprite := transform(working, pose, l)
	if sprite == nil {
		return canvas, nil
	}

	x, y := l.SettledOrigin(sprite.Rect.Dx(), sprite.Rect.Dy())
	x += int(math.Round(pose.TranslateX))
	y += int(math.Round(pose.TranslateY))
	rect := image.Rect(x, y, x+sprite.Rect.Dx(), y+sprite.Rect.Dy())

	if alpha == 255 {
		stddraw.Draw(canvas, rect, sprite, sprite.Rect.Min, stddraw.Over)
	} else {
		mask := image.NewUniform(color.Alpha{A: alpha})
		stddraw.DrawMask(canvas, rect, sprite, sprite.Rect.Min, mask, image.Point{}, stddraw.Over)
	}
	return canvas, nil
}

// transform scales and rotates the working image to its on-canvas size.
// Returns nil when the pose collapses the image to nothing (e.g. scale 0 or
// an edge-on 3D flip).
func transform(src *image.RGBA, pose anim.Pose, l Layout) *image.RGBA {
	cosY := math.Cos(pose.RotateY)
	cosX := math.Cos(pose.RotateX)

	// Perspective foreshortening: a rotation out of the screen plane shrinks
	// the corresponding axis by |cos|; past 90 degrees the image mirrors.
	sx := pose.ScaleX * math.Abs(cosY)
	sy := pose.ScaleY * math.Abs(cosX)

	w := int(math.Round(float64(l.TargetWidth) * sx))
	h := int(math.Round(float64(l.TargetHeight) * sy))
	if w < 1 || h < 1 {
		return nil
	}

	srcW := float64(src.Rect.Dx())
	srcH := float64(src.Rect.Dy())
	fx := float64(w) / srcW
	fy := float64(h) / srcH
	if cosY < 0 {
		fx = -fx
	}
	if cosX < 0 {
		fy = -fy
	}

	if pose.RotateZ == 0 && fx > 0 && fy > 0 {
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		return dst
	}

	sin, cos := math.Sincos(pose.RotateZ)
	bw := math.Abs(float64(w)*cos) + math.Abs(float64(h)*sin)
	bh := math.Abs(float64(w)*sin) + math.Abs(float64(h)*cos)
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(bw)), int(math.Ceil(bh))))

	// Source -> destination: center, scale (with mirroring), rotate,
	// re-center in the rotated bounding box.
	cx := bw / 2
	cy := bh / 2
	m := f64.Aff3{
		cos * fx, -sin * fy, cx - cos*fx*srcW/2 + sin*fy*srcH/2,
		sin * fx, cos * fy, cy - sin*fx*srcW/2 - cos*fy*srcH/2,
	}
	xdraw.CatmullRom.Transform(dst, m, src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// validatePose rejects malformed poses before any pixel work; a bad pose is
// fatal to the whole sequence.
func validatePose(pose anim.Pose) error {
	fields := map[string]float64{
		"translate_x": pose.TranslateX,
		"translate_y": pose.TranslateY,
		"scale_x":     pose.ScaleX,
		"scale_y":     pose.ScaleY,
		"rotate_x":    pose.RotateX,
		"rotate_y":    pose.RotateY,
		"rotate_z":    pose.RotateZ,
		"opacity":     pose.Opacity,
		"blur":        pose.Blur,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("malformed pose: %s is %v", name, v)
		}
	}
	if pose.ScaleX < 0 || pose.ScaleY < 0 {
		return fmt.Errorf("malformed pose: negative scale %vx%v", pose.ScaleX, pose.ScaleY)
	}
	if pose.Opacity < 0 || pose.Opacity > 1 {
		return fmt.Errorf("malformed pose: opacity %v outside [0,1]", pose.Opacity)
	}
	if pose.Blur < 0 {
		return fmt.Errorf("malformed pose: negative blur radius %v", pose.Blur)
	}
	return nil
}
