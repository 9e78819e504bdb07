package anim

// Pose is the full transform state of the image at one instant: translation
// in pixels relative to the settled (centered) position, per-axis scale,
// rotation in radians, global opacity and gaussian blur radius.
type Pose struct {
	TranslateX float64
	TranslateY float64
	ScaleX     float64
	ScaleY     float64
	RotateX    float64
	RotateY    float64
	RotateZ    float64
	Opacity    float64
	Blur       float64
}

// Identity is the settled pose: centered, unscaled, unrotated, fully opaque.
func Identity() Pose {
	return Pose{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Combine merges two poses axis-wise. Translations and rotations add,
// scales and opacities multiply, blur takes the larger radius. Axes that do
// not interact combine independently, so the merge is order-independent.
func Combine(a, b Pose) Pose {
	out := Pose{
		TranslateX: a.TranslateX + b.TranslateX,
		TranslateY: a.TranslateY + b.TranslateY,
		ScaleX:     a.ScaleX * b.ScaleX,
		ScaleY:     a.ScaleY * b.ScaleY,
		RotateX:    a.RotateX + b.RotateX,
		RotateY:    a.RotateY + b.RotateY,
		RotateZ:    a.RotateZ + b.RotateZ,
		Opacity:    a.Opacity * b.Opacity,
		Blur:       a.Blur,
	}
	if b.Blur > out.Blur {
		out.Blur = b.Blur
	}
	return out
}
