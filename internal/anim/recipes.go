package anim

import (
	"math"

	"github.com/ivlev/img2clip/internal/motion"
)

// Oscillation frequencies are half-integer multiples of pi so the cosine
// term is zero at t=1 and every animation settles exactly on the identity
// pose.
const (
	bounceFrequency = 4.5 * math.Pi
	bounceDamping   = 6.0
	shakeFrequency  = 24.5 * math.Pi
	shakeDamping    = 3.0
	pulseFrequency  = 8.5 * math.Pi
	pulseDamping    = 5.0
	pulseAmplitude  = 0.2
)

// startOffset returns the fully off-canvas translation for an entrance from
// the given edge.
func startOffset(p Params) (dx, dy float64) {
	switch p.Direction {
	case DirectionRight:
		return p.CanvasWidth, 0
	case DirectionUp:
		return 0, -p.CanvasHeight
	case DirectionDown:
		return 0, p.CanvasHeight
	default: // left
		return -p.CanvasWidth, 0
	}
}

func slideInPose(t float64, p Params) Pose {
	e := p.Ease(t)
	dx, dy := startOffset(p)
	pose := Identity()
	pose.TranslateX = dx * (1 - e)
	pose.TranslateY = dy * (1 - e)
	return pose
}

func slideInOvershootPose(t float64, p Params) Pose {
	dx, dy := startOffset(p)
	// Overshoot goes past the settled position, against the entry offset.
	overX, overY := 0.0, 0.0
	if dx != 0 {
		overX = -math.Copysign(p.OvershootPx, dx)
	}
	if dy != 0 {
		overY = -math.Copysign(p.OvershootPx, dy)
	}

	r := p.OvershootRatio
	pose := Identity()
	if t < r {
		q := t / r
		pose.TranslateX = motion.Lerp(dx, overX, q)
		pose.TranslateY = motion.Lerp(dy, overY, q)
	} else {
		q := (t - r) / (1 - r)
		pose.TranslateX = overX * (1 - q)
		pose.TranslateY = overY * (1 - q)
	}
	return pose
}

func fadeInPose(t float64, p Params) Pose {
	pose := Identity()
	// Overshooting easings exceed 1 mid-curve; opacity stays in [0,1].
	pose.Opacity = motion.Clamp(p.Ease(t))
	return pose
}

func transparentInPose(t float64, _ Params) Pose {
	pose := Identity()
	pose.Opacity = motion.Linear(t)
	return pose
}

func blurInPose(t float64, p Params) Pose {
	e := motion.Clamp(p.Ease(t))
	pose := Identity()
	pose.Opacity = e
	pose.Blur = p.MaxBlurRadius * (1 - e)
	return pose
}

// shakeRecipe builds a horizontal damped-oscillation translation. No random
// jitter: the curve is a pure damped sinusoid so renders are reproducible.
func shakeRecipe(frequency, damping float64) PoseFunc {
	return func(t float64, p Params) Pose {
		pose := Identity()
		pose.TranslateX = p.Intensity * motion.DampedOscillation(t, frequency, damping)
		return pose
	}
}

// bounceRecipe builds a vertical damped bounce around the settled position.
func bounceRecipe(frequency, damping float64) PoseFunc {
	return func(t float64, p Params) Pose {
		pose := Identity()
		pose.TranslateY = -p.BounceHeight * motion.DampedOscillation(t, frequency, damping)
		return pose
	}
}

// pulseRecipe builds a scale oscillation that starts enlarged and rings
// down to 1.
func pulseRecipe(frequency, damping, amplitude float64) PoseFunc {
	return func(t float64, _ Params) Pose {
		s := 1 + amplitude*motion.DampedOscillation(t, frequency, damping)
		pose := Identity()
		pose.ScaleX = s
		pose.ScaleY = s
		return pose
	}
}

func bubblePopPose(t float64, _ Params) Pose {
	s := motion.Pop(t)
	pose := Identity()
	pose.ScaleX = s
	pose.ScaleY = s
	pose.Opacity = 1 - motion.PopDecay(t)
	return pose
}

func bubbleBouncePopPose(t float64, _ Params) Pose {
	s := motion.BounceOut(t) / 1.05 * 1.2
	// Blend to exactly 1 over the last 5% so the clip settles cleanly.
	if t > 0.95 {
		q := (t - 0.95) / 0.05
		s = motion.Lerp(s, 1, q)
	}
	pose := Identity()
	pose.ScaleX = s
	pose.ScaleY = s
	return pose
}

func pageFlipPose(t float64, p Params) Pose {
	start := math.Pi / 2
	if p.Direction == DirectionRight {
		start = -math.Pi / 2
	}
	pose := Identity()
	pose.RotateY = start * (1 - p.Ease(t))
	return pose
}

func placeInYPose(t float64, p Params) Pose {
	q := motion.Linear(t)
	pose := Identity()
	pose.ScaleX = motion.Lerp(1.5, 1, q)
	pose.ScaleY = pose.ScaleX
	pose.Opacity = q
	pose.TranslateY = -p.CanvasHeight * (1 - q)
	return pose
}

func placeInZPose(t float64, p Params) Pose {
	e := p.Ease(t)
	pose := Identity()
	pose.ScaleX = motion.Lerp(1.5, 1, e)
	pose.ScaleY = pose.ScaleX
	pose.Opacity = motion.Clamp(e)
	return pose
}

// Compose merges recipes axis-wise (see Combine). Composite animations are
// data over their constituents, not copies of their math.
func Compose(fns ...PoseFunc) PoseFunc {
	return func(t float64, p Params) Pose {
		pose := fns[0](t, p)
		for _, fn := range fns[1:] {
			pose = Combine(pose, fn(t, p))
		}
		return pose
	}
}

var catalog = map[string]Recipe{
	"bubble_pop": {
		Name: "bubble_pop", SFX: "pop",
		Defaults: Params{Duration: 0.15},
		Pose:     bubblePopPose,
	},
	"slide_in": {
		Name: "slide_in", SFX: "whoosh", Directional: true,
		Defaults: Params{Duration: 0.3, Direction: DirectionLeft},
		Pose:     slideInPose,
	},
	"slide_in_overshoot": {
		Name: "slide_in_overshoot", SFX: "spring", Directional: true,
		Defaults: Params{Duration: 0.5, Direction: DirectionLeft, OvershootPx: 100, OvershootRatio: 0.7},
		Pose:     slideInOvershootPose,
	},
	"fade_in": {
		Name: "fade_in", SFX: "chime",
		Defaults: Params{Duration: 0.5},
		Pose:     fadeInPose,
	},
	"blur_in": {
		Name: "blur_in", SFX: "whoosh",
		Defaults: Params{Duration: 0.5, MaxBlurRadius: 15},
		Pose:     blurInPose,
	},
	"drop": {
		Name: "drop", SFX: "thud", Directional: true,
		Defaults: Params{Duration: 0.5, Direction: DirectionUp},
		Pose:     slideInPose,
	},
	"shake": {
		Name: "shake", SFX: "shake",
		Defaults: Params{Duration: 0.3, Intensity: 15},
		Pose:     shakeRecipe(shakeFrequency, shakeDamping),
	},
	"bounce": {
		Name: "bounce", SFX: "boing",
		Defaults: Params{Duration: 0.3, BounceHeight: 150},
		Pose:     bounceRecipe(bounceFrequency, bounceDamping),
	},
	"blur_in_shake": {
		Name: "blur_in_shake", SFX: "whoosh",
		Defaults: Params{Duration: 0.3, MaxBlurRadius: 15, Intensity: 15},
		Pose:     Compose(blurInPose, shakeRecipe(shakeFrequency, shakeDamping)),
	},
	"rotate_3d_page_flip": {
		Name: "rotate_3d_page_flip", SFX: "page_flip", Directional: true,
		Defaults: Params{Duration: 0.5, Direction: DirectionLeft},
		Pose:     pageFlipPose,
	},
	"bounce_pop_animation": {
		Name: "bounce_pop_animation", SFX: "pop",
		// BounceHeight 0 keeps the classic pure scale pulse; overriding it
		// adds the vertical bounce on top.
		Defaults: Params{Duration: 0.5},
		Pose: Compose(
			pulseRecipe(pulseFrequency, pulseDamping, pulseAmplitude),
			bounceRecipe(bounceFrequency, bounceDamping),
		),
	},
	"bubble_bounce_pop": {
		Name: "bubble_bounce_pop", SFX: "pop",
		Defaults: Params{Duration: 0.5},
		Pose:     bubbleBouncePopPose,
	},
	"transparent_in": {
		Name: "transparent_in", SFX: "shimmer",
		Defaults: Params{Duration: 0.5},
		Pose:     transparentInPose,
	},
	"place_in_y": {
		Name: "place_in_y", SFX: "whoosh",
		Defaults: Params{Duration: 0.5},
		Pose:     placeInYPose,
	},
	"place_in_z": {
		Name: "place_in_z", SFX: "zoom",
		Defaults: Params{Duration: 0.5},
		Pose:     placeInZPose,
	},
}

var aliases = map[string]alias{
	"slide_in_left":            {"slide_in", DirectionLeft},
	"slide_in_right":           {"slide_in", DirectionRight},
	"slide_in_up":              {"slide_in", DirectionUp},
	"slide_in_down":            {"slide_in", DirectionDown},
	"slide_in_overshoot_left":  {"slide_in_overshoot", DirectionLeft},
	"slide_in_overshoot_right": {"slide_in_overshoot", DirectionRight},
	"bounce_pop":               {"bounce_pop_animation", ""},
}
