package motion

import (
	"math"

	"github.com/fogleman/ease"
)

// All curves take a normalized time t in [0,1] (clamped) and are pure:
// the same inputs always produce the same output. Most settle exactly at
// their target value at t=1; oscillatory curves use half-integer multiples
// of pi as frequency so the cosine term vanishes at t=1.

// Clamp limits t to [0,1].
func Clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Linear returns t unchanged (clamped).
func Linear(t float64) float64 {
	return ease.Linear(Clamp(t))
}

// EaseOutCubic returns 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	return ease.OutCubic(Clamp(t))
}

// SmoothStep returns t*t*(3-2t), the classic hermite ease-in-out.
func SmoothStep(t float64) float64 {
	t = Clamp(t)
	return t * t * (3 - 2*t)
}

// Overshoot rises past 1.0 and eases back, settling exactly at 1.0.
func Overshoot(t float64) float64 {
	return ease.OutBack(Clamp(t))
}

// Pop is a scale-in with a stronger overshoot than Overshoot: it grows from
// 0, peaks around 1.2 and settles exactly at 1.0.
func Pop(t float64) float64 {
	t = Clamp(t) - 1
	const s = 2.6
	return t*t*((s+1)*t+s) + 1
}

// PopDecay shrinks from 1 to exactly 0; 1-PopDecay(t) is the matching
// opacity ramp for pop-style entrances.
func PopDecay(t float64) float64 {
	u := 1 - Clamp(t)
	return u * u * u
}

// DampedOscillation returns exp(-damping*t)*cos(frequency*t). With a
// frequency of the form (k+0.5)*pi the result is zero at t=1 to floating
// point precision, which is what the settle invariant relies on.
func DampedOscillation(t, frequency, damping float64) float64 {
	t = Clamp(t)
	return math.Exp(-damping*t) * math.Cos(frequency*t)
}

// BounceOut is the piecewise parabolic bounce easing (0 -> 1 with
// decreasing rebounds), settling exactly at 1.
func BounceOut(t float64) float64 {
	return ease.OutBounce(Clamp(t))
}

// Lerp performs linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
