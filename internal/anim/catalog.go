package anim

import (
	"fmt"
	"sort"

	"github.com/ivlev/img2clip/internal/motion"
)

// Direction names the canvas edge an entrance animation comes from.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Params are the resolved numeric parameters of one clip. CanvasWidth and
// CanvasHeight are filled in by the caller from the output layout; the rest
// come from recipe defaults plus caller overrides.
type Params struct {
	Duration       float64
	Direction      Direction
	Intensity      float64
	BounceHeight   float64
	MaxBlurRadius  float64
	OvershootPx    float64
	OvershootRatio float64
	CanvasWidth    float64
	CanvasHeight   float64

	ease func(float64) float64
}

// Ease returns the primary easing curve of the clip (recipe default unless
// overridden).
func (p Params) Ease(t float64) float64 {
	if p.ease == nil {
		return motion.EaseOutCubic(t)
	}
	return p.ease(t)
}

// PoseFunc maps normalized time to a Pose for given parameters. Pure and
// stateless: identical inputs always yield identical poses.
type PoseFunc func(t float64, p Params) Pose

// Recipe is one catalog entry: a named, data-driven assignment of motion
// curves to pose axes plus its default parameters.
type Recipe struct {
	Name        string
	SFX         string
	Directional bool
	Defaults    Params
	Pose        PoseFunc
}

// PoseAt samples the recipe at normalized time t (clamped to [0,1]).
func (r Recipe) PoseAt(t float64, p Params) Pose {
	return r.Pose(motion.Clamp(t), p)
}

// Overrides are caller-supplied parameter replacements; fields keep the
// recipe default when left zero.
type Overrides struct {
	Direction     string
	Intensity     float64
	BounceHeight  float64
	MaxBlurRadius float64
	Easing        string
}

var easings = map[string]func(float64) float64{
	"linear":         motion.Linear,
	"ease_out_cubic": motion.EaseOutCubic,
	"smooth_step":    motion.SmoothStep,
	"overshoot":      motion.Overshoot,
}

// Resolve merges the requested duration and overrides into the recipe
// defaults and validates the result. Recipe defaults are never mutated.
func (r Recipe) Resolve(duration float64, ov Overrides, canvasW, canvasH float64) (Params, error) {
	p := r.Defaults
	p.CanvasWidth = canvasW
	p.CanvasHeight = canvasH

	if duration <= 0 {
		return Params{}, &InvalidParameterError{
			Animation: r.Name,
			Param:     "duration",
			Reason:    fmt.Sprintf("must be > 0, got %v", duration),
		}
	}
	p.Duration = duration

	if ov.Direction != "" {
		d := Direction(ov.Direction)
		switch d {
		case DirectionLeft, DirectionRight, DirectionUp, DirectionDown:
			p.Direction = d
		default:
			return Params{}, &InvalidParameterError{
				Animation: r.Name,
				Param:     "direction",
				Reason:    fmt.Sprintf("unknown direction %q", ov.Direction),
			}
		}
		if !r.Directional {
			return Params{}, &InvalidParameterError{
				Animation: r.Name,
				Param:     "direction",
				Reason:    "animation does not take a direction",
			}
		}
	}

	if ov.Intensity != 0 {
		if ov.Intensity < 0 {
			return Params{}, &InvalidParameterError{Animation: r.Name, Param: "intensity", Reason: "must be >= 0"}
		}
		p.Intensity = ov.Intensity
	}
	if ov.BounceHeight != 0 {
		if ov.BounceHeight < 0 {
			return Params{}, &InvalidParameterError{Animation: r.Name, Param: "bounce_height", Reason: "must be >= 0"}
		}
		p.BounceHeight = ov.BounceHeight
	}
	if ov.MaxBlurRadius != 0 {
		if ov.MaxBlurRadius < 0 {
			return Params{}, &InvalidParameterError{Animation: r.Name, Param: "max_blur_radius", Reason: "must be >= 0"}
		}
		p.MaxBlurRadius = ov.MaxBlurRadius
	}
	if ov.Easing != "" {
		fn, ok := easings[ov.Easing]
		if !ok {
			return Params{}, &InvalidParameterError{
				Animation: r.Name,
				Param:     "easing",
				Reason:    fmt.Sprintf("unknown easing %q", ov.Easing),
			}
		}
		p.ease = fn
	}

	return p, nil
}

// alias maps a preset name to a canonical recipe plus a baked-in direction.
type alias struct {
	target    string
	direction Direction
}

// Get looks up an animation by name. Preset names like "slide_in_left"
// resolve to the canonical recipe with the direction baked into its
// defaults.
func Get(name string) (Recipe, error) {
	if r, ok := catalog[name]; ok {
		return r, nil
	}
	if a, ok := aliases[name]; ok {
		r := catalog[a.target]
		r.Name = name
		if a.direction != "" {
			r.Defaults.Direction = a.direction
		}
		return r, nil
	}
	return Recipe{}, &InvalidParameterError{
		Animation: name,
		Param:     "animation",
		Reason:    "unknown animation name",
	}
}

// Names returns every requestable animation name (canonical and preset),
// sorted.
func Names() []string {
	names := make([]string, 0, len(catalog)+len(aliases))
	for n := range catalog {
		names = append(names, n)
	}
	for n := range aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
