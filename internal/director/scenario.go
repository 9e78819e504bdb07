package director

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario describes a batch of clips rendered from one input image.
type Scenario struct {
	Version string `yaml:"version"`
	Clips   []Clip `yaml:"clips"`
}

// Clip is one scheduled animation: which recipe to run, for how long and
// where to put the result. SFX is carried as metadata for downstream
// tooling; no audio is rendered here.
type Clip struct {
	ID        int     `yaml:"id"`
	Animation string  `yaml:"animation"`
	Duration  float64 `yaml:"duration"`
	Direction string  `yaml:"direction,omitempty"`
	SFX       string  `yaml:"sfx,omitempty"`
	Output    string  `yaml:"output,omitempty"`
}

// DefaultScenario returns the classic preset table: every catalog animation
// with its production duration and sound tag.
func DefaultScenario() *Scenario {
	presets := []Clip{
		{Animation: "bubble_pop", Duration: 0.15, SFX: "pop"},
		{Animation: "slide_in_left", Duration: 0.3, SFX: "whoosh"},
		{Animation: "slide_in_right", Duration: 0.3, SFX: "whoosh"},
		{Animation: "slide_in_overshoot", Duration: 0.5, SFX: "spring"},
		{Animation: "fade_in", Duration: 0.5, SFX: "chime"},
		{Animation: "blur_in", Duration: 0.5, SFX: "whoosh"},
		{Animation: "drop", Duration: 0.5, SFX: "thud"},
		{Animation: "shake", Duration: 0.3, SFX: "shake"},
		{Animation: "bounce", Duration: 0.3, SFX: "boing"},
		{Animation: "blur_in_shake", Duration: 0.3, SFX: "whoosh"},
		{Animation: "rotate_3d_page_flip", Duration: 0.5, SFX: "page_flip"},
		{Animation: "bounce_pop_animation", Duration: 0.5, SFX: "pop"},
		{Animation: "bubble_bounce_pop", Duration: 0.5, SFX: "pop"},
		{Animation: "transparent_in", Duration: 0.5, SFX: "shimmer"},
		{Animation: "place_in_y", Duration: 0.5, SFX: "whoosh"},
		{Animation: "place_in_z", Duration: 0.5, SFX: "zoom"},
	}

	for i := range presets {
		presets[i].ID = i + 1
	}
	return &Scenario{Version: "1.0", Clips: presets}
}

// WriteScenario saves a scenario as YAML.
func WriteScenario(scenario *Scenario, path string) error {
	data, err := yaml.Marshal(scenario)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScenario loads and validates a YAML scenario. Clips without a duration
// are allowed (the engine falls back to the recipe preset), clips without an
// animation name are not.
func ReadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i, clip := range scenario.Clips {
		if clip.Animation == "" {
			return nil, fmt.Errorf("%s: clip %d has no animation name", path, i+1)
		}
		if clip.Duration < 0 {
			return nil, fmt.Errorf("%s: clip %d has negative duration %v", path, i+1, clip.Duration)
		}
	}
	return &scenario, nil
}
