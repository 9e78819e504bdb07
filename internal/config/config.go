package config

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type Config struct {
	InputPath        string
	OutputDir        string
	OutputVideo      string
	Animation        string
	Duration         float64
	FPS              int
	Width            int
	Height           int
	BandPercent      float64
	PaddingPercent   float64
	Direction        string
	Easing           string
	Intensity        float64
	BounceHeight     float64
	MaxBlurRadius    float64
	Background       string
	Workers          int
	VideoEncoder     string
	Quality          int
	ScenarioInput    string
	ScenarioOutput   string
	GenerateScenario bool
	ShowStats        bool
	BuildVersion     string
}

// BackgroundColor разбирает hex-цвет фона ("#rrggbb").
// Пустая строка означает прозрачный фон (альфа сохраняется в выходном webm).
func (c *Config) BackgroundColor() (color.RGBA, bool, error) {
	if c.Background == "" {
		return color.RGBA{}, false, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return color.RGBA{}, false, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, true, nil
}
