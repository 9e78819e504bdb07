package engine

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/img2clip/internal/anim"
	"github.com/ivlev/img2clip/internal/config"
	"github.com/ivlev/img2clip/internal/director"
	"github.com/ivlev/img2clip/internal/renderer"
	"github.com/ivlev/img2clip/internal/video"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, A: 255}), image.Point{}, draw.Src)
	return img
}

func testLayout(imgW, imgH int) renderer.Layout {
	return renderer.NewLayout(100, 100, 1.0, 0, imgW, imgH)
}

func TestFrameCountMatchesDuration(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	seq, err := RenderSequence(context.Background(), src, "fade_in", 0.3, anim.Overrides{}, 60, l, 2)
	if err != nil {
		t.Fatalf("RenderSequence: %v", err)
	}
	if seq.Len() != 18 {
		t.Errorf("duration 0.3s at 60 fps: got %d frames, want 18", seq.Len())
	}
	if seq.FPS != 60 {
		t.Errorf("sequence fps = %d, want 60", seq.FPS)
	}
}

func TestSingleFrameSamplesEnd(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	// round(0.01 * 60) = 1: the only frame must be the settled t=1 frame.
	seq, err := RenderSequence(context.Background(), src, "slide_in_left", 0.01, anim.Overrides{}, 60, l, 1)
	if err != nil {
		t.Fatalf("RenderSequence: %v", err)
	}
	if seq.Len() != 1 {
		t.Fatalf("got %d frames, want 1", seq.Len())
	}

	rec, err := anim.Get("slide_in_left")
	if err != nil {
		t.Fatal(err)
	}
	params, err := rec.Resolve(0.01, anim.Overrides{}, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	want, err := renderer.RenderFrame(src, rec.PoseAt(1, params), l)
	if err != nil {
		t.Fatal(err)
	}
	got := seq.Frames[0]
	if !got.Rect.Eq(want.Rect) {
		t.Fatalf("frame bounds %v, want %v", got.Rect, want.Rect)
	}
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("single frame differs from settled frame at byte %d", i)
		}
	}
}

func TestInvalidParameters(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)
	ctx := context.Background()

	var ipe *anim.InvalidParameterError

	_, err := RenderSequence(ctx, src, "fade_in", 0.3, anim.Overrides{}, 0, l, 1)
	if !errors.As(err, &ipe) {
		t.Errorf("fps=0: got %v, want InvalidParameterError", err)
	}

	_, err = RenderSequence(ctx, src, "fade_in", 0, anim.Overrides{}, 60, l, 1)
	if !errors.As(err, &ipe) {
		t.Errorf("duration=0: got %v, want InvalidParameterError", err)
	}

	_, err = RenderSequence(ctx, src, "spin_forever", 0.3, anim.Overrides{}, 60, l, 1)
	if err == nil {
		t.Error("unknown animation: expected error, got nil")
	}

	// The animation name is checked first: an unknown name with a bad fps
	// must report the name, not an fps error for a nonexistent animation.
	_, err = RenderSequence(ctx, src, "spin_forever", 0.3, anim.Overrides{}, 0, l, 1)
	if !errors.As(err, &ipe) {
		t.Fatalf("unknown animation with fps=0: got %v, want InvalidParameterError", err)
	}
	if ipe.Param != "animation" {
		t.Errorf("error parameter = %q, want \"animation\"", ipe.Param)
	}
}

func TestFrameDimensionsConstant(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	seq, err := RenderSequence(context.Background(), src, "bubble_pop", 0.15, anim.Overrides{}, 60, l, 4)
	if err != nil {
		t.Fatalf("RenderSequence: %v", err)
	}
	for i, f := range seq.Frames {
		if f.Rect.Dx() != 100 || f.Rect.Dy() != 100 {
			t.Fatalf("frame %d is %dx%d, want 100x100", i, f.Rect.Dx(), f.Rect.Dy())
		}
	}
}

func TestSlideInEndToEnd(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	ov := anim.Overrides{Direction: "left"}
	seq, err := RenderSequence(context.Background(), src, "slide_in", 0.3, ov, 60, l, 0)
	if err != nil {
		t.Fatalf("RenderSequence: %v", err)
	}

	first := seq.Frames[0]
	if _, _, _, a := first.At(50, 50).RGBA(); a != 0 {
		t.Error("first frame: image should still be off-canvas at center")
	}

	last := seq.Frames[seq.Len()-1]
	r, _, _, a := last.At(50, 50).RGBA()
	if a == 0 || r>>8 != 255 {
		t.Errorf("last frame center = %v, want settled red pixel", last.At(50, 50))
	}
}

func TestOvershootEasingRendersFullSequence(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	ov := anim.Overrides{Easing: "overshoot"}
	seq, err := RenderSequence(context.Background(), src, "fade_in", 0.5, ov, 60, l, 2)
	if err != nil {
		t.Fatalf("RenderSequence with overshoot easing: %v", err)
	}
	if seq.Len() != 30 {
		t.Errorf("got %d frames, want 30", seq.Len())
	}
}

func TestCancelledContextStopsRendering(t *testing.T) {
	src := testImage(40, 40)
	l := testLayout(40, 40)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderSequence(ctx, src, "fade_in", 1.0, anim.Overrides{}, 60, l, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

// captureEncoder записывает вызовы вместо запуска ffmpeg.
type captureEncoder struct {
	outputs []string
	frames  []int
}

func (c *captureEncoder) EncodeSequence(_ context.Context, seq *video.FrameSequence, outputPath string) error {
	c.outputs = append(c.outputs, outputPath)
	c.frames = append(c.frames, seq.Len())
	return nil
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage(40, 40)); err != nil {
		t.Fatal(err)
	}
}

func TestRunSingleClip(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "card.png")
	writeTestPNG(t, input)

	enc := &captureEncoder{}
	cfg := &config.Config{
		InputPath: input,
		OutputDir: dir,
		Animation: "bubble_pop",
		Duration:  0.15,
		FPS:       60,
		Width:     100,
		Height:    100,
		Workers:   2,
	}

	if err := NewClipProject(cfg, enc).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(enc.outputs) != 1 {
		t.Fatalf("encoded %d clips, want 1", len(enc.outputs))
	}
	want := filepath.Join(dir, "card_bubble_pop.webm")
	if enc.outputs[0] != want {
		t.Errorf("output path = %s, want %s", enc.outputs[0], want)
	}
	if enc.frames[0] != 9 {
		t.Errorf("encoded %d frames, want 9", enc.frames[0])
	}
}

func TestRunAllAnimations(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "card.png")
	writeTestPNG(t, input)

	enc := &captureEncoder{}
	cfg := &config.Config{
		InputPath: input,
		OutputDir: dir,
		Animation: "all",
		FPS:       30,
		Width:     100,
		Height:    100,
		Workers:   2,
	}

	if err := NewClipProject(cfg, enc).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(enc.outputs) != 16 {
		t.Errorf("encoded %d clips, want 16", len(enc.outputs))
	}
}

func TestRunLatestScenario(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "card.png")
	writeTestPNG(t, input)

	scenariosDir := filepath.Join(dir, "scenarios")
	if err := os.MkdirAll(scenariosDir, 0755); err != nil {
		t.Fatal(err)
	}
	scenario := &director.Scenario{
		Version: "1.0",
		Clips:   []director.Clip{{ID: 1, Animation: "fade_in", Duration: 0.1}},
	}
	if err := director.WriteScenario(scenario, filepath.Join(scenariosDir, "scenario_old.yaml")); err != nil {
		t.Fatal(err)
	}

	enc := &captureEncoder{}
	cfg := &config.Config{
		InputPath:     input,
		OutputDir:     dir,
		ScenarioInput: "latest",
		FPS:           30,
		Width:         100,
		Height:        100,
		Workers:       1,
	}

	if err := NewClipProject(cfg, enc).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(enc.outputs) != 1 {
		t.Fatalf("encoded %d clips, want 1", len(enc.outputs))
	}
	if enc.frames[0] != 3 {
		t.Errorf("encoded %d frames, want 3", enc.frames[0])
	}
}

func TestRunGenerateScenario(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "scenario.yaml")

	cfg := &config.Config{
		GenerateScenario: true,
		ScenarioOutput:   out,
		OutputDir:        dir,
	}

	if err := NewClipProject(cfg, &captureEncoder{}).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("scenario file not written: %v", err)
	}
}
