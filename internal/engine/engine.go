package engine

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/img2clip/internal/anim"
	"github.com/ivlev/img2clip/internal/config"
	"github.com/ivlev/img2clip/internal/director"
	"github.com/ivlev/img2clip/internal/renderer"
	"github.com/ivlev/img2clip/internal/source"
	"github.com/ivlev/img2clip/internal/video"
)

// RenderSequence — ядро сборки: валидирует параметры до рендеринга хотя бы
// одного кадра, берет N = round(duration*fps) (минимум 1) равномерных
// выборок t_i = i/(N-1) (один кадр — t=1), считает позу и кадр для каждой и
// возвращает кадры строго в порядке показа. Кадры независимы, поэтому
// рендерятся параллельно и складываются по индексу.
func RenderSequence(ctx context.Context, src *image.RGBA, name string, duration float64, ov anim.Overrides, fps int, l renderer.Layout, workers int) (*video.FrameSequence, error) {
	rec, err := anim.Get(name)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		return nil, &anim.InvalidParameterError{
			Animation: name,
			Param:     "fps",
			Reason:    fmt.Sprintf("must be > 0, got %d", fps),
		}
	}
	params, err := rec.Resolve(duration, ov, float64(l.CanvasWidth), float64(l.CanvasHeight))
	if err != nil {
		return nil, err
	}

	n := int(math.Round(params.Duration * float64(fps)))
	if n < 1 {
		n = 1
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}

	frames := make([]*image.RGBA, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t := 1.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			frame, err := renderer.RenderFrame(src, rec.PoseAt(t, params), l)
			if err != nil {
				return fmt.Errorf("анимация %q, кадр %d/%d (t=%.3f): %w", name, i+1, n, t, err)
			}
			frames[i] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &video.FrameSequence{
		Frames: frames,
		FPS:    fps,
		Width:  l.CanvasWidth,
		Height: l.CanvasHeight,
	}, nil
}

// ClipProject связывает конфигурацию, исходное изображение и энкодер.
type ClipProject struct {
	Config  *config.Config
	Encoder video.VideoEncoder
}

func NewClipProject(cfg *config.Config, enc video.VideoEncoder) *ClipProject {
	return &ClipProject{Config: cfg, Encoder: enc}
}

// Run выполняет проект: один клип или пакет по сценарию.
func (p *ClipProject) Run(ctx context.Context) error {
	startTime := time.Now()
	cfg := p.Config

	if cfg.GenerateScenario {
		return p.handleGenerateScenario()
	}

	img, err := source.LoadImage(cfg.InputPath)
	if err != nil {
		return err
	}

	layout := renderer.NewLayout(cfg.Width, cfg.Height, cfg.BandPercent, cfg.PaddingPercent, img.Rect.Dx(), img.Rect.Dy())
	bg, hasBg, err := cfg.BackgroundColor()
	if err != nil {
		return fmt.Errorf("некорректный цвет фона %q: %w", cfg.Background, err)
	}
	layout.Background = bg
	layout.HasBackground = hasBg

	clips, err := p.buildClipList()
	if err != nil {
		return err
	}

	fmt.Println("--- [PROJECT: CLIP ENGINE] ---")
	fmt.Printf("[*] Источник: %s (%dx%d) | Клипов: %d\n", cfg.InputPath, img.Rect.Dx(), img.Rect.Dy(), len(clips))
	fmt.Printf("[*] Холст: %dx%d @ %d FPS | Изображение в кадре: %dx%d\n",
		cfg.Width, cfg.Height, cfg.FPS, layout.TargetWidth, layout.TargetHeight)
	fmt.Println("------------------------------")

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	var renderTotal, encodeTotal time.Duration
	frameCount := 0

	for i, clip := range clips {
		ov := anim.Overrides{
			Direction:     clip.Direction,
			Intensity:     cfg.Intensity,
			BounceHeight:  cfg.BounceHeight,
			MaxBlurRadius: cfg.MaxBlurRadius,
			Easing:        cfg.Easing,
		}

		duration := clip.Duration
		if duration == 0 {
			// Длительность не задана — берем пресет рецепта.
			rec, err := anim.Get(clip.Animation)
			if err != nil {
				return err
			}
			duration = rec.Defaults.Duration
		}

		renderStart := time.Now()
		seq, err := RenderSequence(ctx, img, clip.Animation, duration, ov, cfg.FPS, layout, cfg.Workers)
		if err != nil {
			return err
		}
		renderTotal += time.Since(renderStart)
		frameCount += seq.Len()

		outPath := p.outputPath(clip)
		encodeStart := time.Now()
		if err := p.Encoder.EncodeSequence(ctx, seq, outPath); err != nil {
			return err
		}
		encodeTotal += time.Since(encodeStart)

		fmt.Printf("[>] Готово: %d/%d %s (%d кадров) -> %s\n", i+1, len(clips), clip.Animation, seq.Len(), outPath)
	}

	if cfg.ShowStats {
		p.printStats(startTime, renderTotal, encodeTotal, len(clips), frameCount)
	}

	return nil
}

func (p *ClipProject) buildClipList() ([]director.Clip, error) {
	cfg := p.Config

	if cfg.ScenarioInput != "" {
		path := cfg.ScenarioInput
		if path == "latest" {
			// Берем самый свежий сгенерированный сценарий.
			latest, err := director.FindLatestScenario(filepath.Join(cfg.OutputDir, "scenarios"))
			if err != nil {
				return nil, fmt.Errorf("ошибка поиска сценария: %w", err)
			}
			path = latest
		}
		scenario, err := director.ReadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения сценария: %w", err)
		}
		if len(scenario.Clips) == 0 {
			return nil, fmt.Errorf("сценарий %s не содержит клипов", path)
		}
		fmt.Printf("[*] Используется сценарий: %s\n", path)
		return scenario.Clips, nil
	}

	if cfg.Animation == "all" {
		return director.DefaultScenario().Clips, nil
	}

	return []director.Clip{{
		ID:        1,
		Animation: cfg.Animation,
		Duration:  cfg.Duration,
		Direction: cfg.Direction,
		Output:    cfg.OutputVideo,
	}}, nil
}

func (p *ClipProject) outputPath(clip director.Clip) string {
	if clip.Output != "" {
		if filepath.IsAbs(clip.Output) {
			return clip.Output
		}
		return filepath.Join(p.Config.OutputDir, clip.Output)
	}
	base := strings.TrimSuffix(filepath.Base(p.Config.InputPath), filepath.Ext(p.Config.InputPath))
	base = strings.ReplaceAll(base, " ", "_")
	return filepath.Join(p.Config.OutputDir, fmt.Sprintf("%s_%s.webm", base, clip.Animation))
}

func (p *ClipProject) handleGenerateScenario() error {
	fmt.Println("[*] Режим генерации сценария...")

	scenario := director.DefaultScenario()

	outputPath := p.Config.ScenarioOutput
	if outputPath == "" {
		dir := filepath.Join(p.Config.OutputDir, "scenarios")
		outputPath = director.GenerateScenarioPath(dir)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return err
	}

	if err := director.WriteScenario(scenario, outputPath); err != nil {
		return err
	}

	fmt.Printf("[+++] Успех! Сценарий сохранен: %s\n", outputPath)
	return nil
}

func (p *ClipProject) printStats(start time.Time, renderTotal, encodeTotal time.Duration, clipCount, frameCount int) {
	totalTime := time.Since(start)
	fps := float64(frameCount) / totalTime.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Clips: %d | Frames: %d\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), renderTotal.Seconds(), encodeTotal.Seconds(), clipCount, frameCount, fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Clips: %d | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputPath),
		clipCount,
		frameCount,
		totalTime.Seconds(),
		renderTotal.Seconds(),
		encodeTotal.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
