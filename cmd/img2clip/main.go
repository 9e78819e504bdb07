package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/ivlev/img2clip/internal/anim"
	"github.com/ivlev/img2clip/internal/config"
	"github.com/ivlev/img2clip/internal/engine"
	"github.com/ivlev/img2clip/internal/system"
	"github.com/ivlev/img2clip/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/images", "output", "output/scenarios"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к изображению или папке (по умолчанию: самый свежий файл в input/images/)")
	outputPtr := flag.String("output", "", "Путь к клипу (если пусто, генерируется автоматически в output/)")
	outputDirPtr := flag.String("output-dir", "output", "Директория для результатов")
	animationPtr := flag.String("animation", "bubble_pop", "Анимация из каталога или all для всех (см. -list)")
	listPtr := flag.Bool("list", false, "Показать каталог анимаций и выйти")
	durationPtr := flag.Float64("duration", 0, "Длительность клипа в секундах (0 — пресет анимации)")
	fpsPtr := flag.Int("fps", 60, "FPS")
	directionPtr := flag.String("direction", "", "Направление для направленных анимаций: left, right, up, down")
	easingPtr := flag.String("easing", "", "Кривая сглаживания: linear, ease_out_cubic, smooth_step, overshoot")
	intensityPtr := flag.Float64("intensity", 0, "Амплитуда тряски в пикселях (0 — пресет)")
	bouncePtr := flag.Float64("bounce-height", 0, "Высота отскока в пикселях (0 — пресет)")
	blurPtr := flag.Float64("max-blur", 0, "Максимальный радиус размытия для blur-анимаций (0 — пресет)")
	widthPtr := flag.Int("width", 1080, "Ширина холста")
	heightPtr := flag.Int("height", 1920, "Высота холста")
	presetPtr := flag.String("preset", "", "Пресет формата: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	bandPtr := flag.Float64("band", 0.4, "Доля высоты холста под изображение")
	paddingPtr := flag.Float64("padding", 0.01, "Отступ сверху (доля высоты холста)")
	backgroundPtr := flag.String("background", "", "Цвет фона в hex (#RRGGBB); пусто — прозрачный")
	scenarioPtr := flag.String("scenario", "", "Путь к YAML-сценарию пакетного рендера (latest — самый свежий в <output-dir>/scenarios)")
	genScenarioPtr := flag.Bool("generate-scenario", false, "Сгенерировать YAML-сценарий со всеми анимациями и выйти")
	scenarioOutPtr := flag.String("scenario-output", "", "Куда сохранить сгенерированный сценарий")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, CRF для libvpx/vp9)")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки рендеринга")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	if *listPtr {
		printCatalog()
		return
	}

	width, height := *widthPtr, *heightPtr
	switch *presetPtr {
	case "16:9":
		width, height = 1920, 1080
	case "9:16":
		width, height = 1080, 1920
	case "4:5":
		width, height = 1080, 1350
	}

	cfg := &config.Config{
		OutputDir:        *outputDirPtr,
		OutputVideo:      *outputPtr,
		Animation:        *animationPtr,
		Duration:         *durationPtr,
		FPS:              *fpsPtr,
		Width:            width,
		Height:           height,
		BandPercent:      *bandPtr,
		PaddingPercent:   *paddingPtr,
		Direction:        *directionPtr,
		Easing:           *easingPtr,
		Intensity:        *intensityPtr,
		BounceHeight:     *bouncePtr,
		MaxBlurRadius:    *blurPtr,
		Background:       *backgroundPtr,
		Workers:          *workersPtr,
		Quality:          *qualityPtr,
		ScenarioInput:    *scenarioPtr,
		ScenarioOutput:   *scenarioOutPtr,
		GenerateScenario: *genScenarioPtr,
		ShowStats:        *statsPtr,
		BuildVersion:     buildVersion,
	}

	if !cfg.GenerateScenario {
		inputPath := *inputPtr
		if inputPath == "" {
			latest, err := system.FindLatestImage("input/images")
			if err != nil {
				log.Fatalf("[-] Ошибка: %v. Положите изображение в input/images/", err)
			}
			inputPath = latest
			fmt.Printf("[*] Выбран файл: %s\n", inputPath)
		}
		cfg.InputPath = inputPath

		if err := system.CheckFFmpeg(); err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}

		encoderName := system.GetBestVPXEncoder()
		cfg.VideoEncoder = encoderName

		if cfg.Quality == 0 {
			// CRF по умолчанию: VP9 лучше сжимает, можно поднять качество
			switch encoderName {
			case "libvpx-vp9":
				cfg.Quality = 30
			default:
				cfg.Quality = 10
			}
		}
	}

	ve := &video.FFmpegEncoder{Encoder: cfg.VideoEncoder, Quality: cfg.Quality}

	project := engine.NewClipProject(cfg, ve)
	if err := project.Run(context.Background()); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Println("[+++] Успех!")
}

func printCatalog() {
	fmt.Println("Доступные анимации:")
	for _, name := range anim.Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("\nИспользуйте -animation all для рендера всего каталога.")
}
