package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
)

// FrameSequence — упорядоченный набор кадров одного клипа. Порядок кадров
// является порядком показа и должен сохраняться в точности. После передачи
// энкодеру кадры принадлежат ему: сборщик их не переиспользует.
type FrameSequence struct {
	Frames []*image.RGBA
	FPS    int
	Width  int
	Height int
}

// Len возвращает число кадров.
func (s *FrameSequence) Len() int { return len(s.Frames) }

// EncodingError сообщает об отказе внешнего энкодера: ffmpeg отсутствует,
// вернул ошибку или последовательность кадров пуста. Частичный результат не
// является валидным — усечённый клип не публикуется.
type EncodingError struct {
	Output string
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ошибка кодирования %q: %s: %v", e.Output, e.Reason, e.Err)
	}
	return fmt.Sprintf("ошибка кодирования %q: %s", e.Output, e.Reason)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// VideoEncoder принимает готовую последовательность кадров и создает
// видеофайл с заданной частотой.
type VideoEncoder interface {
	EncodeSequence(ctx context.Context, seq *FrameSequence, outputPath string) error
}

// FFmpegEncoder кодирует webm с альфа-каналом через ffmpeg: raw RGBA кадры
// подаются в stdin, на выходе VP9 (или VP8) с yuva420p.
type FFmpegEncoder struct {
	Encoder string // libvpx-vp9 или libvpx
	Quality int    // CRF (0 — значение по умолчанию 30)
}

func (e *FFmpegEncoder) EncodeSequence(ctx context.Context, seq *FrameSequence, outputPath string) error {
	if seq == nil || len(seq.Frames) == 0 {
		return &EncodingError{Output: outputPath, Reason: "пустая последовательность кадров"}
	}
	if seq.FPS <= 0 {
		return &EncodingError{Output: outputPath, Reason: fmt.Sprintf("некорректный fps %d", seq.FPS)}
	}
	for i, frame := range seq.Frames {
		if frame.Rect.Dx() != seq.Width || frame.Rect.Dy() != seq.Height {
			return &EncodingError{
				Output: outputPath,
				Reason: fmt.Sprintf("кадр %d имеет размер %dx%d вместо %dx%d", i, frame.Rect.Dx(), frame.Rect.Dy(), seq.Width, seq.Height),
			}
		}
	}

	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return &EncodingError{Output: outputPath, Reason: "ffmpeg не найден", Err: err}
	}

	args := e.buildFFmpegArgs(seq, outputPath)
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &EncodingError{Output: outputPath, Reason: "stdin pipe", Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &EncodingError{Output: outputPath, Reason: "запуск ffmpeg", Err: err}
	}

	// Кадры пишутся строго в порядке показа.
	writeErr := func() error {
		defer stdin.Close()
		for _, frame := range seq.Frames {
			if err := writeRawRGBA(stdin, frame); err != nil {
				return err
			}
		}
		return nil
	}()

	if err := cmd.Wait(); err != nil {
		return &EncodingError{
			Output: outputPath,
			Reason: fmt.Sprintf("ffmpeg завершился с ошибкой, лог: %s", tail(out.String(), 800)),
			Err:    err,
		}
	}
	if writeErr != nil {
		return &EncodingError{Output: outputPath, Reason: "запись кадров", Err: writeErr}
	}

	return nil
}

func (e *FFmpegEncoder) buildFFmpegArgs(seq *FrameSequence, outputPath string) []string {
	encoder := e.Encoder
	if encoder == "" {
		encoder = "libvpx-vp9"
	}
	quality := e.Quality
	if quality <= 0 {
		quality = 30
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", seq.Width, seq.Height),
		"-framerate", fmt.Sprintf("%d", seq.FPS),
		"-i", "-",
		"-c:v", encoder,
		"-auto-alt-ref", "0",
		"-pix_fmt", "yuva420p",
		"-crf", fmt.Sprintf("%d", quality),
	}
	if encoder == "libvpx" {
		// VP8 не принимает -b:v 0 вместе с CRF.
		args = append(args, "-b:v", "1M")
	} else {
		args = append(args, "-b:v", "0")
	}
	args = append(args, "-r", fmt.Sprintf("%d", seq.FPS), outputPath)
	return args
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	if img.Stride == img.Rect.Dx()*4 {
		_, err := w.Write(img.Pix)
		return err
	}
	// Нестандартный stride — построчно.
	rowLen := img.Rect.Dx() * 4
	for y := 0; y < img.Rect.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
