package source

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// UnsupportedImageError сообщает, что входной файл не удалось декодировать
// (битый файл или неподдерживаемый формат пикселей).
type UnsupportedImageError struct {
	Path string
	Err  error
}

func (e *UnsupportedImageError) Error() string {
	return fmt.Sprintf("неподдерживаемое изображение %q: %v", e.Path, e.Err)
}

func (e *UnsupportedImageError) Unwrap() error { return e.Err }

// LoadImage декодирует PNG/JPEG и приводит к RGBA с альфа-каналом.
// Исходное изображение далее нигде не мутируется.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &UnsupportedImageError{Path: path, Err: err}
	}
	return ToRGBA(img), nil
}

// ToRGBA возвращает изображение как *image.RGBA с нулевой точкой отсчета.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

// FitSize вписывает изображение iw x ih в рамку maxW x maxH с сохранением
// пропорций. Увеличение не допускается (масштаб не больше 1).
func FitSize(iw, ih, maxW, maxH int) (int, int) {
	if iw <= 0 || ih <= 0 {
		return 1, 1
	}
	scale := minFloat(float64(maxW)/float64(iw), float64(maxH)/float64(ih), 1)
	w := int(float64(iw) * scale)
	h := int(float64(ih) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func minFloat(vals ...float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
