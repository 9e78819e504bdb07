package system

import (
	"fmt"
	"image"
	"sync"
)

// ScratchPool переиспользует промежуточные *image.RGBA (буферы для размытия
// и масштабирования), чтобы снизить нагрузку на GC при длинных
// последовательностях кадров. Итоговые кадры из пула не берутся: их
// владение передается энкодеру.
type ScratchPool struct {
	mu    sync.RWMutex
	pools map[string]*sync.Pool
}

var scratch = &ScratchPool{pools: make(map[string]*sync.Pool)}

// GetScratch возвращает чистый RGBA-буфер размера w x h.
func GetScratch(w, h int) *image.RGBA {
	img := scratch.get(w, h)
	clear(img.Pix)
	return img
}

// PutScratch возвращает буфер в пул.
func PutScratch(img *image.RGBA) {
	scratch.put(img)
}

func (p *ScratchPool) get(w, h int) *image.RGBA {
	key := fmt.Sprintf("%dx%d", w, h)

	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if !ok {
		p.mu.Lock()
		pool, ok = p.pools[key]
		if !ok {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(image.Rect(0, 0, w, h))
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *ScratchPool) put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := fmt.Sprintf("%dx%d", img.Rect.Dx(), img.Rect.Dy())

	p.mu.RLock()
	pool, ok := p.pools[key]
	p.mu.RUnlock()

	if ok {
		pool.Put(img)
	}
}
