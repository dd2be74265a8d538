package engine

import (
	"image"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Framebuffer is the shared RGBA pixel buffer render workers write into.
// Every write is guarded by a single mutex; the lock is held only for the
// O(1) store, never for the trace that produced the color, so contention
// stays tolerable.
type Framebuffer struct {
	mu            sync.Mutex
	width, height int
	pix           []uint8 // RGBA, row-major
}

func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
	for i := 3; i < len(fb.pix); i += 4 {
		fb.pix[i] = 255
	}
	return fb
}

func (f *Framebuffer) Size() (width, height int) {
	return f.width, f.height
}

// SetPixel stores a color at (x, y). Channels are clamped to [0,1] before
// quantization. Out-of-range coordinates are silently dropped.
func (f *Framebuffer) SetPixel(x, y int, c mgl64.Vec3) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	c = clampColor(c)
	idx := (y*f.width + x) * 4

	f.mu.Lock()
	f.pix[idx] = uint8(c[0] * 255)
	f.pix[idx+1] = uint8(c[1] * 255)
	f.pix[idx+2] = uint8(c[2] * 255)
	f.pix[idx+3] = 255
	f.mu.Unlock()
}

// Fill sets every pixel to the given color.
func (f *Framebuffer) Fill(c mgl64.Vec3) {
	c = clampColor(c)
	r, g, b := uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255)

	f.mu.Lock()
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i] = r
		f.pix[i+1] = g
		f.pix[i+2] = b
		f.pix[i+3] = 255
	}
	f.mu.Unlock()
}

// Image returns a snapshot copy of the buffer. The returned image does not
// alias the framebuffer and is safe to hand to display code.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.mu.Lock()
	copy(img.Pix, f.pix)
	f.mu.Unlock()
	return img
}
