package mocks

import (
	"image"
	"sync"

	"github.com/user/delogo/pkg/ports"
)

// ImageWriter is a mock implementation of ports.ImageWriter.
type ImageWriter struct {
	WritePNGFunc func(path string, img image.Image) error

	mu     sync.Mutex
	Images map[string]image.Image
}

// NewImageWriter creates a new mock ImageWriter.
func NewImageWriter() *ImageWriter {
	return &ImageWriter{Images: make(map[string]image.Image)}
}

func (m *ImageWriter) WritePNG(path string, img image.Image) error {
	m.mu.Lock()
	m.Images[path] = img
	m.mu.Unlock()

	if m.WritePNGFunc != nil {
		return m.WritePNGFunc(path, img)
	}
	return nil
}

// Written returns the image written to path, if any.
func (m *ImageWriter) Written(path string) (image.Image, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.Images[path]
	return img, ok
}

var _ ports.ImageWriter = (*ImageWriter)(nil)
