// Package pngwriter provides PNG image output through a filesystem port.
package pngwriter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/user/delogo/pkg/ports"
)

// Writer encodes images as PNG and writes them through a FileSystem.
type Writer struct {
	fs ports.FileSystem
}

// New creates a new Writer.
func New(fs ports.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// WritePNG encodes img as PNG and writes it to path.
func (w *Writer) WritePNG(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("write png %s: nil image", path)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return w.fs.WriteFile(path, buf.Bytes())
}

// Ensure Writer implements ports.ImageWriter
var _ ports.ImageWriter = (*Writer)(nil)
