package pngwriter

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/user/delogo/pkg/mocks"
)

func TestWriter_WritePNG(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := New(fs)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 255})

	if err := w.WritePNG("/out/mask.png", img); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	data, ok := fs.GetFile("/out/mask.png")
	if !ok {
		t.Fatal("expected file to be written")
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("written data is not valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
		t.Errorf("unexpected decoded bounds: %v", decoded.Bounds())
	}

	r, _, _, _ := decoded.At(2, 2).RGBA()
	if r>>8 != 255 {
		t.Errorf("expected pixel (2,2) to round-trip as 255, got %d", r>>8)
	}
}

func TestWriter_WritePNG_NilImage(t *testing.T) {
	w := New(mocks.NewFileSystem())
	if err := w.WritePNG("/out/mask.png", nil); err == nil {
		t.Error("expected error for nil image")
	}
}
