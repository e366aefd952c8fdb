// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/user/delogo/pkg/ports"
)

// Sink saves intermediate detection results to files.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveTimestampsJSON saves the selected sample timestamps as JSON.
func (s *Sink) SaveTimestampsJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "timestamps.json")
	return s.fs.WriteFile(path, data)
}

// SaveSampledFrame saves one decoded sample frame.
func (s *Sink) SaveSampledFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.writePNG(path, img)
}

// SaveGradientHeatmap saves a rendered mean-gradient field.
func (s *Sink) SaveGradientHeatmap(axis string, img image.Image) error {
	path := filepath.Join(s.baseDir, fmt.Sprintf("gradient-%s.png", axis))
	return s.writePNG(path, img)
}

// SaveSalience saves the thresholded salience field.
func (s *Sink) SaveSalience(img image.Image) error {
	path := filepath.Join(s.baseDir, "salience.png")
	return s.writePNG(path, img)
}

// SaveMask saves the final binary mask.
func (s *Sink) SaveMask(img image.Image) error {
	path := filepath.Join(s.baseDir, "mask.png")
	return s.writePNG(path, img)
}

// SaveMaskOverlay renders the mask over a sample frame: masked pixels are
// tinted red, the detected region is outlined, and the coverage is printed
// in the corner.
func (s *Sink) SaveMaskOverlay(frame image.Image, mask *image.Gray) error {
	if frame == nil || mask == nil {
		return nil
	}

	dc := gg.NewContextForImage(frame)

	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	minX, minY, maxX, maxY := w, h, -1, -1
	masked := 0

	tint := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 {
				continue
			}
			tint.SetRGBA(x, y, color.RGBA{R: 160, A: 160})
			masked++
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	dc.DrawImage(tint, 0, 0)

	if maxX >= 0 {
		dc.SetRGB255(255, 64, 64)
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(minX), float64(minY), float64(maxX-minX+1), float64(maxY-minY+1))
		dc.Stroke()
	}

	coverage := 100 * float64(masked) / float64(w*h)
	dc.SetRGB255(255, 255, 255)
	dc.DrawString(fmt.Sprintf("coverage %.2f%%", coverage), 4, float64(h)-6)

	path := filepath.Join(s.baseDir, "overlay.png")
	return s.writePNG(path, dc.Image())
}

func (s *Sink) writePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return s.fs.WriteFile(path, buf.Bytes())
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
