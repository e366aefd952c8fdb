// Package overlay computes logo placement for the addlogo command and
// renders in-Go previews of the composited result.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/user/delogo/pkg/pipeline"
)

// Position identifiers accepted by the addlogo command.
const (
	PositionTopLeft     = "top-left"
	PositionTopRight    = "top-right"
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
	PositionCenter      = "center"
)

// Positions lists the supported position identifiers.
func Positions() []string {
	return []string{
		PositionTopLeft,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomRight,
		PositionCenter,
	}
}

// Spec describes where and how a logo is placed on a video frame.
type Spec struct {
	Position string  // one of the Position constants
	Scale    float64 // logo width multiplier; height follows the aspect ratio
	Opacity  float64 // 0..1
	Margin   int     // distance from the frame edges in pixels
}

// DefaultSpec returns the default placement: bottom-right corner, 15% size,
// fully opaque, 10px margin.
func DefaultSpec() Spec {
	return Spec{
		Position: PositionBottomRight,
		Scale:    0.15,
		Opacity:  1.0,
		Margin:   10,
	}
}

// Validate checks the spec's value ranges.
func (s Spec) Validate() error {
	if s.Scale <= 0 {
		return fmt.Errorf("%w: logo scale must be positive, got %g", pipeline.ErrInvalidInput, s.Scale)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("%w: opacity must be within [0,1], got %g", pipeline.ErrInvalidInput, s.Opacity)
	}
	if _, err := s.FFmpegExpr(); err != nil {
		return err
	}
	return nil
}

// FFmpegExpr returns the overlay position as an ffmpeg x:y expression,
// where W/H are the video dimensions and w/h the scaled logo dimensions.
func (s Spec) FFmpegExpr() (string, error) {
	m := s.Margin
	switch s.Position {
	case PositionTopLeft:
		return fmt.Sprintf("%d:%d", m, m), nil
	case PositionTopRight:
		return fmt.Sprintf("W-w-%d:%d", m, m), nil
	case PositionBottomLeft:
		return fmt.Sprintf("%d:H-h-%d", m, m), nil
	case PositionBottomRight:
		return fmt.Sprintf("W-w-%d:H-h-%d", m, m), nil
	case PositionCenter:
		return "(W-w)/2:(H-h)/2", nil
	default:
		return "", fmt.Errorf("%w: unknown logo position %q", pipeline.ErrInvalidInput, s.Position)
	}
}

// PixelRect computes the destination rectangle of the scaled logo within a
// frame of the given size. It mirrors FFmpegExpr for the preview renderer.
func (s Spec) PixelRect(frameW, frameH, logoW, logoH int) (image.Rectangle, error) {
	if logoW <= 0 || logoH <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: empty logo image", pipeline.ErrInvalidInput)
	}

	w := int(float64(logoW)*s.Scale + 0.5)
	if w < 1 {
		w = 1
	}
	h := logoH * w / logoW
	if h < 1 {
		h = 1
	}

	var x, y int
	m := s.Margin
	switch s.Position {
	case PositionTopLeft:
		x, y = m, m
	case PositionTopRight:
		x, y = frameW-w-m, m
	case PositionBottomLeft:
		x, y = m, frameH-h-m
	case PositionBottomRight:
		x, y = frameW-w-m, frameH-h-m
	case PositionCenter:
		x, y = (frameW-w)/2, (frameH-h)/2
	default:
		return image.Rectangle{}, fmt.Errorf("%w: unknown logo position %q", pipeline.ErrInvalidInput, s.Position)
	}

	return image.Rect(x, y, x+w, y+h), nil
}

// RenderPreview composites the scaled logo over a single frame, matching
// what the overlay re-encode would produce. Used by `addlogo --preview`.
func RenderPreview(frame, logo image.Image, spec Spec) (image.Image, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	fb := frame.Bounds()
	lb := logo.Bounds()
	rect, err := spec.PixelRect(fb.Dx(), fb.Dy(), lb.Dx(), lb.Dy())
	if err != nil {
		return nil, err
	}

	scaled := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, lb, xdraw.Over, nil)

	out := image.NewRGBA(image.Rect(0, 0, fb.Dx(), fb.Dy()))
	draw.Draw(out, out.Bounds(), frame, fb.Min, draw.Src)

	if spec.Opacity < 1.0 {
		alpha := image.NewUniform(color.Alpha{A: uint8(spec.Opacity*255 + 0.5)})
		draw.DrawMask(out, rect, scaled, image.Point{}, alpha, image.Point{}, draw.Over)
	} else {
		draw.Draw(out, rect, scaled, image.Point{}, draw.Over)
	}

	return out, nil
}
