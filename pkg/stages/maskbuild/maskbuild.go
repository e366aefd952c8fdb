// Package maskbuild implements the mask building stage: it thresholds the
// accumulated gradient fields, smooths the salience, and binarizes the
// result into a {0,255} mask.
package maskbuild

import (
	"context"
	"fmt"
	"image"

	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/ports"
)

// Stage turns accumulated gradient fields into the final mask.
type Stage struct {
	sink   ports.DebugSink
	logger ports.Logger
}

// NewStage creates a new maskbuild stage.
func NewStage(sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		sink:   sink,
		logger: logger.WithComponent("maskbuild"),
	}
}

// Execute builds the mask: threshold, Gaussian smooth, min-max normalize,
// binarize. A salience field with no variation normalizes to all zeros,
// which yields an empty mask: a valid "no watermark detected" outcome.
func (s *Stage) Execute(ctx context.Context, input pipeline.MaskInput) (pipeline.MaskResult, error) {
	if input.GradX == nil || input.GradY == nil {
		return pipeline.MaskResult{}, fmt.Errorf("%w: missing gradient fields", pipeline.ErrInvalidInput)
	}
	if !input.GradX.SameSize(input.GradY) {
		return pipeline.MaskResult{}, fmt.Errorf("%w: gradient fields %dx%d vs %dx%d",
			pipeline.ErrDimensionMismatch,
			input.GradX.Width, input.GradX.Height,
			input.GradY.Width, input.GradY.Height)
	}

	salient, count := salience(input.GradX, input.GradY, input.Threshold)
	s.logger.Debug("%d salient pixels above threshold %.1f", count, input.Threshold)

	if s.sink.Enabled() {
		s.sink.SaveSalience(fieldToGray(salient, 255))
	}

	smoothed := blurSeparable(salient, input.Sigma)
	normalizeField(smoothed)
	mask, masked := binarize(smoothed, input.Cutoff)

	if s.sink.Enabled() {
		s.sink.SaveMask(mask)
	}

	s.logger.Debug("Mask has %d of %d pixels set", masked, len(mask.Pix))

	return pipeline.MaskResult{
		Mask:          mask,
		SalientPixels: count,
		MaskedPixels:  masked,
	}, nil
}

// salience promotes the threshold test to a 0/1 float field: 1 where either
// absolute mean gradient exceeds the threshold.
func salience(gradX, gradY *pipeline.Field, threshold float64) (*pipeline.Field, int) {
	out := pipeline.NewField(gradX.Width, gradX.Height)
	count := 0
	for i := range out.Pix {
		if gradX.Pix[i] > threshold || gradY.Pix[i] > threshold {
			out.Pix[i] = 1
			count++
		}
	}
	return out, count
}

// normalizeField rescales the field into [0,1] in place. A uniform field
// (max equals min) becomes all zeros instead of failing.
func normalizeField(f *pipeline.Field) {
	if len(f.Pix) == 0 {
		return
	}
	min, max := f.Pix[0], f.Pix[0]
	for _, v := range f.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		for i := range f.Pix {
			f.Pix[i] = 0
		}
		return
	}
	scale := 1.0 / (max - min)
	for i := range f.Pix {
		f.Pix[i] = (f.Pix[i] - min) * scale
	}
}

// binarize produces the {0,255} mask from a normalized field.
func binarize(f *pipeline.Field, cutoff float64) (*image.Gray, int) {
	mask := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	count := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.At(x, y) > cutoff {
				mask.Pix[y*mask.Stride+x] = 255
				count++
			}
		}
	}
	return mask, count
}

// fieldToGray renders a 0/1 field as a grayscale image for debug output.
func fieldToGray(f *pipeline.Field, scale float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			v := f.At(x, y) * scale
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			img.Pix[y*img.Stride+x] = uint8(v + 0.5)
		}
	}
	return img
}
