package accumulate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/user/delogo/pkg/adapters/logger"
	"github.com/user/delogo/pkg/adapters/nullsink"
	"github.com/user/delogo/pkg/mocks"
	"github.com/user/delogo/pkg/pipeline"
)

// rampImage returns a grayscale image whose intensity is x*step, a linear
// horizontal ramp with a constant derivative.
func rampImage(w, h int, step float64) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(float64(x) * step)})
		}
	}
	return img
}

func newStage(decoder *mocks.FrameDecoder) *Stage {
	return NewStage(decoder, nullsink.New(), logger.NewNoop(), 2)
}

func TestExecute_IdenticalFramesEqualSingleFrameGradient(t *testing.T) {
	// A horizontal ramp has derivative `step` at every pixel, including the
	// one-sided borders. The mean over identical frames must equal it.
	const step = 10.0
	frame := rampImage(8, 6, step)
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			return frame, nil
		},
	}

	result, err := newStage(decoder).Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1, 2, 3, 4},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.FrameCount != 4 {
		t.Errorf("expected 4 decoded frames, got %d", result.FrameCount)
	}
	if result.Width != 8 || result.Height != 6 {
		t.Errorf("expected 8x6 fields, got %dx%d", result.Width, result.Height)
	}
	for i, v := range result.MeanAbsX.Pix {
		if math.Abs(v-step) > 1e-9 {
			t.Fatalf("MeanAbsX[%d]: expected %v, got %v", i, step, v)
		}
	}
	for i, v := range result.MeanAbsY.Pix {
		if v != 0 {
			t.Fatalf("MeanAbsY[%d]: expected 0, got %v", i, v)
		}
	}
}

func TestExecute_OppositeGradientsCancel(t *testing.T) {
	// Two frames with opposite ramps must cancel under average-then-absolute.
	// Averaging absolute values instead would yield the full gradient.
	up := rampImage(10, 4, 10)
	down := image.NewGray(image.Rect(0, 0, 10, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			down.SetGray(x, y, color.Gray{Y: uint8((9 - x) * 10)})
		}
	}

	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			if ts == 1 {
				return up, nil
			}
			return down, nil
		},
	}

	result, err := newStage(decoder).Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1, 2},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	for i, v := range result.MeanAbsX.Pix {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("MeanAbsX[%d]: expected cancellation to 0, got %v", i, v)
		}
	}
}

func TestExecute_DecodeFailuresAreSkipped(t *testing.T) {
	frame := rampImage(6, 6, 5)
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			if ts == 2 || ts == 4 {
				return nil, fmt.Errorf("%w: seek out of range", pipeline.ErrDecodeFailed)
			}
			return frame, nil
		},
	}

	result, err := newStage(decoder).Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1, 2, 3, 4, 5},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.FrameCount != 3 {
		t.Errorf("expected 3 decoded frames, got %d", result.FrameCount)
	}
	if result.Requested != 5 {
		t.Errorf("expected 5 requested, got %d", result.Requested)
	}
}

func TestExecute_InsufficientSamples(t *testing.T) {
	frame := rampImage(6, 6, 5)
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			if ts != 3 {
				return nil, fmt.Errorf("%w: corrupt frame", pipeline.ErrDecodeFailed)
			}
			return frame, nil
		},
	}

	_, err := newStage(decoder).Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1, 2, 3, 4, 5},
	})
	if !errors.Is(err, pipeline.ErrInsufficientSamples) {
		t.Errorf("expected ErrInsufficientSamples, got %v", err)
	}
}

func TestExecute_TooFewTimestamps(t *testing.T) {
	decoder := &mocks.FrameDecoder{}
	_, err := newStage(decoder).Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1},
	})
	if !errors.Is(err, pipeline.ErrInsufficientSamples) {
		t.Errorf("expected ErrInsufficientSamples, got %v", err)
	}
}

func TestExecute_DimensionMismatch(t *testing.T) {
	small := rampImage(6, 6, 5)
	large := rampImage(8, 6, 5)
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			if ts < 3 {
				return small, nil
			}
			return large, nil
		},
	}

	// Single worker keeps the decode order deterministic for this test.
	stage := NewStage(decoder, nullsink.New(), logger.NewNoop(), 1)
	_, err := stage.Execute(context.Background(), pipeline.AccumulateInput{
		VideoPath:  "test.mp4",
		Timestamps: []float64{1, 2, 3, 4},
	})
	if !errors.Is(err, pipeline.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestGradientX_CentralAndOneSided(t *testing.T) {
	// Intensity x^2 on one row: interior central difference is 2x, borders
	// use one-sided differences.
	f := pipeline.NewField(5, 1)
	for x := 0; x < 5; x++ {
		f.Set(x, 0, float64(x*x))
	}
	g := gradientX(f)

	expected := []float64{1, 2, 4, 6, 7}
	for x, want := range expected {
		if got := g.At(x, 0); got != want {
			t.Errorf("gradientX[%d]: expected %v, got %v", x, want, got)
		}
	}
}

func TestGradientY_CentralAndOneSided(t *testing.T) {
	f := pipeline.NewField(1, 5)
	for y := 0; y < 5; y++ {
		f.Set(0, y, float64(y*y))
	}
	g := gradientY(f)

	expected := []float64{1, 2, 4, 6, 7}
	for y, want := range expected {
		if got := g.At(0, y); got != want {
			t.Errorf("gradientY[%d]: expected %v, got %v", y, want, got)
		}
	}
}

func TestIntensityPlane_AveragesChannels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 30, G: 60, B: 90, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})

	f := intensityPlane(img)
	if got := f.At(0, 0); got != 60 {
		t.Errorf("expected channel mean 60, got %v", got)
	}
	if got := f.At(1, 0); got != 85 {
		t.Errorf("expected channel mean 85, got %v", got)
	}
}

func TestIntensityPlane_NonZeroOriginBounds(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			base.SetRGBA(x, y, color.RGBA{R: uint8(x * 20), G: uint8(x * 20), B: uint8(x * 20), A: 255})
		}
	}
	sub := base.SubImage(image.Rect(2, 2, 8, 8)).(*image.RGBA)

	f := intensityPlane(sub)
	if f.Width != 6 || f.Height != 6 {
		t.Fatalf("expected 6x6 plane, got %dx%d", f.Width, f.Height)
	}
	if got := f.At(0, 0); got != 40 {
		t.Errorf("expected intensity 40 at sub-image origin, got %v", got)
	}
}
