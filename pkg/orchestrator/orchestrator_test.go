package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/user/delogo/pkg/adapters/logger"
	"github.com/user/delogo/pkg/mocks"
	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/stages/accumulate"
	"github.com/user/delogo/pkg/stages/maskbuild"
	"github.com/user/delogo/pkg/stages/sample"
)

// watermarkFrame returns a black frame with a bright rectangle, the same in
// every call, like a static overlay on changing content would average into.
func watermarkFrame() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 64, 36))
	for y := 10; y < 25; y++ {
		for x := 20; x < 40; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

func newTestOrchestrator(decoder *mocks.FrameDecoder, prober *mocks.MediaProber, filter *mocks.VideoFilter, writer *mocks.ImageWriter) *Orchestrator {
	log := logger.NewNoop()
	sink := mocks.NewDebugSink()
	return New(
		sample.NewStage(log),
		accumulate.NewStage(decoder, sink, log, 2),
		maskbuild.NewStage(sink, log),
		prober,
		filter,
		writer,
		sink,
		log,
	)
}

func TestComputeMask_DetectsStaticRectangle(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			return watermarkFrame(), nil
		},
	}
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return []float64{1, 2, 3, 4, 5, 6, 7, 8}, nil
		},
	}
	writer := mocks.NewImageWriter()

	o := newTestOrchestrator(decoder, prober, &mocks.VideoFilter{}, writer)

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"

	result, err := o.ComputeMask(context.Background(), config)
	if err != nil {
		t.Fatalf("ComputeMask failed: %v", err)
	}

	if result.Width != 64 || result.Height != 36 {
		t.Errorf("unexpected dimensions: %dx%d", result.Width, result.Height)
	}
	if result.FrameCount != 8 {
		t.Errorf("expected 8 decoded frames, got %d", result.FrameCount)
	}
	if !result.Detected() {
		t.Error("expected the rectangle edges to be detected")
	}

	img, ok := writer.Written("mask.png")
	if !ok {
		t.Fatal("expected mask to be written")
	}
	mask, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray mask, got %T", img)
	}

	// Rectangle edges carry the gradient; the corner must be masked and a
	// far-away background pixel must not be.
	if mask.GrayAt(20, 10).Y != 255 {
		t.Error("expected rectangle corner to be masked")
	}
	if mask.GrayAt(2, 2).Y != 0 {
		t.Error("expected far background to stay unmasked")
	}
}

func TestComputeMask_UniformVideoYieldsEmptyMask(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			img := image.NewGray(image.Rect(0, 0, 32, 18))
			for i := range img.Pix {
				img.Pix[i] = 128
			}
			return img, nil
		},
	}
	prober := &mocks.MediaProber{
		DurationFunc: func(ctx context.Context, path string) (float64, error) {
			return 10.0, nil
		},
	}
	writer := mocks.NewImageWriter()

	o := newTestOrchestrator(decoder, prober, &mocks.VideoFilter{}, writer)

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"
	config.SampleCount = 5

	result, err := o.ComputeMask(context.Background(), config)
	if err != nil {
		t.Fatalf("ComputeMask failed: %v", err)
	}
	if result.Detected() {
		t.Errorf("expected empty mask, got %d masked pixels", result.MaskedPixels)
	}
	if !prober.DurationCalled {
		t.Error("expected uniform-grid fallback to probe the duration")
	}
	if _, ok := writer.Written("mask.png"); !ok {
		t.Error("expected empty mask to still be written")
	}
}

func TestComputeMask_KeyframeProbeErrorFallsBackToUniformGrid(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			return watermarkFrame(), nil
		},
	}
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return nil, errors.New("ffprobe failed: exit status 1")
		},
		DurationFunc: func(ctx context.Context, path string) (float64, error) {
			return 10.0, nil
		},
	}
	writer := mocks.NewImageWriter()

	o := newTestOrchestrator(decoder, prober, &mocks.VideoFilter{}, writer)

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"
	config.SampleCount = 8

	result, err := o.ComputeMask(context.Background(), config)
	if err != nil {
		t.Fatalf("ComputeMask failed: %v", err)
	}
	if !prober.DurationCalled {
		t.Error("expected the duration grid to be used after the keyframe probe error")
	}
	if result.FrameCount != 8 {
		t.Errorf("expected 8 decoded frames, got %d", result.FrameCount)
	}
	if !result.Detected() {
		t.Error("expected the rectangle to be detected on uniform samples")
	}
	if _, ok := writer.Written("mask.png"); !ok {
		t.Error("expected mask to be written")
	}
}

func TestComputeMask_BothProbesFail(t *testing.T) {
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return nil, errors.New("ffprobe failed")
		},
		DurationFunc: func(ctx context.Context, path string) (float64, error) {
			return 0, errors.New("no ffprobe and not an mp4")
		},
	}

	o := newTestOrchestrator(&mocks.FrameDecoder{}, prober, &mocks.VideoFilter{}, mocks.NewImageWriter())

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"

	_, err := o.ComputeMask(context.Background(), config)
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput when no timestamp source works, got %v", err)
	}
	if !prober.DurationCalled {
		t.Error("expected the duration fallback to be attempted")
	}
}

func TestComputeMask_InsufficientSamples(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			if ts != 1.0 {
				return nil, fmt.Errorf("%w: no frame", pipeline.ErrDecodeFailed)
			}
			return watermarkFrame(), nil
		},
	}
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return []float64{1, 2, 3, 4, 5}, nil
		},
	}

	o := newTestOrchestrator(decoder, prober, &mocks.VideoFilter{}, mocks.NewImageWriter())

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"
	config.Workers = 1

	_, err := o.ComputeMask(context.Background(), config)
	if !errors.Is(err, pipeline.ErrInsufficientSamples) {
		t.Errorf("expected ErrInsufficientSamples, got %v", err)
	}
}

func TestRemove_RunsFilterWhenDetected(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			return watermarkFrame(), nil
		},
	}
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return []float64{1, 2, 3, 4}, nil
		},
	}
	filter := &mocks.VideoFilter{}

	o := newTestOrchestrator(decoder, prober, filter, mocks.NewImageWriter())

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"

	result, err := o.Remove(context.Background(), config, "out.mp4")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !result.Detected() {
		t.Fatal("expected detection")
	}
	if len(filter.RemoveLogoCalls) != 1 {
		t.Fatalf("expected 1 RemoveLogo call, got %d", len(filter.RemoveLogoCalls))
	}
	call := filter.RemoveLogoCalls[0]
	if call.VideoPath != "in.mp4" || call.MaskPath != "mask.png" || call.OutputPath != "out.mp4" {
		t.Errorf("unexpected RemoveLogo call: %+v", call)
	}
}

func TestRemove_SkipsFilterOnEmptyMask(t *testing.T) {
	decoder := &mocks.FrameDecoder{
		DecodeFrameFunc: func(ctx context.Context, path string, ts float64) (image.Image, error) {
			return image.NewGray(image.Rect(0, 0, 32, 18)), nil
		},
	}
	prober := &mocks.MediaProber{
		KeyframesFunc: func(ctx context.Context, path string) ([]float64, error) {
			return []float64{1, 2, 3, 4}, nil
		},
	}
	filter := &mocks.VideoFilter{}

	o := newTestOrchestrator(decoder, prober, filter, mocks.NewImageWriter())

	config := DefaultConfig()
	config.VideoPath = "in.mp4"
	config.MaskPath = "mask.png"

	result, err := o.Remove(context.Background(), config, "out.mp4")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if result.Detected() {
		t.Fatal("expected empty mask")
	}
	if len(filter.RemoveLogoCalls) != 0 {
		t.Errorf("expected no RemoveLogo calls, got %d", len(filter.RemoveLogoCalls))
	}
}

func TestHeatmap(t *testing.T) {
	f := pipeline.NewField(4, 2)
	f.Set(0, 0, 5)
	f.Set(3, 1, 10)

	img := heatmap(f)
	gray := img.(*image.Gray)
	if gray.GrayAt(3, 1).Y != 255 {
		t.Errorf("expected max value to map to 255, got %d", gray.GrayAt(3, 1).Y)
	}
	if gray.GrayAt(0, 0).Y != 127 {
		t.Errorf("expected half value to map to 127, got %d", gray.GrayAt(0, 0).Y)
	}
}

func TestHeatmap_UniformZero(t *testing.T) {
	img := heatmap(pipeline.NewField(3, 3))
	gray := img.(*image.Gray)
	for _, p := range gray.Pix {
		if p != 0 {
			t.Fatal("expected all-zero heatmap for zero field")
		}
	}
}
