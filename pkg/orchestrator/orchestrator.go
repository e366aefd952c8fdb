// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ideamans/go-l10n"
	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	VideoPath string
	MaskPath  string

	// Sampling
	SampleCount int
	Seed        int64

	// Detection
	Threshold float64
	Sigma     float64
	Cutoff    float64

	// Decoding
	Workers         int
	DecodeTimeoutMs int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SampleCount: 50,
		Seed:        42,

		Threshold: 10,
		Sigma:     3,
		Cutoff:    0.2,

		DecodeTimeoutMs: 20000,
	}
}

// RunResult summarizes a mask computation for reporting.
type RunResult struct {
	Width         int
	Height        int
	Requested     int     // timestamps attempted
	FrameCount    int     // frames actually decoded
	SalientPixels int     // pixels above the gradient threshold
	MaskedPixels  int     // 255 pixels in the final mask
	Coverage      float64 // masked fraction of the frame in percent
}

// Detected reports whether the mask marks any pixels at all.
func (r RunResult) Detected() bool {
	return r.MaskedPixels > 0
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	sampleStage     pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult]
	accumulateStage pipeline.Stage[pipeline.AccumulateInput, pipeline.AccumulateResult]
	maskStage       pipeline.Stage[pipeline.MaskInput, pipeline.MaskResult]
	prober          ports.MediaProber
	filter          ports.VideoFilter
	writer          ports.ImageWriter
	sink            ports.DebugSink
	logger          ports.Logger
}

// New creates a new Orchestrator.
func New(
	sampleStage pipeline.Stage[pipeline.SampleInput, pipeline.SampleResult],
	accumulateStage pipeline.Stage[pipeline.AccumulateInput, pipeline.AccumulateResult],
	maskStage pipeline.Stage[pipeline.MaskInput, pipeline.MaskResult],
	prober ports.MediaProber,
	filter ports.VideoFilter,
	writer ports.ImageWriter,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sampleStage:     sampleStage,
		accumulateStage: accumulateStage,
		maskStage:       maskStage,
		prober:          prober,
		filter:          filter,
		writer:          writer,
		sink:            sink,
		logger:          logger,
	}
}

// ComputeMask runs the full detection pipeline and writes the binary mask
// to config.MaskPath.
func (o *Orchestrator) ComputeMask(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.F("Analyzing %s", config.VideoPath))

	// 1. Probe the container. A failed keyframe probe is recoverable: the
	// uniform duration grid serves as the timestamp source instead.
	keyframes, err := o.prober.Keyframes(ctx, config.VideoPath)
	if err != nil {
		o.logger.Warn(l10n.F("Keyframe probe failed, falling back to uniform sampling: %s", err))
		keyframes = nil
	}

	var duration float64
	if len(keyframes) == 0 {
		duration, err = o.prober.Duration(ctx, config.VideoPath)
		if err != nil {
			o.logger.Error(l10n.F("Failed to probe duration: %s", err))
			return RunResult{}, fmt.Errorf("%w: probe duration: %s", pipeline.ErrInvalidInput, err)
		}
		o.logger.Info(l10n.F("No keyframe index, sampling %.1f s uniformly", duration))
	} else {
		o.logger.Info(l10n.F("Found %d keyframes", len(keyframes)))
	}

	// 2. Select sample timestamps
	sampleInput := pipeline.SampleInput{
		Keyframes:   keyframes,
		DurationSec: duration,
		MaxCount:    config.SampleCount,
		Seed:        config.Seed,
	}
	sampled, err := o.sampleStage.Execute(ctx, sampleInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to select samples: %s", err))
		return RunResult{}, fmt.Errorf("sample stage: %w", err)
	}
	o.logger.Info(l10n.F("Selected %d sample timestamps", len(sampled.Timestamps)))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(sampled.Timestamps, "", "  "); err == nil {
			o.sink.SaveTimestampsJSON(data)
		}
	}

	// 3. Accumulate mean gradients across frames
	accInput := pipeline.AccumulateInput{
		VideoPath:       config.VideoPath,
		Timestamps:      sampled.Timestamps,
		Workers:         config.Workers,
		DecodeTimeoutMs: config.DecodeTimeoutMs,
		KeepPreview:     o.sink.Enabled(),
	}
	acc, err := o.accumulateStage.Execute(ctx, accInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to accumulate gradients: %s", err))
		return RunResult{}, fmt.Errorf("accumulate stage: %w", err)
	}
	o.logger.Info(l10n.F("Accumulated %d of %d frames at %dx%d", acc.FrameCount, acc.Requested, acc.Width, acc.Height))

	if o.sink.Enabled() {
		o.sink.SaveGradientHeatmap("x", heatmap(acc.MeanAbsX))
		o.sink.SaveGradientHeatmap("y", heatmap(acc.MeanAbsY))
	}

	// 4. Build the binary mask
	maskInput := pipeline.MaskInput{
		GradX:     acc.MeanAbsX,
		GradY:     acc.MeanAbsY,
		Threshold: config.Threshold,
		Sigma:     config.Sigma,
		Cutoff:    config.Cutoff,
	}
	mask, err := o.maskStage.Execute(ctx, maskInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to build mask: %s", err))
		return RunResult{}, fmt.Errorf("mask stage: %w", err)
	}

	if o.sink.Enabled() && acc.Preview != nil {
		o.sink.SaveMaskOverlay(acc.Preview, mask.Mask)
	}

	// 5. Write the mask image
	if err := o.writer.WritePNG(config.MaskPath, mask.Mask); err != nil {
		o.logger.Error(l10n.F("Failed to write mask: %s", err))
		return RunResult{}, fmt.Errorf("write mask: %w", err)
	}

	result := RunResult{
		Width:         acc.Width,
		Height:        acc.Height,
		Requested:     acc.Requested,
		FrameCount:    acc.FrameCount,
		SalientPixels: mask.SalientPixels,
		MaskedPixels:  mask.MaskedPixels,
		Coverage:      100 * float64(mask.MaskedPixels) / float64(acc.Width*acc.Height),
	}

	if result.Detected() {
		o.logger.Info(l10n.F("Mask written to %s (%.2f%% coverage)", config.MaskPath, result.Coverage))
	} else {
		o.logger.Warn(l10n.T("No static watermark detected, mask is empty"))
	}
	return result, nil
}

// Remove computes the mask and re-encodes the video with the masked region
// interpolated away.
func (o *Orchestrator) Remove(ctx context.Context, config Config, outputPath string) (RunResult, error) {
	result, err := o.ComputeMask(ctx, config)
	if err != nil {
		return RunResult{}, err
	}

	if !result.Detected() {
		o.logger.Warn(l10n.T("Nothing to remove, skipping re-encode"))
		return result, nil
	}

	o.logger.Info(l10n.F("Removing watermark into %s", outputPath))
	if err := o.filter.RemoveLogo(ctx, config.VideoPath, config.MaskPath, outputPath); err != nil {
		o.logger.Error(l10n.F("Failed to remove watermark: %s", err))
		return RunResult{}, fmt.Errorf("remove filter: %w", err)
	}

	o.logger.Info(l10n.T("Removal completed"))
	return result, nil
}

// heatmap renders a gradient field as a grayscale image, scaled so the
// largest magnitude maps to white.
func heatmap(f *pipeline.Field) image.Image {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))

	max := 0.0
	for _, v := range f.Pix {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return img
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.Pix[y*img.Stride+x] = uint8(f.At(x, y) / max * 255)
		}
	}
	return img
}
