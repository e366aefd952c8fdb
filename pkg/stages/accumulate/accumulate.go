// Package accumulate implements the gradient accumulation stage: it decodes
// the sampled frames, computes per-frame directional gradients and maintains
// their running elementwise mean.
//
// The mean is taken over raw signed gradients and the absolute value is
// applied once at the end. A static overlay produces the same-signed gradient
// at its edges in every frame so its mean stays large, while scene content
// cancels toward zero. Reversing this ordering would reduce the detector to
// ordinary edge detection.
package accumulate

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/ports"
)

// Stage decodes sampled frames and accumulates their gradients.
type Stage struct {
	decoder    ports.FrameDecoder
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new accumulate stage. numWorkers bounds the concurrent
// decodes (0 = number of CPUs).
func NewStage(decoder ports.FrameDecoder, sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		decoder:    decoder,
		sink:       sink,
		logger:     logger.WithComponent("accumulate"),
		numWorkers: numWorkers,
	}
}

// frameGradients carries one frame's gradient pair from a worker to the
// accumulation loop. gx is nil when the decode failed and the sample is
// skipped.
type frameGradients struct {
	index   int
	gx, gy  *pipeline.Field
	preview image.Image
}

// Execute decodes each timestamp on a bounded worker pool and folds the
// per-frame gradients into a running sum. Accumulation happens only in the
// collection loop, so the reduction never races; each frame's fields are
// discarded right after contributing, keeping memory independent of the
// sample count.
func (s *Stage) Execute(ctx context.Context, input pipeline.AccumulateInput) (pipeline.AccumulateResult, error) {
	n := len(input.Timestamps)
	if n < 2 {
		return pipeline.AccumulateResult{}, fmt.Errorf("%w: %d timestamps requested", pipeline.ErrInsufficientSamples, n)
	}

	workers := s.numWorkers
	if input.Workers > 0 {
		workers = input.Workers
	}
	if workers > n {
		workers = n
	}

	s.logger.Debug("Decoding %d frames with %d workers", n, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int, n)
	results := make(chan frameGradients, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results)
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		sumX, sumY *pipeline.Field
		width      int
		height     int
		decoded    int
		preview    image.Image
	)

	for r := range results {
		if r.gx == nil {
			continue // decode failed, sample skipped
		}
		if sumX == nil {
			width, height = r.gx.Width, r.gx.Height
			sumX = pipeline.NewField(width, height)
			sumY = pipeline.NewField(width, height)
		} else if !sumX.SameSize(r.gx) {
			cancel()
			drain(results)
			return pipeline.AccumulateResult{}, fmt.Errorf("%w: %dx%d vs %dx%d",
				pipeline.ErrDimensionMismatch, r.gx.Width, r.gx.Height, width, height)
		}
		for i, v := range r.gx.Pix {
			sumX.Pix[i] += v
		}
		for i, v := range r.gy.Pix {
			sumY.Pix[i] += v
		}
		if preview == nil && r.preview != nil {
			preview = r.preview
		}
		decoded++
	}

	if err := ctx.Err(); err != nil {
		return pipeline.AccumulateResult{}, err
	}

	if decoded < 2 {
		return pipeline.AccumulateResult{}, fmt.Errorf("%w: %d of %d frames decoded", pipeline.ErrInsufficientSamples, decoded, n)
	}

	// Average, then take the absolute value. The ordering is the whole
	// detection mechanism; see the package comment.
	inv := 1.0 / float64(decoded)
	for i := range sumX.Pix {
		sumX.Pix[i] = math.Abs(sumX.Pix[i] * inv)
	}
	for i := range sumY.Pix {
		sumY.Pix[i] = math.Abs(sumY.Pix[i] * inv)
	}

	s.logger.Debug("Accumulated gradients from %d of %d frames", decoded, n)

	return pipeline.AccumulateResult{
		MeanAbsX:   sumX,
		MeanAbsY:   sumY,
		Width:      width,
		Height:     height,
		FrameCount: decoded,
		Requested:  n,
		Preview:    preview,
	}, nil
}

// worker decodes timestamps from the jobs channel and converts each frame
// to its gradient pair. The decoded image is released as soon as the
// gradients exist.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.AccumulateInput,
	jobs <-chan int,
	results chan<- frameGradients,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ts := input.Timestamps[idx]
		img, err := s.decodeOne(ctx, input, ts)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("Skipping frame at %.4f s: %s", ts, err)
			results <- frameGradients{index: idx}
			continue
		}

		if s.sink.Enabled() {
			s.sink.SaveSampledFrame(idx, img)
		}

		plane := intensityPlane(img)
		r := frameGradients{
			index: idx,
			gx:    gradientX(plane),
			gy:    gradientY(plane),
		}
		if input.KeepPreview {
			r.preview = img
		}
		results <- r
	}
}

// decodeOne runs a single decode under the configured per-call deadline.
// A timeout is treated exactly like a decode failure.
func (s *Stage) decodeOne(ctx context.Context, input pipeline.AccumulateInput, ts float64) (image.Image, error) {
	if input.DecodeTimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(input.DecodeTimeoutMs)*time.Millisecond)
		defer cancel()
	}
	return s.decoder.DecodeFrame(ctx, input.VideoPath, ts)
}

func drain(results <-chan frameGradients) {
	for range results {
	}
}
