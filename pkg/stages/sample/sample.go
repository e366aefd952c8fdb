// Package sample implements the frame sampling stage: it selects a bounded,
// deterministic set of timestamps to decode from the video.
package sample

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/ports"
)

// Stage selects sample timestamps from keyframe lists or a uniform grid.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new sample stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("sample"),
	}
}

// Execute selects the sample timestamps.
// With keyframes available they are deduplicated, sorted and shuffled with
// the fixed seed, then truncated to MaxCount. Without keyframes a uniform
// grid over the duration is used, excluding t=0.
func (s *Stage) Execute(ctx context.Context, input pipeline.SampleInput) (pipeline.SampleResult, error) {
	if input.MaxCount <= 0 {
		return pipeline.SampleResult{}, fmt.Errorf("%w: max sample count must be positive, got %d", pipeline.ErrInvalidInput, input.MaxCount)
	}

	if len(input.Keyframes) > 0 {
		ts := selectFromKeyframes(input.Keyframes, input.MaxCount, input.Seed)
		s.logger.Debug("Selected %d of %d keyframe timestamps", len(ts), len(input.Keyframes))
		return pipeline.SampleResult{Timestamps: ts}, nil
	}

	if input.DurationSec <= 0 {
		return pipeline.SampleResult{}, fmt.Errorf("%w: no keyframes and unknown duration", pipeline.ErrInvalidInput)
	}

	ts := uniformGrid(input.DurationSec, input.MaxCount)
	s.logger.Debug("No keyframes, using %d uniform timestamps over %.2f s", len(ts), input.DurationSec)
	return pipeline.SampleResult{Timestamps: ts}, nil
}

// selectFromKeyframes deduplicates and sorts the keyframe timestamps, then
// applies a seeded pseudo-random shuffle and truncates to maxCount.
// The explicit seed makes repeated runs on the same input select the same
// timestamps, which the statistics downstream rely on for reproducibility.
func selectFromKeyframes(keyframes []float64, maxCount int, seed int64) []float64 {
	seen := make(map[float64]struct{}, len(keyframes))
	ts := make([]float64, 0, len(keyframes))
	for _, kf := range keyframes {
		if _, ok := seen[kf]; ok {
			continue
		}
		seen[kf] = struct{}{}
		ts = append(ts, kf)
	}
	sort.Float64s(ts)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ts), func(i, j int) {
		ts[i], ts[j] = ts[j], ts[i]
	})

	if len(ts) > maxCount {
		ts = ts[:maxCount]
	}
	return ts
}

// uniformGrid spaces maxCount timestamps evenly across the duration.
// t=0 is excluded; the last point lands on the duration itself, where a
// failed seek is tolerated downstream.
func uniformGrid(durationSec float64, maxCount int) []float64 {
	interval := durationSec / float64(maxCount)
	ts := make([]float64, 0, maxCount)
	for i := 1; i <= maxCount; i++ {
		ts = append(ts, float64(i)*interval)
	}
	return ts
}
