package ports

import "context"

// VideoInfo describes the first video stream of a container.
type VideoInfo struct {
	Width       int
	Height      int
	FPS         float64
	FPSRational string // frame rate as reported by the prober, e.g. "30000/1001"
	DurationSec float64
	FrameCount  int // 0 when the container does not report it
	HasAudio    bool
}

// MediaProber abstracts container and stream inspection.
type MediaProber interface {
	// Keyframes returns the keyframe timestamps of the video in seconds,
	// unordered and possibly containing duplicates. An empty slice with a
	// nil error means the container exposes no keyframe information.
	Keyframes(ctx context.Context, path string) ([]float64, error)

	// Duration returns the container duration in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// Info returns stream-level details needed for re-encoding.
	Info(ctx context.Context, path string) (VideoInfo, error)
}
