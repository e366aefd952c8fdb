package pipeline

import "errors"

var (
	// ErrInvalidInput is returned when the video cannot be used at all:
	// unreadable file, or unknown/non-positive duration with no keyframe
	// information to fall back on.
	ErrInvalidInput = errors.New("delogo: invalid input")

	// ErrDecodeFailed is returned for a single-timestamp decode failure.
	// It is recoverable: the sample is skipped and processing continues.
	ErrDecodeFailed = errors.New("delogo: frame decode failed")

	// ErrDimensionMismatch is returned when a decoded frame's dimensions
	// differ from the first decoded frame's. Fatal, aborts the run.
	ErrDimensionMismatch = errors.New("delogo: sampled frames have inconsistent dimensions")

	// ErrInsufficientSamples is returned when fewer than two frames
	// decoded successfully. Fatal; a mask is never computed from an
	// undersized sample.
	ErrInsufficientSamples = errors.New("delogo: fewer than two frames decoded")
)
