package pipeline

import (
	"image"
)

// =============================================================================
// Sample Stage Types
// =============================================================================

// SampleInput contains parameters for timestamp selection.
type SampleInput struct {
	// Keyframes are the keyframe timestamps in seconds, if the container
	// exposes them. Duplicates and arbitrary order are allowed.
	Keyframes []float64

	// DurationSec is the container duration, used for the uniform-grid
	// fallback when no keyframes are available.
	DurationSec float64

	// MaxCount caps the number of selected timestamps (default: 50).
	MaxCount int

	// Seed drives the deterministic shuffle of keyframe timestamps.
	// The same input and seed always select the same timestamps.
	Seed int64
}

// DefaultSampleInput returns a SampleInput with default values.
func DefaultSampleInput() SampleInput {
	return SampleInput{
		MaxCount: 50,
		Seed:     42,
	}
}

// SampleResult contains the selected timestamps, immutable after selection.
type SampleResult struct {
	Timestamps []float64
}

// =============================================================================
// Accumulate Stage Types
// =============================================================================

// AccumulateInput contains parameters for gradient accumulation.
type AccumulateInput struct {
	VideoPath  string
	Timestamps []float64

	// Workers bounds the number of concurrent frame decodes
	// (0 = number of CPUs).
	Workers int

	// DecodeTimeoutMs is the per-frame decode deadline. A timed-out decode
	// is treated like any other decode failure. 0 disables the deadline.
	DecodeTimeoutMs int

	// KeepPreview retains the first decoded frame in the result, for
	// debug visualization only.
	KeepPreview bool
}

// AccumulateResult contains the absolute mean gradient fields.
// The mean is taken over signed per-frame gradients first; the absolute
// value is applied once at the end.
type AccumulateResult struct {
	MeanAbsX *Field // |mean| of horizontal derivatives
	MeanAbsY *Field // |mean| of vertical derivatives

	Width  int
	Height int

	// FrameCount is the number of successfully decoded frames.
	FrameCount int
	// Requested is the number of timestamps that were attempted.
	Requested int

	// Preview is the first decoded frame, present only when
	// AccumulateInput.KeepPreview was set.
	Preview image.Image
}

// =============================================================================
// Mask Stage Types
// =============================================================================

// MaskInput contains the accumulated gradient fields and the detection
// constants. The defaults come from the reference detector and interact
// with each other; they are not independently tunable.
type MaskInput struct {
	GradX *Field
	GradY *Field

	// Threshold marks a pixel salient when either absolute mean gradient
	// exceeds it, on a 0-255 intensity scale (default: 10).
	Threshold float64

	// Sigma is the standard deviation of the Gaussian smoothing pass
	// (default: 3).
	Sigma float64

	// Cutoff binarizes the normalized smoothed field (default: 0.2).
	Cutoff float64
}

// DefaultMaskInput returns a MaskInput with the reference constants.
func DefaultMaskInput() MaskInput {
	return MaskInput{
		Threshold: 10,
		Sigma:     3,
		Cutoff:    0.2,
	}
}

// MaskResult contains the final binary mask. Every pixel is 0 or 255.
// An all-zero mask is a valid "no watermark detected" outcome.
type MaskResult struct {
	Mask *image.Gray

	// SalientPixels is the number of pixels above the gradient threshold
	// before smoothing.
	SalientPixels int

	// MaskedPixels is the number of 255 pixels in the final mask.
	MaskedPixels int
}
