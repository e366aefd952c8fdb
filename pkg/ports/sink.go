package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate detection results.
// It allows inspecting every step between the sampled frames and the
// final mask.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveTimestampsJSON saves the selected sample timestamps as JSON.
	SaveTimestampsJSON(data []byte) error

	// SaveSampledFrame saves one decoded sample frame.
	SaveSampledFrame(index int, img image.Image) error

	// SaveGradientHeatmap saves a rendered mean-gradient field.
	// The axis is "x" or "y".
	SaveGradientHeatmap(axis string, img image.Image) error

	// SaveSalience saves the thresholded salience field.
	SaveSalience(img image.Image) error

	// SaveMask saves the final binary mask.
	SaveMask(img image.Image) error

	// SaveMaskOverlay saves a visualization of the mask drawn over a
	// sample frame.
	SaveMaskOverlay(frame image.Image, mask *image.Gray) error
}
