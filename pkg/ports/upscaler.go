package ports

import "context"

// ImageUpscaler abstracts per-image super-resolution.
type ImageUpscaler interface {
	// UpscaleImage upscales a single image file by the given integer factor.
	UpscaleImage(ctx context.Context, inputPath, outputPath string, scale int) error

	// Available reports whether the upscaler can run on this system.
	Available() bool
}
