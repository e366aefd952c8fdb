package ports

import "image"

// ImageWriter persists images for downstream tools.
type ImageWriter interface {
	// WritePNG writes the image as a PNG file, creating parent directories
	// as needed. Grayscale images are written single-channel.
	WritePNG(path string, img image.Image) error
}
