package ports

import (
	"context"
	"image"
)

// FrameDecoder abstracts single-frame video decoding.
// Implementations decode the frame nearest to a timestamp without taking
// responsibility for the rest of the container.
type FrameDecoder interface {
	// DecodeFrame decodes one frame at the given timestamp (in seconds).
	// A failed seek or a corrupt frame is reported as an error; callers
	// decide whether that is fatal.
	DecodeFrame(ctx context.Context, path string, timestampSec float64) (image.Image, error)

	// Close releases decoder resources.
	Close()
}
