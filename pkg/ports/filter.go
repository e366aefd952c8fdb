package ports

import "context"

// EncodeOptions configures the video re-encode performed by a filter run.
type EncodeOptions struct {
	Codec  string // e.g. "libx265"
	CRF    int    // constant rate factor (lower is higher quality)
	Preset string // encoder speed/quality preset
	Tag    string // codec tag, e.g. "hvc1" for Apple-compatible HEVC
	PixFmt string // pixel format; empty means encoder default
}

// OverlaySpec describes how a logo is composited onto a video.
type OverlaySpec struct {
	// PosExpr is the overlay position in ffmpeg expression form,
	// e.g. "W-w-10:H-h-10" for bottom-right with a 10px margin.
	PosExpr string

	// Scale multiplies the logo's own width; height follows the aspect ratio.
	Scale float64

	// Opacity in [0,1]; 1 composites the logo fully opaque.
	Opacity float64
}

// VideoFilter abstracts the full-video re-encode operations that are
// delegated to an external tool. The mask computation core never touches
// this interface.
type VideoFilter interface {
	// RemoveLogo re-encodes the video with a content-aware logo removal
	// filter driven by the given single-channel mask image.
	RemoveLogo(ctx context.Context, videoPath, maskPath, outputPath string) error

	// OverlayLogo composites a logo image onto every frame of the video.
	OverlayLogo(ctx context.Context, videoPath, logoPath, outputPath string, spec OverlaySpec, opts EncodeOptions) error

	// ExplodeFrames writes every frame of the video as numbered PNG files
	// into framesDir.
	ExplodeFrames(ctx context.Context, videoPath, framesDir string) error

	// AssembleFrames re-encodes numbered PNG frames from framesDir into a
	// video at the given frame rate, optionally mapping the audio stream
	// of audioSource into the output.
	AssembleFrames(ctx context.Context, framesDir, audioSource, outputPath, fpsRational string, withAudio bool, opts EncodeOptions) error
}
