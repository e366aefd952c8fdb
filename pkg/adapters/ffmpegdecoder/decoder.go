// Package ffmpegdecoder extracts single frames from a video by shelling out
// to ffmpeg.
package ffmpegdecoder

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/user/delogo/pkg/adapters/ffmpegbin"
	"github.com/user/delogo/pkg/pipeline"
	"github.com/user/delogo/pkg/ports"
)

// Decoder implements ports.FrameDecoder using the ffmpeg executable.
// A seek-and-extract process is spawned per frame, so the decoder is safe
// for concurrent use.
type Decoder struct {
	mu          sync.Mutex
	ffmpegPath  string
	initialized bool
}

// New creates a new Decoder. The ffmpeg executable is located lazily on
// first use.
func New() *Decoder {
	return &Decoder{}
}

func (d *Decoder) ensureInitialized() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}
	path, err := ffmpegbin.FindFFmpeg()
	if err != nil {
		return err
	}
	d.ffmpegPath = path
	d.initialized = true
	return nil
}

// DecodeFrame extracts the frame nearest to timestampSec as an image.
// Seeking uses -ss before -i so ffmpeg jumps to the preceding keyframe
// and decodes forward from there.
func (d *Decoder) DecodeFrame(ctx context.Context, path string, timestampSec float64) (image.Image, error) {
	if err := d.ensureInitialized(); err != nil {
		return nil, err
	}

	outputFile, err := os.CreateTemp("", "delogo_frame_*.png")
	if err != nil {
		return nil, fmt.Errorf("create output temp file: %w", err)
	}
	outputPath := outputFile.Name()
	outputFile.Close()
	defer os.Remove(outputPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-ss", formatTimestamp(timestampSec),
		"-i", path,
		"-frames:v", "1",
		outputPath,
	)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w at %s s", pipeline.ErrDecodeFailed, ctxErr, formatTimestamp(timestampSec))
		}
		return nil, fmt.Errorf("%w: ffmpeg at %s s: %s", pipeline.ErrDecodeFailed, formatTimestamp(timestampSec), stderr.String())
	}

	imgFile, err := os.Open(outputPath)
	if err != nil {
		// ffmpeg exits 0 without writing a file when the seek lands past
		// the last frame.
		return nil, fmt.Errorf("%w: no frame produced at %s s", pipeline.ErrDecodeFailed, formatTimestamp(timestampSec))
	}
	defer imgFile.Close()

	img, err := png.Decode(imgFile)
	if err != nil {
		return nil, fmt.Errorf("%w: decode png: %w", pipeline.ErrDecodeFailed, err)
	}
	return img, nil
}

// Close releases the decoder.
func (d *Decoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = false
}

// formatTimestamp renders a seek position with millisecond-level precision.
func formatTimestamp(ts float64) string {
	return strconv.FormatFloat(ts, 'f', 4, 64)
}

// Ensure Decoder implements ports.FrameDecoder
var _ ports.FrameDecoder = (*Decoder)(nil)
