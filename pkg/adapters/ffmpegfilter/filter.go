// Package ffmpegfilter implements full-video re-encode operations by shelling
// out to ffmpeg.
package ffmpegfilter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/user/delogo/pkg/adapters/ffmpegbin"
	"github.com/user/delogo/pkg/ports"
)

// Filter implements ports.VideoFilter using the ffmpeg executable.
type Filter struct {
	mu          sync.Mutex
	ffmpegPath  string
	initialized bool

	logger ports.Logger
}

// New creates a new Filter. The ffmpeg executable is located lazily on
// first use.
func New(logger ports.Logger) *Filter {
	return &Filter{logger: logger}
}

func (f *Filter) ensureInitialized() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized {
		return nil
	}
	path, err := ffmpegbin.FindFFmpeg()
	if err != nil {
		return err
	}
	f.ffmpegPath = path
	f.initialized = true
	return nil
}

func (f *Filter) run(ctx context.Context, args ...string) error {
	if err := f.ensureInitialized(); err != nil {
		return err
	}

	if f.logger != nil {
		f.logger.Debug("Running: ffmpeg %s", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// RemoveLogo re-encodes the video through the removelogo filter, which
// interpolates the masked region from its surroundings. Audio is copied
// unchanged.
func (f *Filter) RemoveLogo(ctx context.Context, videoPath, maskPath, outputPath string) error {
	return f.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-y",
		"-i", videoPath,
		"-acodec", "copy",
		"-vf", fmt.Sprintf("removelogo=%s", maskPath),
		outputPath,
	)
}

// OverlayLogo composites a logo image onto every frame of the video.
func (f *Filter) OverlayLogo(ctx context.Context, videoPath, logoPath, outputPath string, spec ports.OverlaySpec, opts ports.EncodeOptions) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-y",
		"-i", videoPath,
		"-i", logoPath,
		"-filter_complex", overlayFilterGraph(spec),
	}
	args = append(args, encodeArgs(opts)...)
	args = append(args, "-acodec", "copy", outputPath)
	return f.run(ctx, args...)
}

// ExplodeFrames writes every frame of the video as numbered PNG files.
// Constant frame rate conversion keeps the numbering aligned with the
// output frame rate used for reassembly.
func (f *Filter) ExplodeFrames(ctx context.Context, videoPath, framesDir string) error {
	return f.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-y",
		"-i", videoPath,
		"-vsync", "cfr",
		filepath.Join(framesDir, "frame_%08d.png"),
	)
}

// AssembleFrames re-encodes numbered PNG frames into a video, optionally
// mapping the audio stream of audioSource into the output.
func (f *Filter) AssembleFrames(ctx context.Context, framesDir, audioSource, outputPath, fpsRational string, withAudio bool, opts ports.EncodeOptions) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "warning",
		"-y",
		"-framerate", fpsRational,
		"-i", filepath.Join(framesDir, "frame_%08d.png"),
	}
	if withAudio {
		args = append(args,
			"-i", audioSource,
			"-map", "0:v",
			"-map", "1:a",
			"-c:a", "copy",
		)
	}
	args = append(args, encodeArgs(opts)...)
	args = append(args, outputPath)
	return f.run(ctx, args...)
}

// ============================================================================
// Argument builders
// ============================================================================

// overlayFilterGraph builds the filter_complex graph that scales the logo
// relative to its own size, optionally applies opacity, and composites it
// at the position expression.
func overlayFilterGraph(spec ports.OverlaySpec) string {
	var chain strings.Builder
	fmt.Fprintf(&chain, "[1:v]scale=iw*%g:-1", spec.Scale)
	if spec.Opacity < 1.0 {
		fmt.Fprintf(&chain, ",format=rgba,colorchannelmixer=aa=%g", spec.Opacity)
	}
	fmt.Fprintf(&chain, "[logo];[0:v][logo]overlay=%s", spec.PosExpr)
	return chain.String()
}

// encodeArgs renders EncodeOptions as ffmpeg output arguments.
func encodeArgs(opts ports.EncodeOptions) []string {
	args := []string{
		"-c:v", opts.Codec,
		"-crf", fmt.Sprintf("%d", opts.CRF),
		"-preset", opts.Preset,
	}
	if opts.Tag != "" {
		args = append(args, "-tag:v", opts.Tag)
	}
	if opts.PixFmt != "" {
		args = append(args, "-pix_fmt", opts.PixFmt)
	}
	return args
}

// Ensure Filter implements ports.VideoFilter
var _ ports.VideoFilter = (*Filter)(nil)
