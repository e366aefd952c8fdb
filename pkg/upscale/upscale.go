// Package upscale re-encodes a video at a higher resolution by exploding it
// into frames, upscaling each frame, and reassembling the result.
package upscale

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"sync"

	"github.com/ideamans/go-l10n"
	xdraw "golang.org/x/image/draw"

	"github.com/user/delogo/pkg/ports"
)

// Input contains parameters for one upscale run.
type Input struct {
	VideoPath  string
	OutputPath string

	// Scale is the integer upscaling factor (default: 4).
	Scale int

	// Workers bounds the number of concurrent frame upscales
	// (0 = sequential).
	Workers int

	Encode ports.EncodeOptions
}

// DefaultEncodeOptions returns the encode settings used for reassembly.
func DefaultEncodeOptions() ports.EncodeOptions {
	return ports.EncodeOptions{
		Codec:  "libx265",
		CRF:    18,
		Preset: "slow",
		Tag:    "hvc1",
		PixFmt: "yuv420p",
	}
}

// Result summarizes an upscale run.
type Result struct {
	FrameCount int
	Fallbacks  int // frames upscaled by resampling after the upscaler failed
	Width      int // output width
	Height     int // output height
}

// Upscaler runs the explode, upscale, reassemble workflow.
type Upscaler struct {
	prober   ports.MediaProber
	filter   ports.VideoFilter
	upscaler ports.ImageUpscaler
	fs       ports.FileSystem
	logger   ports.Logger
}

// New creates a new Upscaler.
func New(prober ports.MediaProber, filter ports.VideoFilter, upscaler ports.ImageUpscaler, fs ports.FileSystem, logger ports.Logger) *Upscaler {
	return &Upscaler{
		prober:   prober,
		filter:   filter,
		upscaler: upscaler,
		fs:       fs,
		logger:   logger,
	}
}

// Run upscales the whole video. Frames that the external upscaler cannot
// process are resampled instead so the output stays complete.
func (u *Upscaler) Run(ctx context.Context, input Input) (Result, error) {
	if input.Scale < 2 {
		return Result{}, fmt.Errorf("upscale factor must be at least 2, got %d", input.Scale)
	}

	info, err := u.prober.Info(ctx, input.VideoPath)
	if err != nil {
		return Result{}, fmt.Errorf("probe video: %w", err)
	}
	u.logger.Info(l10n.F("Upscaling %dx%d video by %dx to %dx%d",
		info.Width, info.Height, input.Scale, info.Width*input.Scale, info.Height*input.Scale))

	workDir, err := u.fs.TempDir("delogo-upscale-")
	if err != nil {
		return Result{}, fmt.Errorf("create work directory: %w", err)
	}
	defer u.fs.RemoveAll(workDir)

	rawDir := filepath.Join(workDir, "raw")
	upDir := filepath.Join(workDir, "up")
	if err := u.fs.MkdirAll(rawDir); err != nil {
		return Result{}, fmt.Errorf("create frames directory: %w", err)
	}
	if err := u.fs.MkdirAll(upDir); err != nil {
		return Result{}, fmt.Errorf("create output frames directory: %w", err)
	}

	u.logger.Info(l10n.T("Exploding video into frames"))
	if err := u.filter.ExplodeFrames(ctx, input.VideoPath, rawDir); err != nil {
		return Result{}, fmt.Errorf("explode frames: %w", err)
	}

	frames, err := u.fs.Glob(filepath.Join(rawDir, "frame_*.png"))
	if err != nil {
		return Result{}, fmt.Errorf("list frames: %w", err)
	}
	if len(frames) == 0 {
		return Result{}, fmt.Errorf("no frames extracted from %s", input.VideoPath)
	}
	u.logger.Info(l10n.F("Upscaling %d frames", len(frames)))

	fallbacks, err := u.upscaleFrames(ctx, frames, upDir, input.Scale, input.Workers)
	if err != nil {
		return Result{}, err
	}
	if fallbacks > 0 {
		u.logger.Warn(l10n.F("%d frames fell back to resampling", fallbacks))
	}

	u.logger.Info(l10n.F("Assembling %s", input.OutputPath))
	if err := u.filter.AssembleFrames(ctx, upDir, input.VideoPath, input.OutputPath, info.FPSRational, info.HasAudio, input.Encode); err != nil {
		return Result{}, fmt.Errorf("assemble frames: %w", err)
	}

	return Result{
		FrameCount: len(frames),
		Fallbacks:  fallbacks,
		Width:      info.Width * input.Scale,
		Height:     info.Height * input.Scale,
	}, nil
}

func (u *Upscaler) upscaleFrames(ctx context.Context, frames []string, outDir string, scale, workers int) (int, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(frames) {
		workers = len(frames)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	fallbacks := 0
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for frame := range jobs {
				outPath := filepath.Join(outDir, filepath.Base(frame))
				usedFallback, err := u.upscaleOne(ctx, frame, outPath, scale)

				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				if usedFallback {
					fallbacks++
				}
				mu.Unlock()
			}
		}()
	}

	for _, frame := range frames {
		jobs <- frame
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return fallbacks, fmt.Errorf("upscale frames: %w", firstErr)
	}
	return fallbacks, nil
}

// upscaleOne runs the external upscaler on one frame, resampling it instead
// when the upscaler is unavailable or fails.
func (u *Upscaler) upscaleOne(ctx context.Context, inPath, outPath string, scale int) (bool, error) {
	if u.upscaler.Available() {
		err := u.upscaler.UpscaleImage(ctx, inPath, outPath, scale)
		if err == nil {
			return false, nil
		}
		u.logger.Debug(l10n.F("Upscaler failed on %s: %s", filepath.Base(inPath), err))
	}

	if err := u.resample(inPath, outPath, scale); err != nil {
		return true, err
	}
	return true, nil
}

// resample enlarges a frame with Catmull-Rom interpolation.
func (u *Upscaler) resample(inPath, outPath string, scale int) error {
	data, err := u.fs.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return u.fs.WriteFile(outPath, buf.Bytes())
}
