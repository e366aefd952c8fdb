// Package main provides the CLI entry point for delogo.
package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/delogo/pkg/adapters/ffmpegbin"
	"github.com/user/delogo/pkg/adapters/ffmpegdecoder"
	"github.com/user/delogo/pkg/adapters/ffmpegfilter"
	"github.com/user/delogo/pkg/adapters/ffmpegprobe"
	"github.com/user/delogo/pkg/adapters/filesink"
	"github.com/user/delogo/pkg/adapters/logger"
	"github.com/user/delogo/pkg/adapters/nullsink"
	"github.com/user/delogo/pkg/adapters/osfilesystem"
	"github.com/user/delogo/pkg/adapters/pngwriter"
	"github.com/user/delogo/pkg/adapters/upscayl"
	"github.com/user/delogo/pkg/config"
	"github.com/user/delogo/pkg/orchestrator"
	"github.com/user/delogo/pkg/ports"
	"github.com/user/delogo/pkg/stages/accumulate"
	"github.com/user/delogo/pkg/stages/maskbuild"
	"github.com/user/delogo/pkg/stages/overlay"
	"github.com/user/delogo/pkg/stages/sample"
	"github.com/user/delogo/pkg/upscale"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Mask    MaskCmd    `cmd:"" help:"Detect a static watermark and write its binary mask."`
	Remove  RemoveCmd  `cmd:"" help:"Detect and remove a static watermark from a video."`
	Addlogo AddlogoCmd `cmd:"" help:"Composite a logo image onto a video."`
	Upscale UpscaleCmd `cmd:"" help:"Upscale a video with an AI model."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// commonFlags holds flags shared by the analysis commands.
type commonFlags struct {
	Config string `short:"C" help:"Path to a YAML configuration file."`

	SampleCount *int     `help:"Number of frames to sample (default: 50)."`
	Seed        *int64   `help:"Seed for deterministic frame selection (default: 42)."`
	Threshold   *float64 `help:"Gradient threshold on the 0-255 scale (default: 10)."`
	Sigma       *float64 `help:"Gaussian smoothing sigma (default: 3)."`
	Cutoff      *float64 `help:"Binarization cutoff on the normalized field (default: 0.2)."`
	Workers     *int     `help:"Concurrent frame decodes (default: number of CPUs)."`

	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then PATH)."`

	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	LogJSON  bool   `help:"Emit structured JSON logs."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// MaskCmd defines the mask subcommand.
type MaskCmd struct {
	commonFlags

	Video  string `arg:"" help:"Input video file path."`
	Output string `short:"o" help:"Output mask PNG path (default: <video>_mask.png)."`
}

// RemoveCmd defines the remove subcommand.
type RemoveCmd struct {
	commonFlags

	Video  string `arg:"" help:"Input video file path."`
	Output string `short:"o" help:"Output video path (default: <video>_cleaned.mp4)."`
	Mask   string `help:"Mask PNG path (default: <video>_mask.png)."`
}

// AddlogoCmd defines the addlogo subcommand.
type AddlogoCmd struct {
	Video  string `arg:"" help:"Input video file path."`
	Logo   string `arg:"" help:"Logo image file path."`
	Output string `short:"o" help:"Output video path (default: <video>_logo.mp4)."`

	Position string  `short:"p" default:"bottom-right" enum:"top-left,top-right,bottom-left,bottom-right,center" help:"Logo position."`
	Scale    float64 `default:"0.15" help:"Logo size relative to its own width."`
	Opacity  float64 `default:"1.0" help:"Logo opacity (0-1)."`
	Margin   int     `default:"10" help:"Distance from the frame edges in pixels."`

	Preview string `help:"Render a single-frame preview PNG instead of re-encoding."`

	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then PATH)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// UpscaleCmd defines the upscale subcommand.
type UpscaleCmd struct {
	Video  string `arg:"" help:"Input video file path."`
	Output string `short:"o" help:"Output video path (default: <video>_upscaled.mp4)."`

	Scale   int    `short:"s" default:"4" help:"Upscaling factor."`
	Model   string `short:"m" help:"Upscaling model name (default: upscayl-standard-4x)."`
	Workers *int   `help:"Concurrent frame upscales (default: number of CPUs)."`

	FFmpegPath  string `help:"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)."`
	FFprobePath string `help:"Path to ffprobe executable (falls back to FFPROBE_PATH env, then PATH)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("delogo"),
		kong.Description("Detect, remove, and add static watermarks in videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

func newLogger(quiet, logJSON bool, level string) (ports.Logger, error) {
	if quiet {
		return logger.NewNoop(), nil
	}
	if logJSON {
		return logger.NewZap(ports.ParseLogLevel(level))
	}
	return logger.NewConsole(ports.ParseLogLevel(level)), nil
}

func (f *commonFlags) applyPaths() {
	if f.FFmpegPath != "" {
		ffmpegbin.SetFFmpegPath(f.FFmpegPath)
	}
	if f.FFprobePath != "" {
		ffmpegbin.SetFFprobePath(f.FFprobePath)
	}
}

// buildConfig merges the config file, defaults, and flag overrides.
func (f *commonFlags) buildConfig() (orchestrator.Config, error) {
	cfg := config.Defaults()
	if f.Config != "" {
		loaded, err := config.LoadFromFile(f.Config)
		if err != nil {
			return orchestrator.Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	oc := cfg.ToOrchestratorConfig()
	if f.SampleCount != nil {
		oc.SampleCount = *f.SampleCount
	}
	if f.Seed != nil {
		oc.Seed = *f.Seed
	}
	if f.Threshold != nil {
		oc.Threshold = *f.Threshold
	}
	if f.Sigma != nil {
		oc.Sigma = *f.Sigma
	}
	if f.Cutoff != nil {
		oc.Cutoff = *f.Cutoff
	}
	if f.Workers != nil {
		oc.Workers = *f.Workers
	}
	return oc, nil
}

// buildOrchestrator wires the detection pipeline with ffmpeg-backed adapters.
func (f *commonFlags) buildOrchestrator(log ports.Logger) (*orchestrator.Orchestrator, func(), error) {
	f.applyPaths()

	fs := osfilesystem.New()
	decoder := ffmpegdecoder.New()
	prober := ffmpegprobe.New()
	filter := ffmpegfilter.New(log.WithComponent("ffmpeg"))
	writer := pngwriter.New(fs)

	var sink ports.DebugSink
	if f.Debug {
		if err := fs.MkdirAll(f.DebugDir); err != nil {
			return nil, nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(f.DebugDir, fs)
	} else {
		sink = nullsink.New()
	}

	workers := runtime.NumCPU()
	if f.Workers != nil && *f.Workers > 0 {
		workers = *f.Workers
	}

	orch := orchestrator.New(
		sample.NewStage(log),
		accumulate.NewStage(decoder, sink, log, workers),
		maskbuild.NewStage(sink, log),
		prober,
		filter,
		writer,
		sink,
		log,
	)
	return orch, decoder.Close, nil
}

// Run executes the mask command.
func (cmd *MaskCmd) Run() error {
	log, err := newLogger(cmd.Quiet, cmd.LogJSON, cmd.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	orch, closeDecoder, err := cmd.buildOrchestrator(log)
	if err != nil {
		return err
	}
	defer closeDecoder()

	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	cfg.VideoPath = cmd.Video
	cfg.MaskPath = cmd.Output
	if cfg.MaskPath == "" {
		cfg.MaskPath = derivedPath(cmd.Video, "_mask.png")
	}

	result, err := orch.ComputeMask(ctx, cfg)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Mask saved to %s", cfg.MaskPath))
	printSummary(log, result)
	return nil
}

// Run executes the remove command.
func (cmd *RemoveCmd) Run() error {
	log, err := newLogger(cmd.Quiet, cmd.LogJSON, cmd.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	orch, closeDecoder, err := cmd.buildOrchestrator(log)
	if err != nil {
		return err
	}
	defer closeDecoder()

	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	cfg.VideoPath = cmd.Video
	cfg.MaskPath = cmd.Mask
	if cfg.MaskPath == "" {
		cfg.MaskPath = derivedPath(cmd.Video, "_mask.png")
	}

	output := cmd.Output
	if output == "" {
		output = derivedPath(cmd.Video, "_cleaned.mp4")
	}

	result, err := orch.Remove(ctx, cfg, output)
	if err != nil {
		return err
	}

	if result.Detected() {
		log.Info(l10n.F("Output saved to %s", output))
	}
	printSummary(log, result)
	return nil
}

// Run executes the addlogo command.
func (cmd *AddlogoCmd) Run() error {
	log, err := newLogger(cmd.Quiet, false, cmd.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	if cmd.FFmpegPath != "" {
		ffmpegbin.SetFFmpegPath(cmd.FFmpegPath)
	}
	if cmd.FFprobePath != "" {
		ffmpegbin.SetFFprobePath(cmd.FFprobePath)
	}

	spec := overlay.Spec{
		Position: cmd.Position,
		Scale:    cmd.Scale,
		Opacity:  cmd.Opacity,
		Margin:   cmd.Margin,
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	if cmd.Preview != "" {
		return cmd.renderPreview(ctx, spec, log)
	}

	posExpr, err := spec.FFmpegExpr()
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = derivedPath(cmd.Video, "_logo.mp4")
	}

	filter := ffmpegfilter.New(log.WithComponent("ffmpeg"))
	log.Info(l10n.F("Compositing %s onto %s", cmd.Logo, cmd.Video))
	err = filter.OverlayLogo(ctx, cmd.Video, cmd.Logo, output, ports.OverlaySpec{
		PosExpr: posExpr,
		Scale:   cmd.Scale,
		Opacity: cmd.Opacity,
	}, encodeOptions())
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", output))
	return nil
}

// renderPreview composites the logo onto the first video frame in-process.
func (cmd *AddlogoCmd) renderPreview(ctx context.Context, spec overlay.Spec, log ports.Logger) error {
	decoder := ffmpegdecoder.New()
	defer decoder.Close()

	frame, err := decoder.DecodeFrame(ctx, cmd.Video, 0)
	if err != nil {
		return fmt.Errorf("decode preview frame: %w", err)
	}

	fs := osfilesystem.New()
	logoData, err := fs.ReadFile(cmd.Logo)
	if err != nil {
		return fmt.Errorf("read logo: %w", err)
	}
	logo, err := png.Decode(bytes.NewReader(logoData))
	if err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}

	preview, err := overlay.RenderPreview(frame, logo, spec)
	if err != nil {
		return err
	}

	if err := pngwriter.New(fs).WritePNG(cmd.Preview, preview); err != nil {
		return err
	}
	log.Info(l10n.F("Preview saved to %s", cmd.Preview))
	return nil
}

// Run executes the upscale command.
func (cmd *UpscaleCmd) Run() error {
	log, err := newLogger(cmd.Quiet, false, cmd.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	if cmd.FFmpegPath != "" {
		ffmpegbin.SetFFmpegPath(cmd.FFmpegPath)
	}
	if cmd.FFprobePath != "" {
		ffmpegbin.SetFFprobePath(cmd.FFprobePath)
	}

	output := cmd.Output
	if output == "" {
		output = derivedPath(cmd.Video, "_upscaled.mp4")
	}

	up := upscayl.New()
	up.ModelName = cmd.Model
	if !up.Available() {
		log.Warn(l10n.T("upscayl not found, falling back to resampling"))
	}

	workers := runtime.NumCPU()
	if cmd.Workers != nil && *cmd.Workers > 0 {
		workers = *cmd.Workers
	}

	u := upscale.New(
		ffmpegprobe.New(),
		ffmpegfilter.New(log.WithComponent("ffmpeg")),
		up,
		osfilesystem.New(),
		log,
	)

	result, err := u.Run(ctx, upscale.Input{
		VideoPath:  cmd.Video,
		OutputPath: output,
		Scale:      cmd.Scale,
		Workers:    workers,
		Encode:     upscale.DefaultEncodeOptions(),
	})
	if err != nil {
		return err
	}

	log.Info(l10n.F("Upscaled %d frames to %dx%d", result.FrameCount, result.Width, result.Height))
	log.Info(l10n.F("Output saved to %s", output))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("delogo (Go) version %s", version))
	return nil
}

func printSummary(log ports.Logger, result orchestrator.RunResult) {
	log.Info(l10n.F("Analyzed %d of %d sampled frames", result.FrameCount, result.Requested))
	if result.Detected() {
		log.Info(l10n.F("Detected watermark covering %.2f%% of the frame", result.Coverage))
	}
}

func encodeOptions() ports.EncodeOptions {
	return ports.EncodeOptions{
		Codec:  "libx265",
		CRF:    18,
		Preset: "slow",
		Tag:    "hvc1",
	}
}

// derivedPath replaces the extension of path with the given suffix,
// e.g. video.mp4 + "_mask.png" = video_mask.png.
func derivedPath(path, suffix string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + suffix
}
