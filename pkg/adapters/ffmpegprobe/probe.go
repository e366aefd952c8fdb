// Package ffmpegprobe implements media inspection by shelling out to ffprobe.
package ffmpegprobe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/user/delogo/pkg/adapters/ffmpegbin"
	"github.com/user/delogo/pkg/ports"
)

// Prober implements ports.MediaProber using the ffprobe executable.
type Prober struct {
	mu          sync.Mutex
	ffprobePath string
	initialized bool
}

// New creates a new Prober. The ffprobe executable is located lazily on
// first use.
func New() *Prober {
	return &Prober{}
}

func (p *Prober) ensureInitialized() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	path, err := ffmpegbin.FindFFprobe()
	if err != nil {
		return err
	}
	p.ffprobePath = path
	p.initialized = true
	return nil
}

func (p *Prober) run(ctx context.Context, args ...string) (string, error) {
	if err := p.ensureInitialized(); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, p.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffprobe failed: %w\nstderr: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// Keyframes returns the keyframe timestamps of the video in seconds.
// Timestamps are returned as reported, unordered and possibly duplicated.
func (p *Prober) Keyframes(ctx context.Context, path string) ([]float64, error) {
	out, err := p.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-select_streams", "v",
		"-skip_frame", "nokey",
		"-show_frames",
		"-show_entries", "frame=pkt_dts_time",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return nil, err
	}
	return parseKeyframes(out), nil
}

// Duration returns the container duration in seconds. When ffprobe does not
// report a duration, an MP4 header read is attempted as a fallback.
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	out, err := p.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return 0, err
	}

	dur, ok := parseDuration(out)
	if ok {
		return dur, nil
	}

	// Some fragmented MP4s report "N/A"; read mvhd from the file directly.
	if dur, err := mp4Duration(path); err == nil && dur > 0 {
		return dur, nil
	}
	return 0, fmt.Errorf("no duration reported for %s", path)
}

// Info returns stream-level details of the first video stream.
func (p *Prober) Info(ctx context.Context, path string) (ports.VideoInfo, error) {
	out, err := p.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-of", "csv=p=0:s=,",
		path,
	)
	if err != nil {
		return ports.VideoInfo{}, err
	}

	info, err := parseInfo(out)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	hasAudio, err := p.hasAudio(ctx, path)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info.HasAudio = hasAudio

	if info.DurationSec <= 0 {
		if dur, err := mp4Duration(path); err == nil {
			info.DurationSec = dur
		}
	}
	return info, nil
}

func (p *Prober) hasAudio(ctx context.Context, path string) (bool, error) {
	out, err := p.run(ctx,
		"-hide_banner",
		"-loglevel", "warning",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ============================================================================
// Output parsing
// ============================================================================

// parseKeyframes extracts timestamps from one-value-per-line csv output.
// Lines that are empty or "N/A" are skipped.
func parseKeyframes(out string) []float64 {
	var timestamps []float64
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, ","))
		if line == "" || line == "N/A" {
			continue
		}
		ts, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps
}

func parseDuration(out string) (float64, bool) {
	s := strings.TrimSpace(out)
	if s == "" || s == "N/A" {
		return 0, false
	}
	dur, err := strconv.ParseFloat(s, 64)
	if err != nil || dur <= 0 {
		return 0, false
	}
	return dur, true
}

// parseInfo parses the combined stream+format csv output. The stream line
// carries width,height,r_frame_rate,nb_frames and the format line carries
// the duration.
func parseInfo(out string) (ports.VideoInfo, error) {
	var info ports.VideoInfo
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return info, fmt.Errorf("empty output")
	}

	fields := strings.Split(strings.TrimSpace(lines[0]), ",")
	if len(fields) < 3 {
		return info, fmt.Errorf("unexpected stream line %q", lines[0])
	}

	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return info, fmt.Errorf("width %q: %w", fields[0], err)
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return info, fmt.Errorf("height %q: %w", fields[1], err)
	}
	info.Width = w
	info.Height = h

	info.FPSRational = fields[2]
	fps, err := parseRational(fields[2])
	if err != nil {
		return info, fmt.Errorf("frame rate %q: %w", fields[2], err)
	}
	info.FPS = fps

	if len(fields) >= 4 && fields[3] != "" && fields[3] != "N/A" {
		if n, err := strconv.Atoi(fields[3]); err == nil {
			info.FrameCount = n
		}
	}

	if len(lines) >= 2 {
		if dur, ok := parseDuration(lines[1]); ok {
			info.DurationSec = dur
		}
	}
	return info, nil
}

// parseRational evaluates an ffprobe frame rate like "30000/1001" or "25".
func parseRational(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Ensure Prober implements ports.MediaProber
var _ ports.MediaProber = (*Prober)(nil)
