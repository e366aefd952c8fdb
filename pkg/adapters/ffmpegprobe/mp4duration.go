package ffmpegprobe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// mp4Duration reads the duration from the MP4 movie header without ffprobe.
// Used as a fallback when the container's format section reports no duration.
func mp4Duration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return mp4DurationFromReader(f)
}

func mp4DurationFromReader(reader io.ReadSeeker) (float64, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return 0, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil || moov.Mvhd == nil {
		return 0, fmt.Errorf("no movie header found")
	}

	mvhd := moov.Mvhd
	if mvhd.Timescale == 0 {
		return 0, fmt.Errorf("movie header has zero timescale")
	}
	return float64(mvhd.Duration) / float64(mvhd.Timescale), nil
}
