// Package ffmpegbin locates the ffmpeg and ffprobe executables used by the
// decode, probe, and filter adapters.
package ffmpegbin

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

var (
	// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
	ErrFFmpegNotFound = errors.New("ffmpeg executable not found")
	// ErrFFprobeNotFound is returned when no ffprobe executable can be located.
	ErrFFprobeNotFound = errors.New("ffprobe executable not found")
)

var (
	mu                sync.Mutex
	customFFmpegPath  string
	customFFprobePath string
)

// SetFFmpegPath sets a custom ffmpeg path, taking priority over the
// environment and PATH search. Pass an empty string to reset.
func SetFFmpegPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customFFmpegPath = path
}

// SetFFprobePath sets a custom ffprobe path, taking priority over the
// environment and PATH search. Pass an empty string to reset.
func SetFFprobePath(path string) {
	mu.Lock()
	defer mu.Unlock()
	customFFprobePath = path
}

// IsFFmpegAvailable checks if ffmpeg is available on the system.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// FindFFmpeg searches for ffmpeg.
// Priority: 1) custom path (SetFFmpegPath), 2) FFMPEG_PATH env, 3) PATH, 4) common locations
func FindFFmpeg() (string, error) {
	mu.Lock()
	custom := customFFmpegPath
	mu.Unlock()
	return findExecutable("ffmpeg", custom, "FFMPEG_PATH", ErrFFmpegNotFound)
}

// FindFFprobe searches for ffprobe.
// Priority: 1) custom path (SetFFprobePath), 2) FFPROBE_PATH env, 3) PATH, 4) common locations
func FindFFprobe() (string, error) {
	mu.Lock()
	custom := customFFprobePath
	mu.Unlock()
	return findExecutable("ffprobe", custom, "FFPROBE_PATH", ErrFFprobeNotFound)
}

func findExecutable(name, customPath, envVar string, notFound error) (string, error) {
	// Check custom path first
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", notFound, customPath)
	}

	// Check environment variable
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	// Check PATH
	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	// Check common locations
	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
			`C:\Program Files (x86)\ffmpeg\bin\` + execName,
		}
	} else if runtime.GOOS == "darwin" {
		commonPaths = []string{
			"/opt/homebrew/bin/" + name,
			"/usr/local/bin/" + name,
			"/usr/bin/" + name,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/" + name,
			"/usr/local/bin/" + name,
			"/opt/homebrew/bin/" + name,
			"/snap/bin/" + name,
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}
