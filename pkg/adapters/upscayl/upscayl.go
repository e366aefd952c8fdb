// Package upscayl implements AI image upscaling by shelling out to the
// upscayl command line tool.
package upscayl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/user/delogo/pkg/ports"
)

// ErrUpscaylNotFound is returned when the upscayl executable cannot be located.
var ErrUpscaylNotFound = errors.New("upscayl executable not found")

const defaultModelName = "upscayl-standard-4x"

// Upscaler implements ports.ImageUpscaler using the upscayl CLI.
type Upscaler struct {
	mu          sync.Mutex
	binPath     string
	initialized bool

	// ModelName selects the upscaling model. Empty uses the standard model.
	ModelName string
	// ModelDir overrides the model resource directory. Empty uses the
	// upscayl default under the user's home directory.
	ModelDir string
}

// New creates a new Upscaler. The executable is located lazily on first use.
func New() *Upscaler {
	return &Upscaler{}
}

func (u *Upscaler) ensureInitialized() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.initialized {
		return nil
	}
	path, err := findUpscayl()
	if err != nil {
		return err
	}
	u.binPath = path
	u.initialized = true
	return nil
}

// Available reports whether the upscayl executable can be found.
func (u *Upscaler) Available() bool {
	return u.ensureInitialized() == nil
}

// UpscaleImage upscales inputPath by the given factor and writes the result
// to outputPath.
func (u *Upscaler) UpscaleImage(ctx context.Context, inputPath, outputPath string, scale int) error {
	if err := u.ensureInitialized(); err != nil {
		return err
	}
	if scale < 2 {
		return fmt.Errorf("upscale factor must be at least 2, got %d", scale)
	}

	model := u.ModelName
	if model == "" {
		model = defaultModelName
	}
	modelDir := u.ModelDir
	if modelDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		modelDir = filepath.Join(home, ".upscayl-cli", "resources", "models")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, u.binPath, "run",
		"-i", inputPath,
		"-o", outputPath,
		"-m", modelDir,
		"-n", model,
		"-s", strconv.Itoa(scale),
		"-f", "png",
	)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("upscayl failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

func findUpscayl() (string, error) {
	if envPath := os.Getenv("UPSCAYL_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: UPSCAYL_PATH %s not found", ErrUpscaylNotFound, envPath)
	}

	path, err := exec.LookPath("upscayl")
	if err == nil {
		return path, nil
	}
	return "", ErrUpscaylNotFound
}

// Ensure Upscaler implements ports.ImageUpscaler
var _ ports.ImageUpscaler = (*Upscaler)(nil)
