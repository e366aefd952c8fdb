package mocks

import (
	"context"
	"sync"

	"github.com/user/delogo/pkg/ports"
)

// ImageUpscaler is a mock implementation of ports.ImageUpscaler.
type ImageUpscaler struct {
	UpscaleImageFunc func(ctx context.Context, inputPath, outputPath string, scale int) error
	AvailableFunc    func() bool

	mu sync.Mutex
	// Recorded calls for verification
	UpscaleImageCalls []UpscaleImageCall
}

// UpscaleImageCall records a call to UpscaleImage.
type UpscaleImageCall struct {
	InputPath  string
	OutputPath string
	Scale      int
}

func (m *ImageUpscaler) UpscaleImage(ctx context.Context, inputPath, outputPath string, scale int) error {
	m.mu.Lock()
	m.UpscaleImageCalls = append(m.UpscaleImageCalls, UpscaleImageCall{InputPath: inputPath, OutputPath: outputPath, Scale: scale})
	m.mu.Unlock()

	if m.UpscaleImageFunc != nil {
		return m.UpscaleImageFunc(ctx, inputPath, outputPath, scale)
	}
	return nil
}

func (m *ImageUpscaler) Available() bool {
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return true
}

// Calls returns a copy of the recorded UpscaleImage calls.
func (m *ImageUpscaler) Calls() []UpscaleImageCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]UpscaleImageCall, len(m.UpscaleImageCalls))
	copy(out, m.UpscaleImageCalls)
	return out
}

var _ ports.ImageUpscaler = (*ImageUpscaler)(nil)
