package mocks

import (
	"context"

	"github.com/user/delogo/pkg/ports"
)

// MediaProber is a mock implementation of ports.MediaProber.
type MediaProber struct {
	KeyframesFunc func(ctx context.Context, path string) ([]float64, error)
	DurationFunc  func(ctx context.Context, path string) (float64, error)
	InfoFunc      func(ctx context.Context, path string) (ports.VideoInfo, error)

	KeyframesCalled bool
	DurationCalled  bool
	InfoCalled      bool
}

func (m *MediaProber) Keyframes(ctx context.Context, path string) ([]float64, error) {
	m.KeyframesCalled = true
	if m.KeyframesFunc != nil {
		return m.KeyframesFunc(ctx, path)
	}
	return nil, nil
}

func (m *MediaProber) Duration(ctx context.Context, path string) (float64, error) {
	m.DurationCalled = true
	if m.DurationFunc != nil {
		return m.DurationFunc(ctx, path)
	}
	return 0, nil
}

func (m *MediaProber) Info(ctx context.Context, path string) (ports.VideoInfo, error) {
	m.InfoCalled = true
	if m.InfoFunc != nil {
		return m.InfoFunc(ctx, path)
	}
	return ports.VideoInfo{Width: 64, Height: 36, FPS: 30, FPSRational: "30/1"}, nil
}

var _ ports.MediaProber = (*MediaProber)(nil)
