// Package mocks provides hand-rolled test doubles for the port interfaces.
package mocks

import (
	"context"
	"image"
	"sync"

	"github.com/user/delogo/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
type FrameDecoder struct {
	DecodeFrameFunc func(ctx context.Context, path string, timestampSec float64) (image.Image, error)

	mu sync.Mutex
	// Recorded calls for verification
	DecodeFrameCalls []DecodeFrameCall
	CloseCalled      bool
}

// DecodeFrameCall records a call to DecodeFrame.
type DecodeFrameCall struct {
	Path         string
	TimestampSec float64
}

func (m *FrameDecoder) DecodeFrame(ctx context.Context, path string, timestampSec float64) (image.Image, error) {
	m.mu.Lock()
	m.DecodeFrameCalls = append(m.DecodeFrameCalls, DecodeFrameCall{Path: path, TimestampSec: timestampSec})
	m.mu.Unlock()

	if m.DecodeFrameFunc != nil {
		return m.DecodeFrameFunc(ctx, path, timestampSec)
	}
	return image.NewRGBA(image.Rect(0, 0, 64, 36)), nil
}

func (m *FrameDecoder) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns a copy of the recorded DecodeFrame calls.
func (m *FrameDecoder) Calls() []DecodeFrameCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]DecodeFrameCall, len(m.DecodeFrameCalls))
	copy(out, m.DecodeFrameCalls)
	return out
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)
