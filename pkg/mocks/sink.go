package mocks

import (
	"image"
	"sync"

	"github.com/user/delogo/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records what
// was saved.
type DebugSink struct {
	EnabledValue bool

	mu              sync.Mutex
	TimestampsJSON  []byte
	SampledFrames   map[int]image.Image
	Heatmaps        map[string]image.Image
	SalienceImage   image.Image
	MaskImage       image.Image
	OverlaySaved    bool
}

// NewDebugSink creates an enabled mock sink.
func NewDebugSink() *DebugSink {
	return &DebugSink{
		EnabledValue:  true,
		SampledFrames: make(map[int]image.Image),
		Heatmaps:      make(map[string]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveTimestampsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TimestampsJSON = data
	return nil
}

func (m *DebugSink) SaveSampledFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SampledFrames[index] = img
	return nil
}

func (m *DebugSink) SaveGradientHeatmap(axis string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Heatmaps[axis] = img
	return nil
}

func (m *DebugSink) SaveSalience(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SalienceImage = img
	return nil
}

func (m *DebugSink) SaveMask(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MaskImage = img
	return nil
}

func (m *DebugSink) SaveMaskOverlay(frame image.Image, mask *image.Gray) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverlaySaved = true
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
