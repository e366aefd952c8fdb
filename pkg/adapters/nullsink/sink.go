// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/delogo/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveTimestampsJSON does nothing.
func (s *Sink) SaveTimestampsJSON(data []byte) error {
	return nil
}

// SaveSampledFrame does nothing.
func (s *Sink) SaveSampledFrame(index int, img image.Image) error {
	return nil
}

// SaveGradientHeatmap does nothing.
func (s *Sink) SaveGradientHeatmap(axis string, img image.Image) error {
	return nil
}

// SaveSalience does nothing.
func (s *Sink) SaveSalience(img image.Image) error {
	return nil
}

// SaveMask does nothing.
func (s *Sink) SaveMask(img image.Image) error {
	return nil
}

// SaveMaskOverlay does nothing.
func (s *Sink) SaveMaskOverlay(frame image.Image, mask *image.Gray) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
