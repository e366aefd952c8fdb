package mocks

import (
	"context"

	"github.com/user/delogo/pkg/ports"
)

// VideoFilter is a mock implementation of ports.VideoFilter.
type VideoFilter struct {
	RemoveLogoFunc     func(ctx context.Context, videoPath, maskPath, outputPath string) error
	OverlayLogoFunc    func(ctx context.Context, videoPath, logoPath, outputPath string, spec ports.OverlaySpec, opts ports.EncodeOptions) error
	ExplodeFramesFunc  func(ctx context.Context, videoPath, framesDir string) error
	AssembleFramesFunc func(ctx context.Context, framesDir, audioSource, outputPath, fpsRational string, withAudio bool, opts ports.EncodeOptions) error

	// Recorded calls for verification
	RemoveLogoCalls  []RemoveLogoCall
	OverlayLogoCalls []OverlayLogoCall
	ExplodeCalled    bool
	AssembleCalled   bool
	AssembleFPS      string
	AssembleAudio    bool
}

// RemoveLogoCall records a call to RemoveLogo.
type RemoveLogoCall struct {
	VideoPath  string
	MaskPath   string
	OutputPath string
}

// OverlayLogoCall records a call to OverlayLogo.
type OverlayLogoCall struct {
	VideoPath  string
	LogoPath   string
	OutputPath string
	Spec       ports.OverlaySpec
}

func (m *VideoFilter) RemoveLogo(ctx context.Context, videoPath, maskPath, outputPath string) error {
	m.RemoveLogoCalls = append(m.RemoveLogoCalls, RemoveLogoCall{VideoPath: videoPath, MaskPath: maskPath, OutputPath: outputPath})
	if m.RemoveLogoFunc != nil {
		return m.RemoveLogoFunc(ctx, videoPath, maskPath, outputPath)
	}
	return nil
}

func (m *VideoFilter) OverlayLogo(ctx context.Context, videoPath, logoPath, outputPath string, spec ports.OverlaySpec, opts ports.EncodeOptions) error {
	m.OverlayLogoCalls = append(m.OverlayLogoCalls, OverlayLogoCall{VideoPath: videoPath, LogoPath: logoPath, OutputPath: outputPath, Spec: spec})
	if m.OverlayLogoFunc != nil {
		return m.OverlayLogoFunc(ctx, videoPath, logoPath, outputPath, spec, opts)
	}
	return nil
}

func (m *VideoFilter) ExplodeFrames(ctx context.Context, videoPath, framesDir string) error {
	m.ExplodeCalled = true
	if m.ExplodeFramesFunc != nil {
		return m.ExplodeFramesFunc(ctx, videoPath, framesDir)
	}
	return nil
}

func (m *VideoFilter) AssembleFrames(ctx context.Context, framesDir, audioSource, outputPath, fpsRational string, withAudio bool, opts ports.EncodeOptions) error {
	m.AssembleCalled = true
	m.AssembleFPS = fpsRational
	m.AssembleAudio = withAudio
	if m.AssembleFramesFunc != nil {
		return m.AssembleFramesFunc(ctx, framesDir, audioSource, outputPath, fpsRational, withAudio, opts)
	}
	return nil
}

var _ ports.VideoFilter = (*VideoFilter)(nil)
