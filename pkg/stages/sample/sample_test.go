package sample

import (
	"context"
	"errors"
	"testing"

	"github.com/user/delogo/pkg/adapters/logger"
	"github.com/user/delogo/pkg/pipeline"
)

func newStage() *Stage {
	return NewStage(logger.NewNoop())
}

func TestExecute_KeyframesDeduplicatedAndCapped(t *testing.T) {
	input := pipeline.SampleInput{
		Keyframes: []float64{4.0, 2.0, 2.0, 8.0, 6.0, 4.0, 10.0},
		MaxCount:  3,
		Seed:      42,
	}

	result, err := newStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.Timestamps) != 3 {
		t.Fatalf("expected 3 timestamps, got %d", len(result.Timestamps))
	}

	seen := make(map[float64]bool)
	for _, ts := range result.Timestamps {
		if seen[ts] {
			t.Errorf("duplicate timestamp %v in selection", ts)
		}
		seen[ts] = true
	}
}

func TestExecute_KeyframesDeterministic(t *testing.T) {
	input := pipeline.SampleInput{
		Keyframes: []float64{1.04, 3.2, 5.88, 7.0, 9.96, 12.48, 15.0, 18.32},
		MaxCount:  5,
		Seed:      42,
	}

	first, err := newStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	second, err := newStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}

	if len(first.Timestamps) != len(second.Timestamps) {
		t.Fatalf("selection sizes differ: %d vs %d", len(first.Timestamps), len(second.Timestamps))
	}
	for i := range first.Timestamps {
		if first.Timestamps[i] != second.Timestamps[i] {
			t.Errorf("timestamps[%d]: %v vs %v", i, first.Timestamps[i], second.Timestamps[i])
		}
	}
}

func TestExecute_SeedChangesSelection(t *testing.T) {
	keyframes := make([]float64, 40)
	for i := range keyframes {
		keyframes[i] = float64(i) * 1.5
	}

	a, err := newStage().Execute(context.Background(), pipeline.SampleInput{Keyframes: keyframes, MaxCount: 10, Seed: 42})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	b, err := newStage().Execute(context.Background(), pipeline.SampleInput{Keyframes: keyframes, MaxCount: 10, Seed: 43})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	same := true
	for i := range a.Timestamps {
		if a.Timestamps[i] != b.Timestamps[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical selections")
	}
}

func TestExecute_UniformGridFallback(t *testing.T) {
	input := pipeline.SampleInput{
		DurationSec: 10.0,
		MaxCount:    5,
		Seed:        42,
	}

	result, err := newStage().Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	expected := []float64{2, 4, 6, 8, 10}
	if len(result.Timestamps) != len(expected) {
		t.Fatalf("expected %d timestamps, got %d", len(expected), len(result.Timestamps))
	}
	for i, want := range expected {
		if result.Timestamps[i] != want {
			t.Errorf("timestamps[%d]: expected %v, got %v", i, want, result.Timestamps[i])
		}
	}
}

func TestExecute_UniformGridExcludesZero(t *testing.T) {
	result, err := newStage().Execute(context.Background(), pipeline.SampleInput{
		DurationSec: 60.0,
		MaxCount:    50,
		Seed:        42,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, ts := range result.Timestamps {
		if ts <= 0 {
			t.Fatalf("grid contains non-positive timestamp %v", ts)
		}
	}
}

func TestExecute_NoKeyframesNoDuration(t *testing.T) {
	_, err := newStage().Execute(context.Background(), pipeline.SampleInput{
		MaxCount: 50,
		Seed:     42,
	})
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestExecute_InvalidMaxCount(t *testing.T) {
	_, err := newStage().Execute(context.Background(), pipeline.SampleInput{
		Keyframes: []float64{1, 2, 3},
		MaxCount:  0,
	})
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
