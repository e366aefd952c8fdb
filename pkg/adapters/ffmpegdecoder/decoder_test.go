package ffmpegdecoder

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0000"},
		{1.5, "1.5000"},
		{2.002, "2.0020"},
		{123.456789, "123.4568"},
	}
	for _, tt := range tests {
		if got := formatTimestamp(tt.in); got != tt.want {
			t.Errorf("formatTimestamp(%f): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
