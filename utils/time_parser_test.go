package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"3600", time.Hour, false},
		{" 86400 ", 24 * time.Hour, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"1h", 0, true},
		{"", 0, true},
		{"99999999999999999999", 0, true},
		{"9223372036854775807", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreshold(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidThreshold) {
					t.Errorf("ParseThreshold(%q) error = %v, want ErrInvalidThreshold", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseThreshold(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseThreshold(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
