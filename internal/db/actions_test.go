package db

import "testing"

func TestClampLimit(t *testing.T) {
	tests := []struct {
		in   int
		want uint64
	}{
		{-1, 0},
		{-50, 0},
		{0, 0},
		{50, 50},
	}

	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
