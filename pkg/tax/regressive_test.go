package tax

import (
	"fmt"
	"testing"
)

func TestRegressiveRateBoundaries(t *testing.T) {
	tests := []struct {
		days     int
		expected float64
	}{
		{0, 0.225},
		{1, 0.225},
		{180, 0.225},
		{181, 0.20},
		{360, 0.20},
		{361, 0.175},
		{720, 0.175},
		{721, 0.15},
		{1080, 0.15},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.days), func(t *testing.T) {
			got := RegressiveRate(tt.days)
			if got != tt.expected {
				t.Errorf("RegressiveRate(%d) = %v, expected %v", tt.days, got, tt.expected)
			}
		})
	}
}

func TestHoldingDays(t *testing.T) {
	tests := []struct {
		months   int
		expected int
	}{
		{1, 30},
		{6, 180},
		{12, 360},
		{36, 1080},
	}

	for _, tt := range tests {
		if got := HoldingDays(tt.months); got != tt.expected {
			t.Errorf("HoldingDays(%d) = %d, expected %d", tt.months, got, tt.expected)
		}
	}
}
