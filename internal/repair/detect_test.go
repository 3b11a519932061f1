package repair_test

import (
	"math"
	"testing"

	"gltfix/internal/repair"
)

func TestCorrupted(t *testing.T) {
	const threshold = repair.DefaultThreshold

	cases := []struct {
		name string
		min  float64
		max  float64
		want bool
	}{
		{"dbl max sentinels", math.MaxFloat64, -math.MaxFloat64, true},
		{"min over threshold", 1e200, 1, true},
		{"max over threshold", 0, -1e200, true},
		{"negative min over threshold", -1e101, 0, true},
		{"nan min", math.NaN(), 1, true},
		{"nan max", 0, math.NaN(), true},
		{"positive infinity", 0, math.Inf(1), true},
		{"negative infinity", math.Inf(-1), 0, true},
		{"inverted bounds", 2.5, 1.5, true},
		{"valid range", 0, 1.5, false},
		{"zero pair", 0, 0, false},
		{"negative valid range", -3, -1, false},
		{"just under threshold", -1e100, 1e100, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := repair.Corrupted(tc.min, tc.max, threshold); got != tc.want {
				t.Fatalf("Corrupted(%v, %v) = %v, want %v", tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestCorruptedHonorsThreshold(t *testing.T) {
	if !repair.Corrupted(0, 2000, 1000) {
		t.Fatal("expected bound above a lowered threshold to read as corrupt")
	}
	if repair.Corrupted(0, 2000, repair.DefaultThreshold) {
		t.Fatal("expected the same bound to pass at the default threshold")
	}
}

func TestSentinelValue(t *testing.T) {
	const threshold = repair.DefaultThreshold
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN(), 1.7e308, -1.7e308} {
		if !repair.SentinelValue(v, threshold) {
			t.Fatalf("expected %v to be a sentinel", v)
		}
	}
	for _, v := range []float64{0, 1.5, -42, 1e99} {
		if repair.SentinelValue(v, threshold) {
			t.Fatalf("expected %v not to be a sentinel", v)
		}
	}
}
