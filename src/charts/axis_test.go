package charts

import (
	"math"
	"testing"
)

func TestNiceTicks_CoverRange(t *testing.T) {
	cases := []struct{ min, max float64 }{
		{0, 1},
		{0, 126},
		{1.7, 8.3},
		{121.6, 4300.8},
		{64, 64},
		{0, 0.037},
	}
	for _, tc := range cases {
		ticks := niceTicks(tc.min, tc.max, 6)
		if len(ticks) < 2 {
			t.Fatalf("[%v,%v]: expected at least 2 ticks, got %d", tc.min, tc.max, len(ticks))
		}
		if ticks[0].Value > tc.min {
			t.Fatalf("[%v,%v]: first tick %v above min", tc.min, tc.max, ticks[0].Value)
		}
		if last := ticks[len(ticks)-1].Value; last < tc.max {
			t.Fatalf("[%v,%v]: last tick %v below max", tc.min, tc.max, last)
		}
		if len(ticks) > 10 {
			t.Fatalf("[%v,%v]: too many ticks: %d", tc.min, tc.max, len(ticks))
		}
		for i := 1; i < len(ticks); i++ {
			if !(ticks[i].Value > ticks[i-1].Value) {
				t.Fatalf("[%v,%v]: ticks not increasing at %d", tc.min, tc.max, i)
			}
		}
	}
}

func TestNiceTicks_Invalid(t *testing.T) {
	if got := niceTicks(math.NaN(), 1, 6); got != nil {
		t.Fatalf("expected nil for NaN input, got %v", got)
	}
	if got := niceTicks(0, 1, 1); got != nil {
		t.Fatalf("expected nil for n < 2, got %v", got)
	}
}

func TestFormatTick(t *testing.T) {
	cases := []struct {
		v, step float64
		want    string
	}{
		{0, 25, "0"},
		{125, 25, "125"},
		{2.5, 2.5, "2.5"},
		{0.25, 0.25, "0.25"},
		{64.2, 0.2, "64.2"},
		{1e-17, 0.1, "0"},
		{4000, 500, "4000"},
	}
	for _, tc := range cases {
		if got := formatTick(tc.v, tc.step); got != tc.want {
			t.Fatalf("formatTick(%v, %v) = %q want %q", tc.v, tc.step, got, tc.want)
		}
	}
}

func TestPaddedRange(t *testing.T) {
	a, b := paddedRange(2, 8)
	if math.Abs(a-1.7) > 1e-12 || math.Abs(b-8.3) > 1e-12 {
		t.Fatalf("paddedRange(2,8) = %v,%v", a, b)
	}
	a, b = paddedRange(0, 10)
	if a != 0 || b != 10.5 {
		t.Fatalf("non-negative data must not go below 0: %v,%v", a, b)
	}
	a, b = paddedRange(5, 5)
	if !(a < 5 && b > 5) {
		t.Fatalf("degenerate range not widened: %v,%v", a, b)
	}
}
