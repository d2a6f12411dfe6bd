package utils

import "testing"

func TestHaversineBostonCambridge(t *testing.T) {
	// Downtown Boston to Central Square, Cambridge.
	d := HaversineMiles(42.3601, -71.0589, 42.3736, -71.1097)
	if d < 2.70 || d > 2.81 {
		t.Fatalf("expected ~2.75 miles, got %f", d)
	}
}

func TestHaversineZeroDistance(t *testing.T) {
	if d := HaversineMiles(42.3601, -71.0589, 42.3601, -71.0589); d != 0 {
		t.Fatalf("expected 0, got %f", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := HaversineMiles(42.3601, -71.0589, 42.3876, -71.0995)
	b := HaversineMiles(42.3876, -71.0995, 42.3601, -71.0589)
	if a != b {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
}
