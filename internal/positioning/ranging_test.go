package positioning

import "testing"

func TestRangingDistanceMonotone(t *testing.T) {
	m := NewRangingModel()
	prev := m.Distance(-30)
	for rssi := -31; rssi >= MinValidRSSI; rssi-- {
		d := m.Distance(rssi)
		if d < prev {
			t.Fatalf("distance(%d)=%f < distance(%d)=%f, expected non-decreasing as rssi weakens", rssi, d, rssi+1, prev)
		}
		prev = d
	}
}

func TestRangingDistanceClamped(t *testing.T) {
	m := NewRangingModel()
	for rssi := 0; rssi >= MinValidRSSI; rssi-- {
		d := m.Distance(rssi)
		if d < MinDistanceM || d > MaxDistanceM {
			t.Fatalf("distance(%d)=%f outside [%f,%f]", rssi, d, MinDistanceM, MaxDistanceM)
		}
	}
}

func TestPathLossExponentSegments(t *testing.T) {
	if n := pathLossExponent(-55); n != BaseN {
		t.Fatalf("near-segment n = %f, want %f", n, BaseN)
	}
	if n := pathLossExponent(-85); n != BaseN+0.8 {
		t.Fatalf("far-segment n = %f, want %f", n, BaseN+0.8)
	}
	mid := pathLossExponent(-70)
	if mid <= BaseN || mid >= BaseN+0.8 {
		t.Fatalf("mid-segment n = %f, want strictly between %f and %f", mid, BaseN, BaseN+0.8)
	}
}
