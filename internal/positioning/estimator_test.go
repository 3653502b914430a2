package positioning

import (
	"math"
	"testing"
)

type stubLoader struct {
	beacons []BeaconRecord
}

func (s stubLoader) LoadBeacons() ([]BeaconRecord, error) { return s.beacons, nil }

func testRegistry(t *testing.T) *MapRegistry {
	t.Helper()
	reg, err := NewMapRegistry(stubLoader{
		beacons: []BeaconRecord{
			{MAC: "08:92:72:87:9C:72", X: 789, Y: 184, Room: "157"},
			{MAC: "08:92:72:87:8D:D6", X: 232, Y: 185, Room: "160"},
			{MAC: "08:92:72:87:11:22", X: 329, Y: 262, Room: "161"},
			{MAC: "AA:AA:AA:AA:AA:01", X: 400, Y: 200, Room: "201"},
			{MAC: "AA:AA:AA:AA:AA:02", X: 600, Y: 200, Room: "202"},
			{MAC: "AA:AA:AA:AA:AA:03", X: 500, Y: 260, Room: "203"},
		},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return reg
}

func TestEstimateProximitySingleBeacon(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()

	result := EstimateProximity(reg, ranging, []RssiReading{{BeaconID: "08:92:72:87:9C:72", RSSI: -55}})
	if !result.Valid() {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if result.Location.X != 789 || result.Location.Y != 184 {
		t.Fatalf("location = %+v, want (789,184)", result.Location)
	}
	if result.NearestRoom != "157" {
		t.Fatalf("nearestRoom = %q, want 157", result.NearestRoom)
	}
	if math.Abs(result.EstimatedDistanceM-0.8) > 0.2 {
		t.Fatalf("estimatedDistance = %f, want ~0.8", result.EstimatedDistanceM)
	}
}

func TestEstimateProximityEmptyIsInvalid(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()
	result := EstimateProximity(reg, ranging, nil)
	if result.Valid() {
		t.Fatalf("expected invalid result for empty readings, got %+v", result)
	}
}

func TestEstimateProximityUnresolvedBeaconIsInvalid(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()
	result := EstimateProximity(reg, ranging, []RssiReading{{BeaconID: "FF:FF:FF:FF:FF:FF", RSSI: -55}})
	if result.Valid() {
		t.Fatalf("expected invalid result for unresolvable beacon, got %+v", result)
	}
}

func TestEstimateWeightedPullsTowardStrongerBeacon(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()

	result := EstimateWeighted(reg, ranging, []RssiReading{
		{BeaconID: "08:92:72:87:8D:D6", RSSI: -60},
		{BeaconID: "08:92:72:87:11:22", RSSI: -70},
	})
	if !result.Valid() {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if result.Location.X <= 232 || result.Location.X >= 329 {
		t.Fatalf("x = %f, want strictly between 232 and 329", result.Location.X)
	}
	midpoint := (232.0 + 329.0) / 2
	if result.Location.X >= midpoint {
		t.Fatalf("x = %f, want closer to the stronger beacon (232) than the midpoint %f", result.Location.X, midpoint)
	}
}

func TestEstimateTrilaterationConverges(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()

	result := EstimateTrilateration(reg, ranging, []RssiReading{
		{BeaconID: "AA:AA:AA:AA:AA:01", RSSI: -55},
		{BeaconID: "AA:AA:AA:AA:AA:02", RSSI: -60},
		{BeaconID: "AA:AA:AA:AA:AA:03", RSSI: -58},
	})
	if !result.Valid() {
		t.Fatalf("expected valid trilateration result, got %+v", result)
	}
	if math.IsNaN(result.Location.X) || math.IsNaN(result.Location.Y) {
		t.Fatalf("solver produced NaN: %+v", result.Location)
	}
	if !insideMain(result.Location) {
		t.Fatalf("expected solved point inside main corridor, got %+v", result.Location)
	}
	if result.Confidence <= 0.3 {
		t.Fatalf("confidence = %f, want > 0.3", result.Confidence)
	}
}

func TestEstimateTrilaterationTooFewBeaconsIsInvalid(t *testing.T) {
	reg := testRegistry(t)
	ranging := NewRangingModel()
	result := EstimateTrilateration(reg, ranging, []RssiReading{
		{BeaconID: "AA:AA:AA:AA:AA:01", RSSI: -55},
		{BeaconID: "AA:AA:AA:AA:AA:02", RSSI: -60},
	})
	if result.Valid() {
		t.Fatalf("expected invalid result with only 2 beacons, got %+v", result)
	}
}

func TestEstimateTrilaterationCollinearStillConverges(t *testing.T) {
	reg, err := NewMapRegistry(stubLoader{
		beacons: []BeaconRecord{
			{MAC: "BB:BB:BB:BB:BB:01", X: 300, Y: 225},
			{MAC: "BB:BB:BB:BB:BB:02", X: 500, Y: 225},
			{MAC: "BB:BB:BB:BB:BB:03", X: 700, Y: 225},
		},
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	ranging := NewRangingModel()
	result := EstimateTrilateration(reg, ranging, []RssiReading{
		{BeaconID: "BB:BB:BB:BB:BB:01", RSSI: -55},
		{BeaconID: "BB:BB:BB:BB:BB:02", RSSI: -60},
		{BeaconID: "BB:BB:BB:BB:BB:03", RSSI: -65},
	})
	if math.IsNaN(result.Location.X) || math.IsNaN(result.Location.Y) {
		t.Fatalf("collinear beacons produced NaN: %+v", result.Location)
	}
}
