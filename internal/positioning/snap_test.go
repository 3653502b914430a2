package positioning

import "testing"

func TestSnapToRouteWithinThreshold(t *testing.T) {
	route := []Point{{X: 245, Y: 225}, {X: 760, Y: 225}}
	got := SnapToRoute(Point{X: 500, Y: 250}, route)
	if got.X != 500 || got.Y != 225 {
		t.Fatalf("snapped point = %+v, want (500,225)", got)
	}
}

func TestSnapToRouteBeyondThresholdUnchanged(t *testing.T) {
	route := []Point{{X: 245, Y: 225}, {X: 760, Y: 225}}
	raw := Point{X: 500, Y: 400}
	got := SnapToRoute(raw, route)
	if got != raw {
		t.Fatalf("point beyond threshold should be unchanged: got %+v, want %+v", got, raw)
	}
}

func TestSnapToRouteShortRouteUnchanged(t *testing.T) {
	raw := Point{X: 10, Y: 10}
	got := SnapToRoute(raw, []Point{{X: 0, Y: 0}})
	if got != raw {
		t.Fatalf("route with <2 points must leave point unchanged: got %+v", got)
	}
}

func TestSnapToRouteDegenerateSegment(t *testing.T) {
	route := []Point{{X: 100, Y: 100}, {X: 100, Y: 100}, {X: 300, Y: 100}}
	got := SnapToRoute(Point{X: 95, Y: 102}, route)
	if got.Y != 100 {
		t.Fatalf("expected projection onto y=100 line, got %+v", got)
	}
}
