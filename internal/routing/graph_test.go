package routing

import (
	"math"
	"testing"
)

func TestShortestPathToRoomAlias(t *testing.T) {
	g := NewRouteGraph()
	p := NewPathPlanner(g)

	route, err := p.ShortestPath(Point{X: 245, Y: 225}, "147")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(route) < 2 {
		t.Fatalf("expected a multi-point path, got %v", route)
	}
	if route[0] != (Point{X: 245, Y: 225}) {
		t.Fatalf("path must start at the nearest waypoint's own coordinates, got %+v", route[0])
	}

	target := route[len(route)-1]
	prevDist := math.Inf(1)
	for i, wp := range route {
		d := math.Hypot(target.X-wp.X, target.Y-wp.Y)
		if i > 0 && d > prevDist+1e-9 {
			t.Fatalf("remaining distance to target increased at step %d: %f > %f", i, d, prevDist)
		}
		prevDist = d
	}
}

func TestShortestPathUnknownTargetIsNoRoute(t *testing.T) {
	g := NewRouteGraph()
	p := NewPathPlanner(g)

	if _, err := p.ShortestPath(Point{X: 245, Y: 225}, "nonexistent-place"); err != ErrNoRoute {
		t.Fatalf("err = %v, want ErrNoRoute", err)
	}
}

func TestShortestPathSubstringMatchOnDisplayName(t *testing.T) {
	g := NewRouteGraph()
	p := NewPathPlanner(g)

	route, err := p.ShortestPath(Point{X: 245, Y: 225}, "corridor 3")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(route) == 0 {
		t.Fatal("expected a resolved path via substring display-name match")
	}
}

func TestShortestPathAmenityAliases(t *testing.T) {
	g := NewRouteGraph()
	p := NewPathPlanner(g)

	for _, alias := range []string{"entrance", "yemekhane", "wc", "merdiven"} {
		if _, err := p.ShortestPath(Point{X: 1000, Y: 225}, alias); err != nil {
			t.Fatalf("alias %q: %v", alias, err)
		}
	}
}

func TestAddDestinationAliasesMergesLoadedTable(t *testing.T) {
	g := NewRouteGraph()
	if err := g.AddDestinationAliases(map[string]string{"Lunch Hall": "yemekhane"}); err != nil {
		t.Fatalf("AddDestinationAliases: %v", err)
	}

	p := NewPathPlanner(g)
	if _, err := p.ShortestPath(Point{X: 245, Y: 225}, "lunch hall"); err != nil {
		t.Fatalf("merged alias should resolve: %v", err)
	}
}

func TestAddDestinationAliasesRejectsUnknownWaypoint(t *testing.T) {
	g := NewRouteGraph()
	if err := g.AddDestinationAliases(map[string]string{"bogus": "no-such-node"}); err == nil {
		t.Fatal("expected error for alias to unknown waypoint")
	}
}

func TestNewRouteGraphBuildsWithoutPanicking(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("NewRouteGraph panicked: %v", r)
		}
	}()
	NewRouteGraph()
}
