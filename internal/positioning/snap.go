package positioning

import "math"

// SnapToRoute projects p onto the closest point of route's polyline
// segments, replacing it if that projection lies within
// SnapToRouteThresholdPx. If no segment projects within threshold,
// or the route has fewer than 2 waypoints, p is returned unchanged.
func SnapToRoute(p Point, route []Point) Point {
	if len(route) < 2 {
		return p
	}

	bestDist := math.Inf(1)
	best := p
	found := false

	for i := 0; i < len(route)-1; i++ {
		proj := projectOntoSegment(p, route[i], route[i+1])
		d := math.Hypot(p.X-proj.X, p.Y-proj.Y)
		if d < bestDist {
			bestDist = d
			best = proj
			found = true
		}
	}

	if found && bestDist <= SnapToRouteThresholdPx {
		return best
	}
	return p
}

// projectOntoSegment returns the perpendicular foot of p onto segment
// (a,b), clamped to the segment. Degenerate (zero-length) segments return a.
func projectOntoSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
