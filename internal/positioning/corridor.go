package positioning

import "math"

// corridorKind identifies which walkable rectangle a point was pulled into.
type corridorKind int

const (
	corridorMain corridorKind = iota
	corridorLeft
)

// insideMain reports whether p lies inside the main corridor rectangle.
func insideMain(p Point) bool {
	return p.X >= MainMinX && p.X <= MainMaxX && p.Y >= MainMinY && p.Y <= MainMaxY
}

// insideLeft reports whether p lies inside the left corridor rectangle.
func insideLeft(p Point) bool {
	return p.X >= LeftMinX && p.X <= LeftMaxX && p.Y >= LeftMinY && p.Y <= LeftMaxY
}

// insideJunction reports whether p lies in the junction region where main
// and left corridors meet.
func insideJunction(p Point) bool {
	return p.X >= LeftMinX && p.X <= LeftMaxX && p.Y >= MainMinY && p.Y <= 300.0
}

// clampRect clamps p's components into the given rectangle, hard.
func clampRect(p Point, minX, maxX, minY, maxY float64) Point {
	return Point{X: clampF(p.X, minX, maxX), Y: clampF(p.Y, minY, maxY)}
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// distanceToClampedRect is the Euclidean distance from p to its own clamp
// against the given rectangle (i.e. distance to the rectangle, 0 if inside).
func distanceToClampedRect(p Point, minX, maxX, minY, maxY float64) float64 {
	c := clampRect(p, minX, maxX, minY, maxY)
	return math.Hypot(p.X-c.X, p.Y-c.Y)
}

// ApplySoftCorridorConstraint pulls an off-corridor estimate back into a
// walkable region. Points already inside either rectangle pass
// through unchanged; points in the main/left junction region are clamped
// only to the main corridor's outer bounds; everything else is softly
// pulled toward whichever corridor is the better fit.
func ApplySoftCorridorConstraint(p Point) Point {
	if insideMain(p) || insideLeft(p) {
		return p
	}
	if insideJunction(p) {
		return clampRect(p, MainMinX, MainMaxX, MainMinY, MainMaxY)
	}

	var kind corridorKind
	nearMain := distanceToClampedRect(p, MainMinX, MainMaxX, MainMinY, MainMaxY) <= CorridorMargin
	nearLeft := distanceToClampedRect(p, LeftMinX, LeftMaxX, LeftMinY, LeftMaxY) <= CorridorMargin

	switch {
	case p.Y < MainMaxY:
		kind = corridorMain
	case nearMain && !nearLeft:
		kind = corridorMain
	case nearLeft:
		kind = corridorLeft
	default:
		dMain := distanceToClampedRect(p, MainMinX, MainMaxX, MainMinY, MainMaxY)
		dLeft := distanceToClampedRect(p, LeftMinX, LeftMaxX, LeftMinY, LeftMaxY)
		if dMain <= dLeft {
			kind = corridorMain
		} else {
			kind = corridorLeft
		}
	}

	if kind == corridorMain {
		return softPull(p, MainMinX, MainMaxX, MainMinY, MainMaxY, true)
	}
	return softPull(p, LeftMinX, LeftMaxX, LeftMinY, LeftMaxY, false)
}

// softPull implements the soft-pull geometry for one corridor: hard clamp
// along the corridor's length, soft pull (scaled by 1-SOFT) along the
// perpendicular axis, then a further pull toward the corridor's centerline.
// mainCorridor selects which axis is "length" (main runs along X, left
// along Y).
func softPull(p Point, minX, maxX, minY, maxY float64, mainCorridor bool) Point {
	if mainCorridor {
		x := clampF(p.X, minX, maxX)
		y := p.Y
		if y < minY {
			delta := minY - y
			y = minY + delta*(1-SoftConstraintStrength)
		} else if y > maxY {
			delta := y - maxY
			y = maxY - delta*(1-SoftConstraintStrength)
		}
		y += (MainCenterY - y) * CenterPull
		// The walkable band is only 90px wide; an overflow past ~300px
		// would carry the residual across the far wall.
		y = clampF(y, minY, maxY)
		return Point{X: x, Y: y}
	}
	y := clampF(p.Y, minY, maxY)
	x := p.X
	if x < minX {
		delta := minX - x
		x = minX + delta*(1-SoftConstraintStrength)
	} else if x > maxX {
		delta := x - maxX
		x = maxX - delta*(1-SoftConstraintStrength)
	}
	x += (LeftCenterX - x) * CenterPull
	x = clampF(x, minX, maxX)
	return Point{X: x, Y: y}
}
