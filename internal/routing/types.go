package routing

// Point is a 2-D map-pixel coordinate. Kept independent of the
// positioning package's identical type so routing carries no dependency
// on positioning; callers at the session layer convert between the two.
type Point struct {
	X float64
	Y float64
}
