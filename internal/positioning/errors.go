package positioning

import "errors"

// Sentinel errors for the request-handling taxonomy. SessionCoordinator maps
// these onto outbound `error` messages; none of them
// should ever reach the process logs as a crash.
var (
	// ErrInsufficientInput covers empty readings, or a trilateration
	// request backed by fewer than 3 resolvable beacons.
	ErrInsufficientInput = errors.New("positioning: insufficient input")

	// ErrUnresolvableBeacons is returned when every reading referred to an
	// unknown beacon, even after MAC normalization and byte reversal.
	ErrUnresolvableBeacons = errors.New("positioning: no resolvable beacons")

	// ErrInvalidMode is returned by ParseMode when the wire string does
	// not match a known Mode.
	ErrInvalidMode = errors.New("positioning: unknown mode")
)
