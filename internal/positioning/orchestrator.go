package positioning

import (
	"math"
	"sync"
)

// sessionMemory is the mutable per-session smoothing state: the subset of
// session state that the orchestrator itself owns and mutates on every
// CalculateLocation call. SessionCoordinator owns the rest (sessionId
// bookkeeping, message dispatch) and drives this one through
// Open/Close/SetRoute/ClearRoute.
type sessionMemory struct {
	mu sync.Mutex

	hasLast          bool
	lastLocation     Point
	lastUpdateMillis int64
	jitterBuffer     []Point
	activeRoute      []Point
}

// Orchestrator dispatches beacon readings to the estimator selected for
// the given mode, then runs the per-session smoothing, speed-clamp,
// jitter-filter, and snap-to-route pipeline. One Orchestrator serves
// every session; session state lives in a mutex-guarded map keyed by
// sessionId, mutated only on behalf of the owning session.
type Orchestrator struct {
	registry *MapRegistry
	ranging  *RangingModel

	mu       sync.Mutex
	sessions map[string]*sessionMemory
}

// NewOrchestrator wires an Orchestrator to its (shared, read-only)
// reference data and ranging model.
func NewOrchestrator(registry *MapRegistry, ranging *RangingModel) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		ranging:  ranging,
		sessions: make(map[string]*sessionMemory),
	}
}

// Open allocates smoothing state for a newly-opened session. Idempotent.
func (o *Orchestrator) Open(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.sessions[sessionID]; !ok {
		o.sessions[sessionID] = &sessionMemory{}
	}
}

// Close discards a session's smoothing state.
func (o *Orchestrator) Close(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.sessions, sessionID)
}

// memory returns sessionID's state, creating it if the session was never
// opened. CalculateLocation is forgiving here on purpose: a stray request
// for an unopened session still gets independent, correct smoothing
// state rather than sharing or nil-panicking.
func (o *Orchestrator) memory(sessionID string) *sessionMemory {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.sessions[sessionID]
	if !ok {
		m = &sessionMemory{}
		o.sessions[sessionID] = m
	}
	return m
}

// SetRoute installs sessionID's active route. A route shorter than 2
// waypoints is treated as no route at all — callers wanting to clear a
// route should call ClearRoute, but this guards the invariant either way.
func (o *Orchestrator) SetRoute(sessionID string, route []Point) {
	m := o.memory(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(route) < 2 {
		m.activeRoute = nil
		return
	}
	m.activeRoute = route
}

// ClearRoute removes sessionID's active route.
func (o *Orchestrator) ClearRoute(sessionID string) {
	m := o.memory(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeRoute = nil
}

// HasActiveRoute reports whether sessionID is currently in navigation
// mode by virtue of holding a route (as opposed to the caller-supplied
// navigationFlag).
func (o *Orchestrator) HasActiveRoute(sessionID string) bool {
	m := o.memory(sessionID)
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.activeRoute) >= 2
}

// CalculateLocation is the orchestrator's public contract:
// dispatch readings to the right estimator for mode, run the session's
// smoothing pipeline, and snap to its active route if one exists.
//
// nowMillis is supplied by the caller rather than read from the wall
// clock here, so the smoothing pipeline's Δt arithmetic stays
// deterministic and testable.
func (o *Orchestrator) CalculateLocation(readings []RssiReading, mode Mode, sessionID string, navigationFlag bool, nowMillis int64) (PositioningResult, error) {
	if len(readings) == 0 {
		return PositioningResult{Mode: mode}, ErrInsufficientInput
	}

	// Readings below MinValidRSSI are rejected upstream of every estimator;
	// a batch with nothing left is indistinguishable from one whose beacons
	// are all unknown.
	filtered := make([]RssiReading, 0, len(readings))
	for _, r := range readings {
		if r.RSSI >= MinValidRSSI {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 || !anyResolves(o.registry, filtered) {
		return PositioningResult{Mode: mode}, ErrUnresolvableBeacons
	}
	if mode == Trilateration && resolvedCount(o.registry, filtered) < 3 {
		return PositioningResult{Mode: mode}, ErrInsufficientInput
	}

	raw := o.dispatch(filtered, mode)
	if !raw.Valid() {
		return raw, nil
	}

	m := o.memory(sessionID)
	m.mu.Lock()
	navMode := navigationFlag || len(m.activeRoute) >= 2
	final := smooth(m, raw.Location, navMode, nowMillis)
	route := m.activeRoute
	m.mu.Unlock()

	if len(route) >= 2 {
		final = SnapToRoute(final, route)
	}

	raw.Location = final
	return raw, nil
}

func anyResolves(registry *MapRegistry, readings []RssiReading) bool {
	for _, r := range readings {
		if _, ok := registry.Lookup(r.BeaconID); ok {
			return true
		}
	}
	return false
}

func resolvedCount(registry *MapRegistry, readings []RssiReading) int {
	n := 0
	for _, r := range readings {
		if _, ok := registry.Lookup(r.BeaconID); ok {
			n++
		}
	}
	return n
}

// dispatch implements the mode table: direct dispatch for Proximity
// and Weighted, a fallback-to-weighted for an invalid Trilateration
// result, and Hybrid's beacon-count rule.
func (o *Orchestrator) dispatch(readings []RssiReading, mode Mode) PositioningResult {
	switch mode {
	case Proximity:
		return EstimateProximity(o.registry, o.ranging, readings)
	case Weighted:
		return EstimateWeighted(o.registry, o.ranging, readings)
	case Trilateration:
		if r := EstimateTrilateration(o.registry, o.ranging, readings); r.Valid() {
			return r
		}
		return EstimateWeighted(o.registry, o.ranging, readings)
	default: // Hybrid
		switch n := resolvedCount(o.registry, readings); {
		case n <= 1:
			return EstimateProximity(o.registry, o.ranging, readings)
		case n == 2:
			return EstimateWeighted(o.registry, o.ranging, readings)
		default:
			if r := EstimateTrilateration(o.registry, o.ranging, readings); r.Valid() && r.Confidence > HybridTrilaterationConf {
				return r
			}
			return EstimateWeighted(o.registry, o.ranging, readings)
		}
	}
}

// smooth runs the fixed-step-order smoothing pipeline against m's state (caller
// holds m.mu), mutating it in place, and returns this request's final
// point.
func smooth(m *sessionMemory, raw Point, navMode bool, nowMillis int64) Point {
	if !m.hasLast {
		m.hasLast = true
		m.lastLocation = raw
		m.lastUpdateMillis = nowMillis
		m.jitterBuffer = append(m.jitterBuffer[:0], raw)
		return raw
	}

	dtSeconds := float64(nowMillis-m.lastUpdateMillis) / 1000.0
	if dtSeconds < MinDtSeconds {
		dtSeconds = MinDtSeconds
	}

	delta := raw.Sub(m.lastLocation)
	dist := math.Hypot(delta.X, delta.Y)
	speed := dist / dtSeconds

	minMove := MinMoveThresholdNormal
	if navMode {
		minMove = MinMoveThresholdNav
	}
	if dist < minMove {
		if navMode {
			return m.lastLocation
		}
		return bufferMean(m.jitterBuffer, m.lastLocation)
	}

	step := delta
	if speed > MaxSpeedPxPerSec {
		maxStep := MaxSpeedPxPerSec * dtSeconds
		step = delta.Scale(maxStep / dist)
	}
	clamped := m.lastLocation.Add(step)

	alpha := AlphaStaticNormal
	if navMode {
		alpha = AlphaStaticNav
	}
	if speed > MovementSpeedThreshold {
		alpha = AlphaMovingNormal
		if navMode {
			alpha = AlphaMovingNav
		}
	}
	smoothed := Point{
		X: alpha*clamped.X + (1-alpha)*m.lastLocation.X,
		Y: alpha*clamped.Y + (1-alpha)*m.lastLocation.Y,
	}

	var final Point
	if navMode {
		final = smoothed
		m.jitterBuffer = m.jitterBuffer[:0]
	} else {
		if len(m.jitterBuffer) >= JitterBufferSize {
			m.jitterBuffer = m.jitterBuffer[1:]
		}
		m.jitterBuffer = append(m.jitterBuffer, smoothed)
		final = bufferMean(m.jitterBuffer, smoothed)
	}

	m.lastLocation = final
	m.lastUpdateMillis = nowMillis
	return final
}

func bufferMean(buf []Point, fallback Point) Point {
	if len(buf) == 0 {
		return fallback
	}
	var sx, sy float64
	for _, p := range buf {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(buf))
	return Point{X: sx / n, Y: sy / n}
}
