package session

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"wayfinder-engine/internal/locationlog"
	"wayfinder-engine/internal/positioning"
	"wayfinder-engine/internal/routing"
)

// SessionState is the bookkeeping SessionCoordinator owns directly per
// open session. The smoothing-specific state (lastLocation, jitter
// buffer, the route polyline itself) lives inside the positioning
// Orchestrator, which this type's sessionId keys into; HasRoute here is
// just the observable sub-state for the `location` response.
type SessionState struct {
	SessionID string
	HasRoute  bool
}

// SessionCoordinator is the top of the pipeline: it owns the open
// session table, dispatches inbound wire messages by type, and wires the
// positioning and routing packages together with the location-log sink.
type SessionCoordinator struct {
	orchestrator *positioning.Orchestrator
	planner      *routing.PathPlanner
	log          locationlog.Sink

	defaultMode atomic.Int32

	mu       sync.RWMutex
	sessions map[string]*SessionState
}

// NewSessionCoordinator wires a coordinator to its collaborators. log may
// be nil, in which case location entries are simply not recorded.
func NewSessionCoordinator(orchestrator *positioning.Orchestrator, planner *routing.PathPlanner, log locationlog.Sink, defaultMode positioning.Mode) *SessionCoordinator {
	c := &SessionCoordinator{
		orchestrator: orchestrator,
		planner:      planner,
		log:          log,
		sessions:     make(map[string]*SessionState),
	}
	c.defaultMode.Store(int32(defaultMode))
	return c
}

// Open registers a new session and returns its `welcome` message.
func (c *SessionCoordinator) Open(sessionID string) []byte {
	c.mu.Lock()
	c.sessions[sessionID] = &SessionState{SessionID: sessionID}
	c.mu.Unlock()
	c.orchestrator.Open(sessionID)

	mode := positioning.Mode(c.defaultMode.Load())
	return encode(welcomeMessage{
		Type:        "welcome",
		SessionID:   sessionID,
		Message:     "connected",
		DefaultMode: mode.String(),
	})
}

// Close tears down a session: clears its active route and forgets its
// state.
func (c *SessionCoordinator) Close(sessionID string) {
	c.mu.Lock()
	delete(c.sessions, sessionID)
	c.mu.Unlock()
	c.orchestrator.Close(sessionID)
}

// ConnectedCount returns the number of currently open sessions, for `pong`.
func (c *SessionCoordinator) ConnectedCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// HandleMessage dispatches one inbound wire message for sessionID and
// returns the outbound response for the same connection. nowMillis is
// caller-supplied wall-clock time, threaded through to the orchestrator's
// smoothing arithmetic and the pong/log timestamps.
//
// A fault while handling one message must not take the session down: a
// recovered panic degrades to an `error` response.
func (c *SessionCoordinator) HandleMessage(sessionID string, raw []byte, nowMillis int64) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("session %s: recovered fault handling message: %v", sessionID, r)
			out = encode(errorResponse{Type: "error", Status: "error", Message: "internal failure"})
		}
	}()

	var in inboundMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return encode(errorResponse{Type: "error", Status: "error", Message: "malformed request"})
	}

	switch in.Type {
	case "location":
		return c.handleLocation(sessionID, in, nowMillis)
	case "setMode":
		return c.handleSetMode(in)
	case "ping":
		return c.handlePing(nowMillis)
	case "":
		return encode(errorResponse{Type: "error", Status: "error", Message: "missing type"})
	default:
		return encode(errorResponse{Type: "error", Status: "error", Message: fmt.Sprintf("unknown message type %q", in.Type)})
	}
}

func (c *SessionCoordinator) handleLocation(sessionID string, in inboundMessage, nowMillis int64) []byte {
	readings := make([]positioning.RssiReading, 0, len(in.Beacons))
	for _, b := range in.Beacons {
		if id := b.resolvedID(); id != "" {
			readings = append(readings, positioning.RssiReading{BeaconID: id, RSSI: b.RSSI})
		}
	}

	mode := positioning.Mode(c.defaultMode.Load())
	if in.Mode != "" {
		parsed, err := positioning.ParseMode(in.Mode)
		if err != nil {
			return encode(errorResponse{Type: "error", Status: "error", Message: "invalid mode"})
		}
		mode = parsed
	}

	result, err := c.orchestrator.CalculateLocation(readings, mode, sessionID, false, nowMillis)
	switch err {
	case nil:
	case positioning.ErrInsufficientInput:
		return encode(errorResponse{Type: "error", Status: "error", Message: "insufficient input"})
	case positioning.ErrUnresolvableBeacons:
		return encode(errorResponse{Type: "error", Status: "error", Message: "no resolvable beacons"})
	default:
		return encode(errorResponse{Type: "error", Status: "error", Message: "internal failure"})
	}

	out := locationResponse{
		Type:              "location",
		Status:            "ok",
		X:                 result.Location.X,
		Y:                 result.Location.Y,
		XMeter:            result.Location.X / positioning.PixelsPerMeter,
		YMeter:            result.Location.Y / positioning.PixelsPerMeter,
		Mode:              result.Mode.String(),
		Confidence:        result.Confidence,
		NearestBeacon:     result.NearestBeaconID,
		NearestRoom:       result.NearestRoom,
		EstimatedDistance: result.EstimatedDistanceM,
	}

	target := strings.TrimSpace(in.Target)
	c.planRoute(sessionID, target, result.Location, &out)

	if c.log != nil {
		c.log.Append(locationlog.Entry{
			SessionID:         sessionID,
			X:                 result.Location.X,
			Y:                 result.Location.Y,
			ZoneName:          result.NearestRoom,
			TargetDestination: target,
			TimestampMillis:   nowMillis,
		})
	}

	return encode(out)
}

// planRoute implements target handling: clear the active route on
// an empty target, otherwise call the planner with the location the
// orchestrator returned (already snapped onto the previous route, if one
// was active) and install whatever it returns.
func (c *SessionCoordinator) planRoute(sessionID, target string, at positioning.Point, out *locationResponse) {
	if target == "" {
		c.orchestrator.ClearRoute(sessionID)
		c.setHasRoute(sessionID, false)
		return
	}

	route, err := c.planner.ShortestPath(routing.Point{X: at.X, Y: at.Y}, target)
	if err != nil || len(route) < 2 {
		c.orchestrator.ClearRoute(sessionID)
		c.setHasRoute(sessionID, false)
		out.HasRoute = boolPtr(false)
		out.RouteError = "no route to destination"
		return
	}

	pts := make([]positioning.Point, len(route))
	wirePath := make([]pathPoint, len(route))
	for i, p := range route {
		pts[i] = positioning.Point{X: p.X, Y: p.Y}
		wirePath[i] = pathPoint{X: p.X, Y: p.Y}
	}
	c.orchestrator.SetRoute(sessionID, pts)
	c.setHasRoute(sessionID, true)
	out.HasRoute = boolPtr(true)
	out.Path = wirePath
}

func (c *SessionCoordinator) setHasRoute(sessionID string, has bool) {
	c.mu.RLock()
	s, ok := c.sessions[sessionID]
	c.mu.RUnlock()
	if ok {
		s.HasRoute = has
	}
}

func (c *SessionCoordinator) handleSetMode(in inboundMessage) []byte {
	mode, err := positioning.ParseMode(in.Mode)
	if err != nil {
		return encode(errorResponse{Type: "error", Status: "error", Message: "invalid mode"})
	}
	c.defaultMode.Store(int32(mode))
	return encode(modeChangedMessage{Type: "modeChanged", Status: "ok", Mode: mode.String(), Message: "default mode updated"})
}

func (c *SessionCoordinator) handlePing(nowMillis int64) []byte {
	return encode(pongMessage{Type: "pong", Timestamp: nowMillis, ConnectedUsers: c.ConnectedCount()})
}

func encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"type":"error","status":"error","message":"internal failure"}`)
	}
	return b
}
