package routing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
)

// waypoint is one node of the route graph: a corridor intersection,
// door, or landmark at a fixed map-pixel coordinate.
type waypoint struct {
	id          string
	x, y        float64
	displayName string
}

// RouteGraph is the static waypoint graph: built once at init from
// the hardcoded floor layout in waypoints.go, read-only thereafter, and
// shared across every session. The underlying gonum graph carries only
// opaque int64 node IDs; this type is the lookup layer between those and
// the waypoint metadata the planner needs.
type RouteGraph struct {
	g *simple.WeightedUndirectedGraph

	byID      map[string]*waypoint
	byGraphID map[int64]*waypoint
	graphID   map[string]int64
	roomAlias map[string]string // normalized alias -> node id
}

// NewRouteGraph builds the graph described in waypoints.go. Panics on a
// malformed layout (duplicate id, edge to an unknown node): this is
// program data, not user input, and a bad layout should fail at startup
// rather than silently produce a disconnected graph.
func NewRouteGraph() *RouteGraph {
	rg := &RouteGraph{
		g:         simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		byID:      make(map[string]*waypoint),
		byGraphID: make(map[int64]*waypoint),
		graphID:   make(map[string]int64),
		roomAlias: make(map[string]string),
	}
	for _, n := range floorWaypoints {
		rg.addNode(n.id, n.x, n.y, n.displayName)
	}
	for _, e := range floorEdges {
		rg.addEdge(e.a, e.b)
	}
	for alias, nodeID := range floorAliases {
		rg.addAlias(alias, nodeID)
	}
	return rg
}

func (rg *RouteGraph) addNode(id string, x, y float64, displayName string) {
	if _, exists := rg.byID[id]; exists {
		panic("routing: duplicate waypoint id " + id)
	}
	n := rg.g.NewNode()
	wp := &waypoint{id: id, x: x, y: y, displayName: displayName}
	rg.byID[id] = wp
	rg.byGraphID[n.ID()] = wp
	rg.graphID[id] = n.ID()
	rg.g.AddNode(n)
}

func (rg *RouteGraph) addEdge(a, b string) {
	ga, oka := rg.graphID[a]
	gb, okb := rg.graphID[b]
	if !oka || !okb {
		panic("routing: edge references unknown waypoint " + a + "/" + b)
	}
	wa, wb := rg.byID[a], rg.byID[b]
	weight := math.Hypot(wa.x-wb.x, wa.y-wb.y)
	rg.g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(ga), T: simple.Node(gb), W: weight})
}

func (rg *RouteGraph) addAlias(alias, nodeID string) {
	if _, ok := rg.byID[nodeID]; !ok {
		panic("routing: alias references unknown waypoint " + nodeID)
	}
	rg.roomAlias[strings.ToLower(strings.TrimSpace(alias))] = nodeID
}

// AddDestinationAliases merges loader-supplied destination aliases over
// the built-in table, so the reference file is the authoritative source
// for alias naming. Unlike the hardcoded layout, this is external input:
// an alias naming an unknown waypoint is an error for the caller to fail
// startup on, not a panic.
func (rg *RouteGraph) AddDestinationAliases(aliases map[string]string) error {
	for alias, nodeID := range aliases {
		if _, ok := rg.byID[nodeID]; !ok {
			return fmt.Errorf("routing: alias %q references unknown waypoint %q", alias, nodeID)
		}
		rg.roomAlias[strings.ToLower(strings.TrimSpace(alias))] = nodeID
	}
	return nil
}

// sortedIDs returns every waypoint id in a fixed order, so nearest-node
// and substring-match resolution are deterministic under equal-distance
// or multiple-match ties.
func (rg *RouteGraph) sortedIDs() []string {
	ids := make([]string, 0, len(rg.byID))
	for id := range rg.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// nearestNode returns the id of the waypoint closest to p.
func (rg *RouteGraph) nearestNode(p Point) string {
	best := ""
	bestDist := math.Inf(1)
	for _, id := range rg.sortedIDs() {
		wp := rg.byID[id]
		d := math.Hypot(p.X-wp.x, p.Y-wp.y)
		if d < bestDist {
			bestDist = d
			best = id
		}
	}
	return best
}

// resolveTarget implements the three-stage target lookup: alias
// table, then direct node id, then case-insensitive substring match
// against display names.
func (rg *RouteGraph) resolveTarget(targetAlias string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(targetAlias))
	if norm == "" {
		return "", false
	}
	if nodeID, ok := rg.roomAlias[norm]; ok {
		return nodeID, true
	}
	if _, ok := rg.byID[targetAlias]; ok {
		return targetAlias, true
	}
	for _, id := range rg.sortedIDs() {
		if strings.Contains(strings.ToLower(rg.byID[id].displayName), norm) {
			return id, true
		}
	}
	return "", false
}
