package routing

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// PathPlanner computes shortest paths over a RouteGraph.
type PathPlanner struct {
	graph *RouteGraph
}

// NewPathPlanner wires a planner to its (shared, read-only) graph.
func NewPathPlanner(g *RouteGraph) *PathPlanner {
	return &PathPlanner{graph: g}
}

// ShortestPath resolves start to its nearest waypoint, targetAlias to a
// node id, runs Dijkstra between them, and reconstructs the path as map
// points. The returned sequence always begins with the start waypoint's
// own coordinates, not the raw start point. Returns ErrNoRoute if
// targetAlias does not resolve, or if no path connects the two nodes.
func (p *PathPlanner) ShortestPath(start Point, targetAlias string) ([]Point, error) {
	startID := p.graph.nearestNode(start)
	endID, ok := p.graph.resolveTarget(targetAlias)
	if !ok {
		return nil, ErrNoRoute
	}

	startGID := p.graph.graphID[startID]
	endGID := p.graph.graphID[endID]

	shortest := path.DijkstraFrom(simple.Node(startGID), p.graph.g)
	nodes, _ := shortest.To(endGID)
	if len(nodes) == 0 {
		return nil, ErrNoRoute
	}

	pts := make([]Point, 0, len(nodes))
	for _, n := range nodes {
		wp := p.graph.byGraphID[n.ID()]
		pts = append(pts, Point{X: wp.x, Y: wp.y})
	}
	return pts, nil
}
