package routing

import "errors"

// ErrNoRoute covers both planner dead ends: the target alias did not
// resolve to any node, or Dijkstra never reached the node that it did
// resolve to.
var ErrNoRoute = errors.New("routing: no path to destination")
