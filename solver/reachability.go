//  Copyright (c) The nullgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package solver implements spec section 4's fifth stage: reachability over
// the committed graph decides, for every inferred node, whether it is
// forced nullable, forced non-null, both (a contradiction), or neither
// (defaults to non-null).
package solver

import (
	"github.com/nullgraph/nullgraph/config"
	"github.com/nullgraph/nullgraph/typegraph"
)

// HasPath implements the harness's point-to-point reachability query (spec
// section 6, "CheckPaths"/"HasPathFromParameterToReturnType"): a
// bidirectional BFS bounded by config.MaxPathQueryEdges so a pathological
// graph cannot make one query run unbounded.
func HasPath(from, to *typegraph.Node) bool {
	if from == to {
		return true
	}

	visitedFwd := map[*typegraph.Node]bool{from: true}
	visitedBwd := map[*typegraph.Node]bool{to: true}
	frontierFwd := []*typegraph.Node{from}
	frontierBwd := []*typegraph.Node{to}
	edgesVisited := 0

	for len(frontierFwd) > 0 && len(frontierBwd) > 0 {
		var nextFwd []*typegraph.Node
		for _, n := range frontierFwd {
			for _, e := range n.Outgoing() {
				edgesVisited++
				if edgesVisited > config.MaxPathQueryEdges {
					return false
				}
				if visitedBwd[e.Target] {
					return true
				}
				if !visitedFwd[e.Target] {
					visitedFwd[e.Target] = true
					nextFwd = append(nextFwd, e.Target)
				}
			}
		}
		frontierFwd = nextFwd

		var nextBwd []*typegraph.Node
		for _, n := range frontierBwd {
			for _, e := range n.Incoming() {
				edgesVisited++
				if edgesVisited > config.MaxPathQueryEdges {
					return false
				}
				if visitedFwd[e.Source] {
					return true
				}
				if !visitedBwd[e.Source] {
					visitedBwd[e.Source] = true
					nextBwd = append(nextBwd, e.Source)
				}
			}
		}
		frontierBwd = nextBwd
	}
	return false
}

// forwardReachableSet returns every node reachable from start by following
// outgoing edges, bounded by config.MaxPathQueryEdges edges visited.
func forwardReachableSet(start *typegraph.Node) map[*typegraph.Node]bool {
	return reachableSet(start, func(n *typegraph.Node) []*typegraph.Edge { return n.Outgoing() },
		func(e *typegraph.Edge) *typegraph.Node { return e.Target })
}

// backwardReachableSet returns every node that can reach start by following
// outgoing edges - equivalently, every node reachable from start by
// following incoming edges backward.
func backwardReachableSet(start *typegraph.Node) map[*typegraph.Node]bool {
	return reachableSet(start, func(n *typegraph.Node) []*typegraph.Edge { return n.Incoming() },
		func(e *typegraph.Edge) *typegraph.Node { return e.Source })
}

func reachableSet(start *typegraph.Node, adjacent func(*typegraph.Node) []*typegraph.Edge, other func(*typegraph.Edge) *typegraph.Node) map[*typegraph.Node]bool {
	visited := map[*typegraph.Node]bool{start: true}
	queue := []*typegraph.Node{start}
	edgesVisited := 0

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range adjacent(n) {
			edgesVisited++
			if edgesVisited > config.MaxPathQueryEdges {
				return visited
			}
			next := other(e)
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return visited
}

// shortestForwardPath reconstructs one shortest chain of edges from -> to
// following outgoing edges, for use in a contradiction diagnostic's edge
// chain (spec.md §6, "Diagnostics ... a list of contradiction diagnostics
// (edge chain, location)"). It returns nil if no such path exists within
// the query bound.
func shortestForwardPath(from, to *typegraph.Node) []*typegraph.Edge {
	if from == to {
		return nil
	}
	type step struct {
		via  *typegraph.Edge
		prev *typegraph.Node
	}
	cameFrom := map[*typegraph.Node]step{from: {}}
	queue := []*typegraph.Node{from}
	edgesVisited := 0

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == to {
			break
		}
		for _, e := range n.Outgoing() {
			edgesVisited++
			if edgesVisited > config.MaxPathQueryEdges {
				return nil
			}
			if _, seen := cameFrom[e.Target]; !seen {
				cameFrom[e.Target] = step{via: e, prev: n}
				queue = append(queue, e.Target)
			}
		}
	}

	if _, ok := cameFrom[to]; !ok {
		return nil
	}
	var edges []*typegraph.Edge
	for n := to; n != from; {
		s := cameFrom[n]
		edges = append(edges, s.via)
		n = s.prev
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}
