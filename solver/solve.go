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

package solver

import "github.com/nullgraph/nullgraph/typegraph"

// Verdict is the final classification the solver assigns to one node (spec
// 4.5, "Solving").
type Verdict int

const (
	VerdictNonNull Verdict = iota
	VerdictNullable
)

func (v Verdict) String() string {
	if v == VerdictNullable {
		return "nullable"
	}
	return "non-null"
}

// NodeVerdict pairs an inferred node with its solved classification.
type NodeVerdict struct {
	Node    *typegraph.Node
	Verdict Verdict
}

// Contradiction records a node forced both nullable and non-null (spec 7):
// the caller must be able to explain both forcing paths, so both edge
// chains are kept alongside the node.
type Contradiction struct {
	Node         *typegraph.Node
	NullablePath []*typegraph.Edge // Nullable singleton -> Node
	NonNullPath  []*typegraph.Edge // Node -> NonNull singleton
}

// Result is the whole-graph solve output.
type Result struct {
	Verdicts       []NodeVerdict
	Contradictions []Contradiction
}

// Solve implements spec 4.5's reachability solve: a node is forced nullable
// if the Nullable singleton can reach it, forced non-null if it can reach
// the NonNull singleton. A node forced both ways is a contradiction and
// defaults to nullable (spec 7, "favor nullable: silence over false
// positives"); a node forced neither way defaults to non-null (spec 4.5,
// "absent any evidence, non-null is the sound assumption for
// previously-unannotated code").
func Solve(nodes []*typegraph.Node) Result {
	forcedNullable := forwardReachableSet(typegraph.NullableSingleton)
	forcedNonNull := backwardReachableSet(typegraph.NonNullSingleton)

	result := Result{}
	for _, n := range nodes {
		if typegraph.IsSpecial(n) {
			continue
		}
		nullable := forcedNullable[n]
		nonNull := forcedNonNull[n]

		switch {
		case nullable && nonNull:
			result.Contradictions = append(result.Contradictions, Contradiction{
				Node:         n,
				NullablePath: shortestForwardPath(typegraph.NullableSingleton, n),
				NonNullPath:  shortestForwardPath(n, typegraph.NonNullSingleton),
			})
			result.Verdicts = append(result.Verdicts, NodeVerdict{Node: n, Verdict: VerdictNullable})
		case nullable:
			result.Verdicts = append(result.Verdicts, NodeVerdict{Node: n, Verdict: VerdictNullable})
		default:
			result.Verdicts = append(result.Verdicts, NodeVerdict{Node: n, Verdict: VerdictNonNull})
		}
	}
	return result
}

// ForcedNullable reports whether the Nullable singleton can reach n, per
// spec 4.5, without running a whole-graph Solve - used by the test harness's
// path-query API (spec section 6).
func ForcedNullable(n *typegraph.Node) bool {
	return HasPath(typegraph.NullableSingleton, n)
}

// ForcedNonNull reports whether n can reach the NonNull singleton, the
// other half of spec 4.5's classification, again as a point query rather
// than a whole-graph solve.
func ForcedNonNull(n *typegraph.Node) bool {
	return HasPath(n, typegraph.NonNullSingleton)
}
