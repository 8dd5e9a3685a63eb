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

package typegraph

import "go/token"

// Edge is a directed assignability/dereference constraint (spec 3, "Edge").
// Source -> Target means "if Source is nullable, Target must tolerate
// nullable". A dereference constraint is modeled as an edge into the
// NonNull singleton: `x -> NonNull`.
type Edge struct {
	Source *Node
	Target *Node
	// Label is a short provenance string, e.g. "argument to parameter
	// 'input'" or "dereference of receiver", surfaced in contradiction
	// diagnostics' edge chains.
	Label string
	// Pos is the source location that caused this edge to be emitted.
	Pos token.Pos
}

// EdgeSpec is an edge not yet linked into its endpoints' incoming/outgoing
// lists - the unit the builder's deferred queue accumulates (spec 3,
// "Builder buffering"). Operation-visiting code that runs per-tree only ever
// produces EdgeSpecs; only Link, called by the single committer, mutates
// shared Node state.
type EdgeSpec struct {
	Source *Node
	Target *Node
	Label  string
	Pos    token.Pos
}

// Spec builds an EdgeSpec. It performs no mutation and is therefore safe to
// call concurrently from independent per-tree builders.
func Spec(source, target *Node, label string, pos token.Pos) EdgeSpec {
	return EdgeSpec{Source: source, Target: target, Label: label, Pos: pos}
}

// Link realizes a buffered EdgeSpec: it appends the resulting Edge to
// Source's outgoing list and Target's incoming list and returns it. Edges
// are never removed - the edge set grows monotonically within a
// compilation (spec 3, "Lifecycle"). Link must only be called by the single
// serial committer that owns the shared graph (spec section 5); calling it
// concurrently from multiple goroutines racing on the same endpoints is not
// safe.
func Link(spec EdgeSpec) *Edge {
	e := &Edge{Source: spec.Source, Target: spec.Target, Label: spec.Label, Pos: spec.Pos}
	spec.Source.outgoing = append(spec.Source.outgoing, e)
	spec.Target.incoming = append(spec.Target.incoming, e)
	return e
}
