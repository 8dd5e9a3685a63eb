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

// Package typegraph is the graph model (spec 3, "Edge" and "Lifecycle";
// spec section 4, module 4 "Graph model"): nodes with incoming/outgoing edge
// lists, and labeled edges carrying a provenance string and a source
// location.
//
// The graph is an arena of node records referenced by pointer, not an
// owning-pointer tree - nodes form a general directed graph and edges own
// neither endpoint (design note "Cyclic references").
package typegraph

// NullType classifies a Node. The three special classifications are
// singletons (see special.go); Inferred nodes are created on demand by an
// Arena and their eventual annotation is decided by the solver, not stored
// on the node itself.
type NullType int

const (
	Nullable NullType = iota
	NonNull
	Oblivious
	Inferred
)

func (t NullType) String() string {
	switch t {
	case Nullable:
		return "nullable"
	case NonNull:
		return "non-null"
	case Oblivious:
		return "oblivious"
	case Inferred:
		return "inferred"
	default:
		return "unknown"
	}
}

// Node is an identity object representing one nullability position (spec 3,
// "NullabilityNode"). Node values are always used by pointer; two distinct
// *Node values are never considered the same position even if their fields
// are equal, because node identity is what the type system registry's
// "same TypeWithNode instance" invariant (spec 4.1) rests on.
type Node struct {
	NullType NullType
	// DebugName is an optional human-readable label, e.g. "param#0 of Foo",
	// used only in diagnostics and test failure messages.
	DebugName string
	// Terminal marks the three special singletons: they never gain outgoing
	// edges pointing away from their fixed classification's meaning, and the
	// solver treats reaching them as fixing an inferred node's annotation.
	Terminal bool

	incoming []*Edge
	outgoing []*Edge
}

// Incoming returns the edges whose Target is this node.
func (n *Node) Incoming() []*Edge { return n.incoming }

// Outgoing returns the edges whose Source is this node.
func (n *Node) Outgoing() []*Edge { return n.outgoing }

func (n *Node) String() string {
	if n.DebugName != "" {
		return n.DebugName
	}
	return n.NullType.String()
}
