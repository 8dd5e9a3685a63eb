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

// Arena is a vector of node records, referenced by pointer, per the design note
// "Cyclic references": an arena, not owning pointers, so the graph can be
// cyclic without lifetime headaches. One Arena backs the whole graph for a
// compilation unit, shared by every tree's syntax/operation visitors
// (package nullgraph's Run passes registry.Arena() to each); it is not
// synchronized, so Phase 2 must visit trees one at a time (see package
// builder's Builder doc).
type Arena struct {
	nodes []*Node
}

// NewArena returns an empty Arena.
func NewArena() *Arena {
	return &Arena{}
}

// NewInferredNode allocates a fresh Inferred node, e.g. for an unannotated
// reference-type syntax occurrence or a generic type argument with no
// explicit annotation (spec 3, TypeWithNode invariants).
func (a *Arena) NewInferredNode(debugName string) *Node {
	n := &Node{NullType: Inferred, DebugName: debugName}
	a.nodes = append(a.nodes, n)
	return n
}

// NewObliviousNode allocates a node fixed to Oblivious, used for value-type
// positions that are nevertheless materialized as their own node (e.g. the
// outer node of `Nullable<T>`, which is itself a value type - spec 4.2).
//
// Unlike the special singleton this is a distinct instance so callers can
// still hang a DebugName off it without polluting the shared singleton.
func (a *Arena) NewObliviousNode(debugName string) *Node {
	n := &Node{NullType: Oblivious, DebugName: debugName}
	a.nodes = append(a.nodes, n)
	return n
}

// Nodes returns every node this Arena has allocated, in allocation order.
func (a *Arena) Nodes() []*Node { return a.nodes }

// Len reports how many nodes this Arena has allocated.
func (a *Arena) Len() int { return len(a.nodes) }
