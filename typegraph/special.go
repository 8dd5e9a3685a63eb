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

// NullableSingleton, NonNullSingleton and ObliviousSingleton are the three
// special nodes named in spec 3: interned once per process and shared by
// every Arena. They are terminal - the solver never re-derives their
// classification, only propagates reachability through and to them.
var (
	NullableSingleton  = &Node{NullType: Nullable, DebugName: "Nullable", Terminal: true}
	NonNullSingleton   = &Node{NullType: NonNull, DebugName: "NonNull", Terminal: true}
	ObliviousSingleton = &Node{NullType: Oblivious, DebugName: "Oblivious", Terminal: true}
)

// IsSpecial reports whether n is one of the three interned singletons.
func IsSpecial(n *Node) bool {
	return n == NullableSingleton || n == NonNullSingleton || n == ObliviousSingleton
}
