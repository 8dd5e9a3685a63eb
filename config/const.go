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

package config

// This file hosts non-user-configurable parameters --- these are for development and testing purposes only.

// MaxPathQueryEdges bounds the bidirectional BFS the solver runs for a single
// "is there a path from A to B" query. It exists so a pathological graph
// (e.g. a fuzzed or adversarial compilation unit) cannot make a single query
// run unbounded; in practice graphs built from real source stay orders of
// magnitude below this.
const MaxPathQueryEdges = 2_000_000

// NoInferDirective is the string that may appear in a `//` comment anywhere
// in a source snippet to prevent nullgraph from inferring annotations for
// the tree it appears in (frontend.Parse sets boundtree.Tree.NoInfer, which
// nullgraph.Run's Phase 1/2 then skip entirely) - useful for isolating unit
// tests from unrelated inference noise.
const NoInferDirective = "<nullgraph no inference>"

const modulePathPrefix = "github.com/nullgraph"

// SelfModulePathPrefix is the module prefix for nullgraph's own packages.
// typesystem.Registry.GetSymbolType checks it when materializing an
// external symbol, so a trusted-nonnull allowlist entry (SPEC_FULL 3.2)
// never accidentally loosens checking on the module's own code - that
// allowlist exists for third-party annotation gaps, not for nullgraph
// itself.
const SelfModulePathPrefix = modulePathPrefix + "/nullgraph"

// DirLevelsToPrintForLocations controls the number of enclosing path segments
// kept when diagnostic.FromRecoveredPanic reports the tree a construct was
// unsupported in, mirroring the teacher's equivalent constant for trigger
// locations.
const DirLevelsToPrintForLocations = 1
