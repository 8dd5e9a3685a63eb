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

package frontend

import "go/token"

// flowOracle is the frontend's boundtree.NonNullFlow: proven records the
// positions of SymbolRef occurrences the parser proved dominated by an
// explicit null check while it walked the statement list (design note
// "Non-null flow" - the parser computes this once, up front, rather than
// the builder re-deriving it from the bound tree).
type flowOracle struct {
	proven map[token.Pos]bool
}

func (f *flowOracle) IsNonNullAt(pos token.Pos) bool { return f.proven[pos] }
