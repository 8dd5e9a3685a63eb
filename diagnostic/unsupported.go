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

package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/nullgraph/nullgraph/config"
)

// FromRecoveredPanic turns a recovered per-tree panic into a diagnostic
// rather than aborting the whole run (SPEC_FULL §1.1: a panicking tree
// yields an "unsupported construct" diagnostic for that tree only, and the
// run continues with the remaining trees). unit identifies the tree that
// failed, e.g. a file path; it is trimmed to config.DirLevelsToPrintForLocations
// enclosing directories so a deeply-nested path doesn't dominate the message.
func FromRecoveredPanic(unit string, recovered any) analysis.Diagnostic {
	return analysis.Diagnostic{
		Pos:     token.NoPos,
		Message: fmt.Sprintf("unsupported construct in %s: %v", trimLocation(unit), recovered),
	}
}

// trimLocation keeps only the last config.DirLevelsToPrintForLocations
// enclosing directories of path plus its final component, the way the
// teacher's DirLevelsToPrintForTriggers trims trigger locations.
func trimLocation(path string) string {
	parts := strings.Split(path, "/")
	keep := config.DirLevelsToPrintForLocations + 1
	if len(parts) <= keep {
		return path
	}
	return ".../" + strings.Join(parts[len(parts)-keep:], "/")
}
