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

package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/nullgraph/nullgraph/frontend"

	nullgraph "github.com/nullgraph/nullgraph"
)

// TestMultiFileArchiveCompilesAsOneUnit exercises the "more than one file"
// shape compile alone can't reach (it accepts a single snippet with a
// single declared method): a txtar archive holds several named sections,
// each becomes its own boundtree.Tree via frontend.Parse keyed on the
// section name, and every tree is run through nullgraph.Analyzer.Run as one
// batch - the language-agnostic sibling of the teacher's real Go
// testdata/integration directories, which hold several Go source files
// making up one package under test.
func TestMultiFileArchiveCompilesAsOneUnit(t *testing.T) {
	archive := txtar.Parse([]byte(`
-- greeting.src --
string Greeting(string name) => name;
-- count.src --
int Count() { return 0; }
`))
	require.Len(t, archive.Files, 2)

	var units []nullgraph.CompilationUnit
	for _, f := range archive.Files {
		tree, flow, err := frontend.Parse(f.Name, string(f.Data))
		require.NoError(t, err, "parsing archive section %q", f.Name)
		units = append(units, nullgraph.CompilationUnit{Tree: tree, Flow: flow})
	}

	analyzer := &nullgraph.Analyzer{CurrentModule: "multi-file-harness"}
	result, err := analyzer.Run(units)
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)

	require.NotEmpty(t, result.Solve.Verdicts, "expected verdicts from both archive sections' declarations")
}
