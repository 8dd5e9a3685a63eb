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

// Command nullgraph is a thin standalone driver over the nullgraph.Analyzer
// facade (SPEC_FULL.md §2.2), grounded on cmd/nilaway/main.go: it contains
// no inference logic of its own, matching how the teacher's main.go is a
// bare wrapper over nilaway.Analyzer.
//
// Producing a real bound tree is a binder collaborator's job and is
// explicitly out of scope for this module (spec.md §1); this driver's only
// concrete collaborator is the repository's own frontend package, so its
// input file is a JSON array of named source snippets in that toy
// language rather than a generic serialized bound tree, which would need a
// wire schema no real binder here actually produces.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/nullgraph/nullgraph/frontend"

	nullgraph "github.com/nullgraph/nullgraph"
)

// unit is one named source snippet in the CLI's input file.
type unit struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON file containing an array of {path, source} compilation units")
	module := flag.String("module", "cli-input", "module name to register the parsed units under")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "nullgraph: -input is required")
		os.Exit(2)
	}

	if err := run(*inputPath, *module); err != nil {
		fmt.Fprintf(os.Stderr, "nullgraph: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, module string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	var units []unit
	if err := json.Unmarshal(raw, &units); err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}

	var compilationUnits []nullgraph.CompilationUnit
	for _, u := range units {
		tree, flow, err := frontend.Parse(u.Path, u.Source)
		if err != nil {
			return fmt.Errorf("parse %s: %w", u.Path, err)
		}
		compilationUnits = append(compilationUnits, nullgraph.CompilationUnit{Tree: tree, Flow: flow})
	}

	analyzer := &nullgraph.Analyzer{CurrentModule: module}
	result, err := analyzer.Run(compilationUnits)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	for _, v := range result.Solve.Verdicts {
		fmt.Printf("%s: %s\n", v.Node.DebugName, v.Verdict)
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(os.Stderr, "%v: %s\n", d.Pos, d.Message)
	}
	return nil
}
