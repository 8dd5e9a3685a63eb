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

// Package harness implements spec.md §6's test harness API on top of the
// frontend toy-language parser and the nullgraph pipeline: compile one
// snippet declaring a single top-level method, then answer point-to-point
// reachability queries against its parameters and return type, grounded on
// nilaway_test.go/nilawaytest's role in the teacher (drive the analyzer over
// a snippet, then assert on what it inferred).
package harness

import (
	"fmt"

	"github.com/nullgraph/nullgraph/boundtree"
	"github.com/nullgraph/nullgraph/frontend"
	"github.com/nullgraph/nullgraph/solver"
	"github.com/nullgraph/nullgraph/typegraph"
	"github.com/nullgraph/nullgraph/typesystem"

	nullgraph "github.com/nullgraph/nullgraph"
)

const treePath = "<snippet>"

// compiled holds the resolved parameter/return nodes for the snippet's sole
// declared method, after running the full pipeline over it.
type compiled struct {
	registry *typesystem.Registry
	params   []typesystem.TypeWithNode
	ret      typesystem.TypeWithNode
}

// compile parses code as a single-file compilation unit, runs it through
// nullgraph.Analyzer, and locates its one top-level method declaration
// (spec.md §6, "the single declared method"). It fails if the snippet
// declares zero or more than one top-level method.
func compile(code string) (*compiled, error) {
	tree, flow, err := frontend.Parse(treePath, code)
	if err != nil {
		return nil, fmt.Errorf("harness: parse: %w", err)
	}
	// tree.Methods may also hold synthetic declarations the frontend
	// injected for array indexers (frontend.buildIndexer); those never carry
	// a body, so the snippet's single real declared method is the one
	// method here with a Body or ExpressionBody.
	var target *boundtree.MethodDeclaration
	for _, m := range tree.Methods {
		if m.Body == nil && m.ExpressionBody == nil {
			continue
		}
		if target != nil {
			return nil, fmt.Errorf("harness: snippet must declare exactly one top-level method with a body, found more than one")
		}
		target = m
	}
	if target == nil {
		return nil, fmt.Errorf("harness: snippet declares no top-level method with a body")
	}

	analyzer := &nullgraph.Analyzer{CurrentModule: "harness-snippet"}
	result, err := analyzer.Run([]nullgraph.CompilationUnit{{Tree: tree, Flow: flow}})
	if err != nil {
		return nil, fmt.Errorf("harness: analyze: %w", err)
	}

	c := &compiled{registry: result.Registry}
	for _, p := range target.Symbol.Parameters() {
		if result.Registry.IsAliasedParameter(p) {
			continue
		}
		c.params = append(c.params, result.Registry.GetSymbolType(p))
	}
	if target.ReturnType != nil {
		c.ret = result.Registry.GetSymbolType(target.Symbol)
	}
	return c, nil
}

// HasPathFromParameterToReturnType compiles code and returns true iff any
// parameter node of the snippet's single declared method has a directed
// path to that method's return node (spec.md §6).
func HasPathFromParameterToReturnType(code string) (bool, error) {
	c, err := compile(code)
	if err != nil {
		return false, err
	}
	if c.ret.Node == nil {
		return false, fmt.Errorf("harness: method has no return type")
	}
	for _, p := range c.params {
		if p.Node == nil {
			continue
		}
		if solver.HasPath(p.Node, c.ret.Node) {
			return true, nil
		}
	}
	return false, nil
}

// PathExpectations pins down the three point-to-point queries spec.md §6's
// CheckPaths asserts; a nil field means "don't assert this one" (the "?"
// suffix in the spec text).
type PathExpectations struct {
	ReturnNullable       *bool
	ReturnDependsOnInput *bool
	InputMustBeNonNull   *bool
}

// CheckPaths compiles code and reports a mismatch for any non-nil
// expectation in want:
//   - ReturnNullable: is there a path from the Nullable singleton to the
//     return node?
//   - ReturnDependsOnInput: does any parameter node reach the return node?
//   - InputMustBeNonNull: does any parameter node reach the NonNull
//     singleton?
func CheckPaths(code string, want PathExpectations) error {
	c, err := compile(code)
	if err != nil {
		return err
	}

	if want.ReturnNullable != nil {
		if c.ret.Node == nil {
			return fmt.Errorf("harness: method has no return type")
		}
		got := solver.HasPath(typegraph.NullableSingleton, c.ret.Node)
		if got != *want.ReturnNullable {
			return fmt.Errorf("harness: Nullable->return = %v, want %v", got, *want.ReturnNullable)
		}
	}

	if want.ReturnDependsOnInput != nil {
		got := false
		if c.ret.Node != nil {
			for _, p := range c.params {
				if p.Node != nil && solver.HasPath(p.Node, c.ret.Node) {
					got = true
					break
				}
			}
		}
		if got != *want.ReturnDependsOnInput {
			return fmt.Errorf("harness: parameter->return = %v, want %v", got, *want.ReturnDependsOnInput)
		}
	}

	if want.InputMustBeNonNull != nil {
		got := false
		for _, p := range c.params {
			if p.Node != nil && solver.HasPath(p.Node, typegraph.NonNullSingleton) {
				got = true
				break
			}
		}
		if got != *want.InputMustBeNonNull {
			return fmt.Errorf("harness: parameter->NonNull = %v, want %v", got, *want.InputMustBeNonNull)
		}
	}

	return nil
}

// Bool is a convenience constructor for PathExpectations' *bool fields.
func Bool(v bool) *bool { return &v }
