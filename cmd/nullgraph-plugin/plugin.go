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

// Package main implements golangci-lint's module plugin interface for
// nullgraph, grounded on cmd/gclplugin/gclplugin.go one-for-one at the
// registration layer. It differs from the teacher at the analyzer-body
// layer for an unavoidable reason (SPEC_FULL.md §2, "we do not use
// analysis.Analyzer/analysis.Pass ... themselves"): the teacher's
// analysis.Analyzer walks the Go source golangci-lint already parsed for
// it, but nullgraph's engine consumes a pre-bound tree from a binder
// collaborator that has nothing to do with the Go package golangci-lint is
// currently linting. This plugin bridges that gap the only way a
// go/analysis-shaped host allows: settings name a side-channel bound-tree
// unit file (the same {path, source} JSON envelope cmd/nullgraph reads),
// and the wrapped analysis.Analyzer reports nullgraph's findings against
// the pass it's handed without inspecting that pass's own files.
package main

import (
	"encoding/json"
	"fmt"
	"go/token"
	"os"

	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/nullgraph/nullgraph/frontend"

	nullgraph "github.com/nullgraph/nullgraph"
)

func init() {
	register.Plugin("nullgraph", New)
}

// New returns the golangci-lint plugin that wraps nullgraph.Analyzer.
func New(settings any) (register.LinterPlugin, error) {
	s, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expect nullgraph's configuration to be a map from string to string, got %T", settings)
	}
	conf := make(map[string]string, len(s))
	for k, v := range s {
		vStr, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expect nullgraph's configuration value for %q to be a string, got %T", k, v)
		}
		conf[k] = vStr
	}

	return &Plugin{conf: conf}, nil
}

// Plugin is the nullgraph plugin wrapper for golangci-lint.
type Plugin struct {
	conf map[string]string
}

// BuildAnalyzers returns the single analysis.Analyzer that drives
// nullgraph's pipeline over the unit file named in the plugin settings.
func (p *Plugin) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	unitFile := p.conf["unit-file"]
	if unitFile == "" {
		return nil, fmt.Errorf("nullgraph plugin: settings must set \"unit-file\" to a compilation-unit JSON file")
	}

	analyzer := &analysis.Analyzer{
		Name: "nullgraph",
		Doc:  "Runs nullgraph's nullability flow-graph inference over the bound tree named by \"unit-file\" and reports contradiction diagnostics.",
		Run:  func(pass *analysis.Pass) (interface{}, error) { return run(pass, unitFile) },
	}
	return []*analysis.Analyzer{analyzer}, nil
}

// GetLoadMode returns the load mode of the nullgraph plugin. nullgraph never
// inspects the pass's own Go files, but LoadModeTypesInfo is requested
// anyway to stay on the one register.LoadMode* constant this repository has
// direct evidence for.
func (p *Plugin) GetLoadMode() string { return register.LoadModeTypesInfo }

type unit struct {
	Path   string `json:"path"`
	Source string `json:"source"`
}

func run(pass *analysis.Pass, unitFile string) (interface{}, error) {
	raw, err := os.ReadFile(unitFile)
	if err != nil {
		return nil, fmt.Errorf("nullgraph: read %s: %w", unitFile, err)
	}
	var units []unit
	if err := json.Unmarshal(raw, &units); err != nil {
		return nil, fmt.Errorf("nullgraph: parse %s: %w", unitFile, err)
	}

	var compilationUnits []nullgraph.CompilationUnit
	for _, u := range units {
		tree, flow, err := frontend.Parse(u.Path, u.Source)
		if err != nil {
			return nil, fmt.Errorf("nullgraph: parse %s: %w", u.Path, err)
		}
		compilationUnits = append(compilationUnits, nullgraph.CompilationUnit{Tree: tree, Flow: flow})
	}

	analyzer := &nullgraph.Analyzer{CurrentModule: unitFile}
	result, err := analyzer.Run(compilationUnits)
	if err != nil {
		return nil, fmt.Errorf("nullgraph: analyze: %w", err)
	}

	pos := token.NoPos
	if len(pass.Files) > 0 {
		pos = pass.Files[0].Pos()
	}
	for _, d := range result.Diagnostics {
		d := d
		d.Pos = pos
		pass.Report(d)
	}
	return nil, nil
}
