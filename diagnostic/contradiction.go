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

// Package diagnostic renders solver output into user-facing diagnostics
// (spec.md §6, "Diagnostics"). It reuses golang.org/x/tools/go/analysis's
// Diagnostic/RelatedInformation shapes without any of that package's
// Go-source-specific machinery (see SPEC_FULL.md §2).
package diagnostic

import (
	"fmt"
	"go/token"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/nullgraph/nullgraph/solver"
)

// Contradiction is one node forced both nullable and non-null (spec 7),
// rendered with both forcing chains as related information. similar holds
// other contradictions grouped into this one by GroupContradictions
// (SPEC_FULL §3.4).
type Contradiction struct {
	analysis.Diagnostic
	source  solver.Contradiction
	similar []Contradiction
}

// FromContradiction builds a Contradiction diagnostic from one solver
// result. Its position is the dereference site that required non-null -
// the concrete place a user would need to fix - with the edge chain that
// forced nullability supplied as related information for context.
func FromContradiction(c solver.Contradiction) Contradiction {
	pos := token.NoPos
	if len(c.NonNullPath) > 0 {
		pos = c.NonNullPath[len(c.NonNullPath)-1].Pos
	} else if len(c.NullablePath) > 0 {
		pos = c.NullablePath[len(c.NullablePath)-1].Pos
	}

	var related []analysis.RelatedInformation
	for _, e := range c.NullablePath {
		related = append(related, analysis.RelatedInformation{
			Pos:     e.Pos,
			Message: "made nullable here: " + e.Label,
		})
	}
	for _, e := range c.NonNullPath {
		related = append(related, analysis.RelatedInformation{
			Pos:     e.Pos,
			Message: "required non-null here: " + e.Label,
		})
	}

	return Contradiction{
		Diagnostic: analysis.Diagnostic{
			Pos:     pos,
			Message: fmt.Sprintf("%s is inferred both nullable and non-null; defaulting to nullable (spec 7, favor silence over a false positive)", c.Node),
			Related: related,
		},
		source: c,
	}
}

// GroupContradictions groups contradictions that share the same
// nullable-forcing chain into one diagnostic with multiple related
// locations, rather than reporting one near-identical diagnostic per
// dereference site (SPEC_FULL §3.4), grounded on the teacher's
// groupConflicts.
func GroupContradictions(cs []solver.Contradiction) []Contradiction {
	byKey := make(map[string]int) // nullable-path key -> index into grouped
	var grouped []Contradiction

	for _, c := range cs {
		d := FromContradiction(c)
		key := nullablePathKey(c)
		if key != "" {
			if idx, ok := byKey[key]; ok {
				grouped[idx].similar = append(grouped[idx].similar, d)
				continue
			}
			byKey[key] = len(grouped)
		}
		grouped = append(grouped, d)
	}
	return grouped
}

func nullablePathKey(c solver.Contradiction) string {
	if len(c.NullablePath) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range c.NullablePath {
		fmt.Fprintf(&b, "%d:%s;", e.Pos, e.Label)
	}
	return b.String()
}

// String renders the diagnostic and any grouped duplicates, mirroring the
// teacher's conflict.String() "Same nil source could also cause potential
// nil panic(s) at N other place(s)" summary.
func (c Contradiction) String() string {
	if len(c.similar) == 0 {
		return c.Message
	}
	positions := make([]string, len(c.similar))
	for i, s := range c.similar {
		positions[i] = fmt.Sprintf("%d", s.Pos)
	}
	return fmt.Sprintf("%s\n\n(Same nullable source also forces non-null at %d other place(s): %s.)",
		c.Message, len(c.similar), strings.Join(positions, ", "))
}
