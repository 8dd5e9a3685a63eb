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

package typesystem

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
)

// shape is a plain-value snapshot of a TypeWithNode tree. *typegraph.Node is
// an identity object (two Nodes are never equal by value, only by pointer -
// see typegraph.Node's doc), so a structural diff has to compare this
// exported-fields projection instead of the TypeWithNode itself.
type shape struct {
	Type     string
	NullType string
	Terminal bool
	Args     []shape
}

func shapeOf(twn TypeWithNode) shape {
	var s shape
	if twn.Type != nil {
		s.Type = twn.Type.String()
	}
	if twn.Node != nil {
		s.NullType = twn.Node.NullType.String()
		s.Terminal = twn.Node.Terminal
	}
	for _, a := range twn.Args {
		s.Args = append(s.Args, shapeOf(a))
	}
	return s
}

func TestFromTypeStructuralShape(t *testing.T) {
	arena := typegraph.NewArena()
	registry := NewRegistry("mod", arena)

	str := &symbol.Named{Name: "string"}
	listOfString := &symbol.Named{Name: "List", Args: []symbol.Type{str}}

	tests := []struct {
		name       string
		typ        symbol.Type
		annotation symbol.Annotation
		want       shape
	}{
		{
			name:       "annotated reference type gets a nullable terminal outer node",
			typ:        str,
			annotation: symbol.AnnotationAnnotated,
			want:       shape{Type: "string", NullType: "nullable", Terminal: true},
		},
		{
			name:       "not-annotated reference type gets a non-null terminal outer node",
			typ:        str,
			annotation: symbol.AnnotationNotAnnotated,
			want:       shape{Type: "string", NullType: "non-null", Terminal: true},
		},
		{
			name:       "unannotated generic argument gets the shared oblivious child node",
			typ:        listOfString,
			annotation: symbol.AnnotationNone,
			want: shape{
				Type:     "List<string>",
				NullType: "oblivious",
				Terminal: true,
				Args: []shape{
					{Type: "string", NullType: "oblivious", Terminal: true},
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := shapeOf(registry.FromType(tc.typ, tc.annotation))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("FromType shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
