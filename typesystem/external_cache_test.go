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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nullgraph/nullgraph/symbol"
	"github.com/nullgraph/nullgraph/typegraph"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubField is the smallest symbol.Field implementation needed to drive
// Prime without pulling in a real binder.
type stubField struct {
	name string
	typ  symbol.Type
}

func (s *stubField) Name() string                          { return s.name }
func (s *stubField) Kind() symbol.Kind                     { return symbol.KindField }
func (s *stubField) Container() symbol.Symbol              { return nil }
func (s *stubField) DeclaredType() symbol.Type             { return s.typ }
func (s *stubField) DeclaredAnnotation() symbol.Annotation { return symbol.AnnotationNone }
func (s *stubField) Module() string                        { return "external-lib" }

func TestExternalCacheRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewExternalCache()
	c.Record("Widget.Name", symbol.AnnotationAnnotated)
	c.Record("Widget.Id", symbol.AnnotationNotAnnotated)

	out, err := c.RoundTrip()
	require.NoError(t, err)

	got, ok := out.Lookup("Widget.Name")
	require.True(t, ok)
	require.Equal(t, symbol.AnnotationAnnotated, got)

	got, ok = out.Lookup("Widget.Id")
	require.True(t, ok)
	require.Equal(t, symbol.AnnotationNotAnnotated, got)

	_, ok = out.Lookup("Widget.Missing")
	require.False(t, ok)
}

func TestExternalCacheEncodeIsDeterministic(t *testing.T) {
	t.Parallel()

	c := NewExternalCache()
	c.Record("A", symbol.AnnotationAnnotated)
	c.Record("B", symbol.AnnotationNotAnnotated)
	c.Record("C", symbol.AnnotationNone)

	var first []byte
	for i := 0; i < 5; i++ {
		var buf bytes.Buffer
		require.NoError(t, c.Encode(&buf))
		require.NotEmpty(t, buf.Bytes())
		if first == nil {
			first = append([]byte(nil), buf.Bytes()...)
		}
		require.Equal(t, first, buf.Bytes())

		decoded, err := DecodeExternalCache(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		for _, name := range []string{"A", "B", "C"} {
			want, _ := c.Lookup(name)
			got, ok := decoded.Lookup(name)
			require.True(t, ok)
			require.Equal(t, want, got)
		}
	}
}

func TestExternalCachePrime(t *testing.T) {
	t.Parallel()

	cache := NewExternalCache()
	cache.Record("external-lib.Widget.Name", symbol.AnnotationAnnotated)

	arena := typegraph.NewArena()
	r := NewRegistry("harness-snippet", arena)

	field := &stubField{name: "Name", typ: &symbol.Named{Name: "string"}}
	cache.Prime(r, func(qualifiedName string) (symbol.Symbol, bool) {
		if qualifiedName == "external-lib.Widget.Name" {
			return field, true
		}
		return nil, false
	})

	twn := r.GetSymbolType(field)
	require.NotNil(t, twn.Node)
}
