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
	"encoding/gob"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/s2"
	"github.com/nullgraph/nullgraph/symbol"
)

// ExternalCache persists the declared annotations nullgraph has already
// materialized for external symbols (SPEC_FULL 2, "ExternalCache"), so a
// long-running host - an IDE server or a batch run over many compilation
// units - does not re-resolve the same library symbol's annotation on every
// unit. It is a cache of *declared* annotations only: spec.md's Non-goal
// "inference across separately compiled modules" still holds, since nothing
// here re-derives an external symbol's nullability from its body.
//
// Encoded with gob, then s2-compressed, mirroring how the teacher's
// InferredMap persists cross-package facts (inference/inferred_map.go).
type ExternalCache struct {
	entries map[string]symbol.Annotation
}

// NewExternalCache returns an empty cache.
func NewExternalCache() *ExternalCache {
	return &ExternalCache{entries: make(map[string]symbol.Annotation)}
}

// Lookup returns the cached annotation for qualifiedName, if present.
func (c *ExternalCache) Lookup(qualifiedName string) (symbol.Annotation, bool) {
	a, ok := c.entries[qualifiedName]
	return a, ok
}

// Record stores the annotation nullgraph resolved for qualifiedName.
func (c *ExternalCache) Record(qualifiedName string, annotation symbol.Annotation) {
	c.entries[qualifiedName] = annotation
}

type cacheEntry struct {
	QualifiedName string
	Annotation    symbol.Annotation
}

// Encode gob-encodes then s2-compresses the cache's contents to w, with
// entries sorted by qualified name so equal caches encode to equal bytes.
func (c *ExternalCache) Encode(w io.Writer) error {
	entries := make([]cacheEntry, 0, len(c.entries))
	for name, ann := range c.entries {
		entries = append(entries, cacheEntry{QualifiedName: name, Annotation: ann})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].QualifiedName < entries[j].QualifiedName })

	sw := s2.NewWriter(w)
	if err := gob.NewEncoder(sw).Encode(entries); err != nil {
		return fmt.Errorf("encode external cache: %w", err)
	}
	return sw.Close()
}

// DecodeExternalCache reads a cache previously written by Encode.
func DecodeExternalCache(r io.Reader) (*ExternalCache, error) {
	var entries []cacheEntry
	if err := gob.NewDecoder(s2.NewReader(r)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode external cache: %w", err)
	}

	c := NewExternalCache()
	for _, e := range entries {
		c.entries[e.QualifiedName] = e.Annotation
	}
	return c, nil
}

// RoundTrip is a convenience used by tests to verify the cache survives a
// gob+s2 encode/decode cycle intact.
func (c *ExternalCache) RoundTrip() (*ExternalCache, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return nil, err
	}
	return DecodeExternalCache(&buf)
}

// Prime pre-populates registry's external lookups from the cache: any
// symbol whose qualified name is present in c is registered before the
// builder runs, so GetSymbolType finds it without touching the binder.
func (c *ExternalCache) Prime(r *Registry, resolve func(qualifiedName string) (symbol.Symbol, bool)) {
	for name, ann := range c.entries {
		sym, ok := resolve(name)
		if !ok {
			continue
		}
		if _, already := r.bySymbol[sym]; already {
			continue
		}
		r.bySymbol[sym] = r.FromType(sym.DeclaredType(), ann)
	}
}
