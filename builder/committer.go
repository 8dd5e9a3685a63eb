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

package builder

import (
	"errors"
	"sort"

	"github.com/nullgraph/nullgraph/typesystem"
)

// ErrCancelled is returned by Commit when the supplied CancelFunc reports
// cancellation before every builder has been flushed.
var ErrCancelled = errors.New("builder: build cancelled")

// CancelFunc is a cooperative cancellation check (spec section 5): checked
// between top-level tree visits and at the start of each builder commit.
// Partial commits are never observable because each Builder's Flush is
// applied in full before the next cancellation check.
type CancelFunc func() bool

// Committer flushes a batch of per-tree Builders into one Registry, in a
// stable order so the resulting graph is deterministic regardless of the
// order in which those builders were produced.
type Committer struct {
	Registry *typesystem.Registry
}

// NewCommitter returns a Committer that commits into registry.
func NewCommitter(registry *typesystem.Registry) *Committer {
	return &Committer{Registry: registry}
}

// Commit flushes every builder into c.Registry, ordered by a stable sort on
// TreePath (spec section 5, "the committer orders flushes by a stable sort
// on tree path so the resulting graph is deterministic regardless of build
// order"). If cancel is non-nil and reports true before a given
// builder is flushed, Commit stops and returns ErrCancelled; builders
// already flushed remain committed since each Flush is atomic.
func (c *Committer) Commit(builders []*Builder, cancel CancelFunc) error {
	ordered := make([]*Builder, len(builders))
	copy(ordered, builders)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].TreePath < ordered[j].TreePath })

	for _, b := range ordered {
		if cancel != nil && cancel() {
			return ErrCancelled
		}
		b.Flush(c.Registry)
	}
	return nil
}
