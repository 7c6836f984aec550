// Copyright 2020 CUE Authors
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

package adt

import (
	"fmt"
	"sort"
)

// IdentKind distinguishes an Ident as primed (logical, existential, eligible for
// unification) or unprimed (a rigid program variable).
type IdentKind uint8

const (
	// Unprimed identifiers are rigid: exp_match never binds them.
	Unprimed IdentKind = iota
	// Primed identifiers are logical variables eligible for unification.
	Primed
)

// An Ident is a named, kinded identifier. Two idents are the same variable
// iff Name, Kind and Gen are all equal; Gen lets two distinct fresh idents
// share a Name without colliding.
type Ident struct {
	Name string
	Kind IdentKind
	Gen  uint64
}

// Primed reports whether id is eligible for unification.
func (id Ident) Primed() bool { return id.Kind == Primed }

func (id Ident) String() string {
	p := ""
	if id.Kind == Primed {
		p = "'"
	}
	if id.Gen != 0 {
		return fmt.Sprintf("%s%s#%d", p, id.Name, id.Gen)
	}
	return p + id.Name
}

// Equal reports whether id and other denote the same variable.
func (id Ident) Equal(other Ident) bool {
	return id.Name == other.Name && id.Kind == other.Kind && id.Gen == other.Gen
}

// SortIdents orders ids by Name, then Kind, then Gen, for deterministic
// output (e.g. printing a Subst's domain).
func SortIdents(ids []Ident) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Gen < b.Gen
	})
}
