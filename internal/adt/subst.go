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

// Subst is an immutable finite map from primed Ident to Expr. Every mutator
// returns a new Subst: a small persistent value type threaded through
// backtracking search, rather than a shared mutable map.
type Subst struct {
	// bindings is never mutated after construction; extend/join/filter
	// always copy.
	bindings map[Ident]Expr
}

// EmptySubst is the substitution that binds nothing.
func EmptySubst() Subst {
	return Subst{}
}

// Apply resolves e one level through σ: a bound Var is replaced by its
// binding (which is not itself further resolved — bindings in this matcher
// are always already fully resolved expressions).
func (s Subst) Apply(e Expr) Expr {
	if v, ok := e.(Var); ok {
		if r, ok := s.bindings[v.Ident]; ok {
			return r
		}
	}
	return e
}

// Lookup returns the expression bound to id, if any.
func (s Subst) Lookup(id Ident) (Expr, bool) {
	e, ok := s.bindings[id]
	return e, ok
}

// Extend returns σ ⋈ {id ↦ e}. It aborts (fatal) if id is already bound to a
// syntactically different expression: callers (the unifier) must never
// attempt to rebind an identifier to something new.
func (s Subst) Extend(id Ident, e Expr) Subst {
	if old, ok := s.bindings[id]; ok {
		if !exprEqualSyntactic(old, e) {
			Abortf("adt.Subst.Extend: %v already bound to %v, cannot rebind to %v", id, old, e)
		}
		return s
	}
	return s.with(id, e)
}

func (s Subst) with(id Ident, e Expr) Subst {
	m := make(map[Ident]Expr, len(s.bindings)+1)
	for k, v := range s.bindings {
		m[k] = v
	}
	m[id] = e
	return Subst{bindings: m}
}

// Join merges σ and other, aborting (fatal) if they disagree on a common
// identifier.
func (s Subst) Join(other Subst) Subst {
	out := s
	for id, e := range other.bindings {
		out = out.Extend(id, e)
	}
	return out
}

// Filter returns the restriction of σ to identifiers for which keep returns
// true.
func (s Subst) Filter(keep func(Ident) bool) Subst {
	m := make(map[Ident]Expr, len(s.bindings))
	for k, v := range s.bindings {
		if keep(k) {
			m[k] = v
		}
	}
	return Subst{bindings: m}
}

// Domain returns the identifiers bound by σ.
func (s Subst) Domain() []Ident {
	ids := make([]Ident, 0, len(s.bindings))
	for k := range s.bindings {
		ids = append(ids, k)
	}
	return ids
}

// Len returns the number of bindings in σ.
func (s Subst) Len() int { return len(s.bindings) }

func exprEqualSyntactic(a, b Expr) bool {
	return a.String() == b.String()
}

// A VarSet is the free-variable set V: a small set of primed Idents, kept as
// a slice in insertion order rather than a map, since these sets are small
// and frequently copied during backtracking.
type VarSet struct {
	ids []Ident
}

// NewVarSet builds a VarSet from ids, aborting (fatal) on duplicates: callers
// must not put duplicates in V.
func NewVarSet(ids ...Ident) VarSet {
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[i].Equal(ids[j]) {
				Abortf("adt.NewVarSet: duplicate identifier %v in free-variable set", ids[i])
			}
		}
	}
	return VarSet{ids: append([]Ident(nil), ids...)}
}

// Has reports whether id ∈ V.
func (v VarSet) Has(id Ident) bool {
	for _, x := range v.ids {
		if x.Equal(id) {
			return true
		}
	}
	return false
}

// Remove returns V \ {id}.
func (v VarSet) Remove(id Ident) VarSet {
	out := make([]Ident, 0, len(v.ids))
	for _, x := range v.ids {
		if !x.Equal(id) {
			out = append(out, x)
		}
	}
	return VarSet{ids: out}
}

// RemoveAll returns V \ other.
func (v VarSet) RemoveAll(other VarSet) VarSet {
	out := v
	for _, id := range other.ids {
		out = out.Remove(id)
	}
	return out
}

// Add returns V ∪ {id}.
func (v VarSet) Add(id Ident) VarSet {
	if v.Has(id) {
		return v
	}
	out := append([]Ident(nil), v.ids...)
	out = append(out, id)
	return VarSet{ids: out}
}

// AddAll returns V ∪ other.
func (v VarSet) AddAll(other VarSet) VarSet {
	out := v
	for _, id := range other.ids {
		out = out.Add(id)
	}
	return out
}

// Len returns |V|.
func (v VarSet) Len() int { return len(v.ids) }

// Idents returns the elements of V.
func (v VarSet) Idents() []Ident { return append([]Ident(nil), v.ids...) }
