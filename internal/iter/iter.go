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

// Package iter supplies the one concrete implementation of the PropIter
// interface that internal/match's spatial matcher treats as an external
// collaborator. It is a zipper over a slice of heap predicates, grounded on
// the index-walking style of
// internal/core/adt/unify.go's completeAllArcs ("for arcPos := 0; arcPos <
// len(n.node.Arcs); arcPos++") rather than a linked cursor.
package iter

import "github.com/sheaplang/sheap/internal/adt"

// Prop is a normalised symbolic heap: an ordered spatial conjunction plus an
// opaque pure part that the matcher never inspects.
type Prop struct {
	Spatial []adt.HPred
	Pure    interface{}
}

// Running is the (σ, V) pair a Filter has produced for the currently
// focused predicate, threaded alongside the iterator's Current.
type Running struct {
	Subst  adt.Subst
	Vars   adt.VarSet
	didSet bool
}

// Filter inspects the focused predicate h under the running (σ, V) and
// either succeeds, returning an updated (σ, V), or fails.
type Filter func(h adt.HPred, sigma adt.Subst, v adt.VarSet) (adt.Subst, adt.VarSet, bool)

// Iter is a zipper over Prop.Spatial: pos indexes the currently focused
// predicate. A nil *Iter denotes ⊥ (no focus), the result New/Next/Find
// return when there is nothing left to focus on.
type Iter struct {
	prop    Prop
	pos     int
	running Running
}

// New focuses on the first spatial predicate of p, or returns (nil, false)
// if p has no spatial predicates.
func New(p Prop) (*Iter, bool) {
	if len(p.Spatial) == 0 {
		return nil, false
	}
	return &Iter{prop: p, pos: 0}, true
}

// Next advances it by one position, or returns (nil, false) if it was
// already at the last predicate.
func (it *Iter) Next() (*Iter, bool) {
	if it.pos+1 >= len(it.prop.Spatial) {
		return nil, false
	}
	return &Iter{prop: it.prop, pos: it.pos + 1}, true
}

// Current yields the focused predicate and the running substitution/
// free-variable set threaded by the matcher.
func (it *Iter) Current() (adt.HPred, adt.Subst, adt.VarSet) {
	return it.prop.Spatial[it.pos], it.running.Subst, it.running.Vars
}

// Seed returns a copy of it with the running (σ, V) pair set explicitly,
// without changing the focused position. The matcher calls this on entry to
// a backtracking search, before the first Find, and again after each Next
// (which does not carry the running pair), to carry in the substitution and
// free-variable set accumulated so far.
func (it *Iter) Seed(sigma adt.Subst, v adt.VarSet) *Iter {
	return &Iter{
		prop:    it.prop,
		pos:     it.pos,
		running: Running{Subst: sigma, Vars: v, didSet: true},
	}
}

// Find advances from the current position to the next focus whose predicate
// passes filter, carrying the filter's (σ', V') on the returned iterator's
// Current. It returns (nil, false) if no remaining predicate passes.
func Find(it *Iter, filter Filter) (*Iter, bool) {
	for i := it.pos; i < len(it.prop.Spatial); i++ {
		h := it.prop.Spatial[i]
		sigma, v, ok := filter(h, it.running.Subst, it.running.Vars)
		if !ok {
			continue
		}
		return &Iter{
			prop:    it.prop,
			pos:     i,
			running: Running{Subst: sigma, Vars: v, didSet: true},
		}, true
	}
	return nil, false
}

// RemoveCurrToProp drops the focused predicate and reifies the iterator to
// a Prop.
func (it *Iter) RemoveCurrToProp() Prop {
	spatial := make([]adt.HPred, 0, len(it.prop.Spatial)-1)
	spatial = append(spatial, it.prop.Spatial[:it.pos]...)
	spatial = append(spatial, it.prop.Spatial[it.pos+1:]...)
	return Prop{Spatial: spatial, Pure: it.prop.Pure}
}

// ToProp reifies it without removing the focused predicate.
func (it *Iter) ToProp() Prop {
	return it.prop
}
