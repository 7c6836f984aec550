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

package match

import "github.com/sheaplang/sheap/internal/adt"

// Mode controls the tolerance generate_todos_from_strexp applies when
// comparing two records' field sets.
type Mode int

const (
	// Exact requires the two records to carry exactly the same field set.
	Exact Mode = iota
	// LFieldForget allows the left record to carry extra fields the right
	// one lacks.
	LFieldForget
	// RFieldForget allows the right record to carry extra fields the left
	// one lacks.
	RFieldForget
)

// Pair is an (e1,e2) correspondence obligation or commitment.
type Pair struct {
	E1, E2 adt.Expr
}

// Update extracts, from whatever heap representation sigmaTodo holds, the
// rooted predicates at e1 and e2 (nil if absent), returning the updated
// remainder. find_partial_iso and find_partial_iso_from_two_sigmas each
// supply their own Update over a different sigmaTodo shape, letting
// genericFindPartialIso serve both the one-heap and two-heap cases.
type Update func(e1, e2 adt.Expr, sigmaTodo interface{}) (h1, h2 adt.HPred, sigmaTodo2 interface{})

func pairPresent(corres []Pair, e1, e2 adt.Expr) bool {
	for _, c := range corres {
		if exprSyntacticEqual(c.E1, e1) && exprSyntacticEqual(c.E2, e2) {
			return true
		}
	}
	return false
}

func appearsAnywhere(corres []Pair, e adt.Expr) bool {
	for _, c := range corres {
		if exprSyntacticEqual(c.E1, e) || exprSyntacticEqual(c.E2, e) {
			return true
		}
	}
	return false
}

func corresRelated(corres []Pair, e1, e2 adt.Expr) bool {
	if pairPresent(corres, e1, e2) {
		return true
	}
	return !appearsAnywhere(corres, e1) && !appearsAnywhere(corres, e2) && exprSyntacticEqual(e1, e2)
}

func extensible(corres []Pair, e1, e2 adt.Expr) bool {
	return !appearsAnywhere(corres, e1) && !appearsAnywhere(corres, e2) && !exprSyntacticEqual(e1, e2)
}

// genericFindPartialIso is the shared recursive core behind find_partial_iso
// and find_partial_iso_from_two_sigmas. Termination follows from
// sigmaTodo's monotonic shrinking: update only ever removes predicates. A
// step that adds new todos (from the two predicates it found) also removes
// those predicates from sigmaTodo; every other step consumes one todo and
// adds none.
func genericFindPartialIso(cfg *Config, mode Mode, update Update, corres []Pair, sigma1, sigma2 []adt.HPred, todos []Pair, sigmaTodo interface{}) ([]Pair, []adt.HPred, []adt.HPred, interface{}, bool) {
	if len(todos) == 0 {
		return corres, sigma1, sigma2, sigmaTodo, true
	}

	head, rest := todos[0], todos[1:]
	e1, e2 := head.E1, head.E2

	if corresRelated(corres, e1, e2) {
		if !pairPresent(corres, e1, e2) {
			corres = append(corres, Pair{e1, e2})
		}
		return genericFindPartialIso(cfg, mode, update, corres, sigma1, sigma2, rest, sigmaTodo)
	}

	if !extensible(corres, e1, e2) {
		return nil, nil, nil, nil, false
	}

	h1, h2, sigmaTodo2 := update(e1, e2, sigmaTodo)

	switch {
	case h1 == nil && h2 == nil:
		corres = append(corres, Pair{e1, e2})
		return genericFindPartialIso(cfg, mode, update, corres, sigma1, sigma2, rest, sigmaTodo2)

	case h1 == nil || h2 == nil:
		return nil, nil, nil, nil, false
	}

	switch p1 := h1.(type) {
	case adt.PointsTo:
		p2, ok := h2.(adt.PointsTo)
		if !ok || !exprSyntacticEqual(p1.Typ, p2.Typ) {
			return nil, nil, nil, nil, false
		}
		newTodos, ok := GenerateTodosFromStrExp(mode, p1.X, p2.X)
		if !ok {
			return nil, nil, nil, nil, false
		}
		corres = append(corres, Pair{e1, e2})
		sigma1 = append(sigma1, h1)
		sigma2 = append(sigma2, h2)
		return genericFindPartialIso(cfg, mode, update, corres, sigma1, sigma2, append(newTodos, rest...), sigmaTodo2)

	case adt.Lseg:
		p2, ok := h2.(adt.Lseg)
		if !ok || p1.K != p2.K || !HparaIso(cfg, p1.Para, p2.Para) {
			return nil, nil, nil, nil, false
		}
		newTodos := []Pair{{p1.From, p2.From}, {p1.To, p2.To}}
		newTodos = append(newTodos, zipPairs(p1.Shared, p2.Shared)...)
		corres = append(corres, Pair{e1, e2})
		sigma1 = append(sigma1, h1)
		sigma2 = append(sigma2, h2)
		return genericFindPartialIso(cfg, mode, update, corres, sigma1, sigma2, append(newTodos, rest...), sigmaTodo2)

	case adt.Dllseg:
		p2, ok := h2.(adt.Dllseg)
		if !ok || p1.K != p2.K || !HparaDllIso(cfg, p1.ParaDll, p2.ParaDll) {
			return nil, nil, nil, nil, false
		}
		newTodos := []Pair{{p1.IF, p2.IF}, {p1.OB, p2.OB}, {p1.OF, p2.OF}, {p1.IB, p2.IB}}
		newTodos = append(newTodos, zipPairs(p1.Shared, p2.Shared)...)
		corres = append(corres, Pair{e1, e2})
		sigma1 = append(sigma1, h1)
		sigma2 = append(sigma2, h2)
		return genericFindPartialIso(cfg, mode, update, corres, sigma1, sigma2, append(newTodos, rest...), sigmaTodo2)

	default:
		return nil, nil, nil, nil, false
	}
}

func zipPairs(e1s, e2s []adt.Expr) []Pair {
	if len(e1s) != len(e2s) {
		adt.Abortf("match.zipPairs: shared-variable arity mismatch (%d vs %d)", len(e1s), len(e2s))
	}
	out := make([]Pair, len(e1s))
	for i := range e1s {
		out[i] = Pair{e1s[i], e2s[i]}
	}
	return out
}

// FindPartialIso instantiates genericFindPartialIso with an Update that
// extracts both sides of each todo from the same heap sigma, removing each
// predicate as it is consumed.
func FindPartialIso(cfg *Config, mode Mode, eq EqPred, sigma []adt.HPred, todos []Pair) ([]Pair, []adt.HPred, []adt.HPred, []adt.HPred, bool) {
	update := func(e1, e2 adt.Expr, st interface{}) (adt.HPred, adt.HPred, interface{}) {
		rem := st.([]adt.HPred)
		var h1, h2 adt.HPred
		if got, rest, ok := SigmaRemoveHpred(eq, rem, e1); ok {
			h1 = got
			rem = rest
		}
		if got, rest, ok := SigmaRemoveHpred(eq, rem, e2); ok {
			h2 = got
			rem = rest
		}
		return h1, h2, rem
	}

	corres, sigma1, sigma2, leftover, ok := genericFindPartialIso(cfg, mode, update, nil, nil, nil, todos, sigma)
	if !ok {
		return nil, nil, nil, nil, false
	}
	return corres, sigma1, sigma2, leftover.([]adt.HPred), true
}

// TwoSigmas is the sigmaTodo shape FindPartialIsoFromTwoSigmas threads: an
// independent remaining heap for each side of the correspondence.
type TwoSigmas struct {
	S1, S2 []adt.HPred
}

// FindPartialIsoFromTwoSigmas is the two-heap counterpart of FindPartialIso:
// e1's predicate is sought in sigma1, e2's in sigma2.
func FindPartialIsoFromTwoSigmas(cfg *Config, mode Mode, eq EqPred, sigma1, sigma2 []adt.HPred, todos []Pair) ([]Pair, []adt.HPred, []adt.HPred, TwoSigmas, bool) {
	update := func(e1, e2 adt.Expr, st interface{}) (adt.HPred, adt.HPred, interface{}) {
		ts := st.(TwoSigmas)
		var h1, h2 adt.HPred
		if got, rest, ok := SigmaRemoveHpred(eq, ts.S1, e1); ok {
			h1 = got
			ts.S1 = rest
		}
		if got, rest, ok := SigmaRemoveHpred(eq, ts.S2, e2); ok {
			h2 = got
			ts.S2 = rest
		}
		return h1, h2, ts
	}

	corres, out1, out2, leftover, ok := genericFindPartialIso(cfg, mode, update, nil, nil, nil, todos, TwoSigmas{sigma1, sigma2})
	if !ok {
		return nil, nil, nil, TwoSigmas{}, false
	}
	return corres, out1, out2, leftover.(TwoSigmas), true
}

// GenerateTodosFromStrExp walks two structured-expression values emitting
// new correspondence obligations from matching atom positions: atoms
// contribute their expression pair directly, records are merged field-by-
// field honouring mode's forgetting tolerance, and arrays require equal
// size and cardinality before walking cells in lock-step.
func GenerateTodosFromStrExp(mode Mode, se1, se2 adt.StrExp) ([]Pair, bool) {
	switch x1 := se1.(type) {
	case adt.Atom:
		x2, ok := se2.(adt.Atom)
		if !ok {
			return nil, false
		}
		return []Pair{{x1.X, x2.X}}, true

	case adt.Record:
		x2, ok := se2.(adt.Record)
		if !ok {
			return nil, false
		}
		return generateTodosFromFel(mode, x1.Fields, x2.Fields)

	case adt.Array:
		x2, ok := se2.(adt.Array)
		if !ok || !exprSyntacticEqual(x1.Size, x2.Size) || len(x1.Cells) != len(x2.Cells) {
			return nil, false
		}
		return generateTodosFromIel(mode, x1.Cells, x2.Cells)

	default:
		return nil, false
	}
}

// generateTodosFromFel is generate_todos_from_strexp's record-field helper
// (the source's "fel"): it merges two sorted field lists, tolerating a
// surplus left- or right-side field only in the matching forgetting mode.
func generateTodosFromFel(mode Mode, l1, l2 []adt.FieldVal) ([]Pair, bool) {
	switch {
	case len(l1) == 0 && len(l2) == 0:
		return nil, true
	case len(l1) == 0 && len(l2) != 0:
		return nil, false
	case len(l1) != 0 && len(l2) == 0:
		if mode == LFieldForget {
			return nil, true
		}
		return nil, false
	}

	f1, s1 := l1[0], l1[1:]
	f2, s2 := l2[0], l2[1:]

	switch {
	case f1.Field == f2.Field:
		head, ok := GenerateTodosFromStrExp(mode, f1.Val, f2.Val)
		if !ok {
			return nil, false
		}
		tail, ok := generateTodosFromFel(mode, s1, s2)
		if !ok {
			return nil, false
		}
		return append(head, tail...), true

	case f1.Field < f2.Field && mode == LFieldForget:
		return generateTodosFromFel(mode, s1, l2)

	case f1.Field > f2.Field && mode == RFieldForget:
		return generateTodosFromFel(mode, l1, s2)

	default:
		return nil, false
	}
}

// generateTodosFromIel is generate_todos_from_strexp's array-cell helper
// (the source's "iel"): cells are already known equal in count by the
// caller's cardinality check, and are walked in lock-step with indices
// compared syntactically rather than unified.
func generateTodosFromIel(mode Mode, c1, c2 []adt.CellVal) ([]Pair, bool) {
	var out []Pair
	for i := range c1 {
		if !exprSyntacticEqual(c1[i].Index, c2[i].Index) {
			return nil, false
		}
		sub, ok := GenerateTodosFromStrExp(mode, c1[i].Val, c2[i].Val)
		if !ok {
			return nil, false
		}
		out = append(out, sub...)
	}
	return out, true
}
