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

// ExpMatch decides whether there exists σ'' with dom(σ'') ⊆ V such that
// e1 = e2[σ ⋈ σ''], returning σ' = σ ⋈ σ'' and V' = V \ dom(σ''). e1 is
// always the concrete (focused) side; e2 is the pattern side, the only one
// that may abstract over a primed variable in V.
func ExpMatch(e1 adt.Expr, sigma adt.Subst, v adt.VarSet, e2 adt.Expr) (adt.Subst, adt.VarSet, bool) {
	// Rule 1: e2 is a primed var still free in V — bind unconditionally.
	if vr, ok := e2.(adt.Var); ok && vr.Ident.Primed() && v.Has(vr.Ident) {
		return sigma.Extend(vr.Ident, e1), v.Remove(vr.Ident), true
	}

	// Rule 2: e2 a var not in V, or either side a leaf (Const/Sizeof/Lvar) —
	// succeed iff e1 equals σ(e2) syntactically.
	if isLeaf(e1) || isLeaf(e2) {
		return matchGround(e1, sigma, v, e2)
	}

	// Rule 3: e1 is a bare Var while rule 1 did not fire — patterns do not
	// abstract over expression position on the left.
	if _, ok := e1.(adt.Var); ok {
		return adt.Subst{}, adt.VarSet{}, false
	}

	switch x2 := e2.(type) {
	case adt.Cast:
		x1, ok := e1.(adt.Cast)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.X, sigma, v, x2.X)

	case adt.UnOp:
		x1, ok := e1.(adt.UnOp)
		if !ok || x1.Op != x2.Op {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.X, sigma, v, x2.X)

	case adt.BinOp:
		x1, ok := e1.(adt.BinOp)
		if !ok || x1.Op != x2.Op {
			return adt.Subst{}, adt.VarSet{}, false
		}
		sigma1, v1, ok := ExpMatch(x1.X, sigma, v, x2.X)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.Y, sigma1, v1, x2.Y)

	case adt.Lfield:
		x1, ok := e1.(adt.Lfield)
		if !ok || x1.Field != x2.Field {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.X, sigma, v, x2.X)

	case adt.Lindex:
		x1, ok := e1.(adt.Lindex)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		sigma1, v1, ok := ExpMatch(x1.Base, sigma, v, x2.Base)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.Index, sigma1, v1, x2.Index)
	}

	// Rule 9: all other cross-constructor pairs fail.
	return adt.Subst{}, adt.VarSet{}, false
}

// isLeaf reports whether e is one of the ground/atomic forms rule 2 treats
// as non-recursive: Var (not covered by rule 1), Const, Sizeof, Lvar.
func isLeaf(e adt.Expr) bool {
	switch e.(type) {
	case adt.Var, adt.Const, adt.Sizeof, adt.Lvar:
		return true
	}
	return false
}

func matchGround(e1 adt.Expr, sigma adt.Subst, v adt.VarSet, e2 adt.Expr) (adt.Subst, adt.VarSet, bool) {
	resolved := sigma.Apply(e2)
	if exprSyntacticEqual(e1, resolved) {
		return sigma, v, true
	}
	return adt.Subst{}, adt.VarSet{}, false
}

func exprSyntacticEqual(a, b adt.Expr) bool {
	if ca, ok := a.(adt.Const); ok {
		if cb, ok := b.(adt.Const); ok {
			return ca.Equal(cb)
		}
		return false
	}
	return a.String() == b.String()
}

// ExpListMatch zips e1s against e2s and folds ExpMatch left-to-right. A
// length mismatch is a contract violation: callers must never present
// two lists of differing length.
func ExpListMatch(e1s []adt.Expr, sigma adt.Subst, v adt.VarSet, e2s []adt.Expr) (adt.Subst, adt.VarSet, bool) {
	if len(e1s) != len(e2s) {
		adt.Abortf("match.ExpListMatch: length mismatch (%d vs %d)", len(e1s), len(e2s))
	}
	for i := range e1s {
		var ok bool
		sigma, v, ok = ExpMatch(e1s[i], sigma, v, e2s[i])
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
	}
	return sigma, v, true
}

// StrExpMatch dispatches on SE constructors: atoms reduce to ExpMatch;
// records use FselMatch; arrays match sizes then cells with IselMatch.
func StrExpMatch(cfg *Config, se1 adt.StrExp, sigma adt.Subst, v adt.VarSet, se2 adt.StrExp) (adt.Subst, adt.VarSet, bool) {
	switch x2 := se2.(type) {
	case adt.Atom:
		x1, ok := se1.(adt.Atom)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return ExpMatch(x1.X, sigma, v, x2.X)

	case adt.Record:
		x1, ok := se1.(adt.Record)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return FselMatch(cfg, x1.Fields, sigma, v, x2.Fields)

	case adt.Array:
		x1, ok := se1.(adt.Array)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		sigma1, v1, ok := ExpMatch(x1.Size, sigma, v, x2.Size)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return IselMatch(cfg, x1.Cells, sigma1, v1, x2.Cells)
	}
	return adt.Subst{}, adt.VarSet{}, false
}

// FselMatch merges two sorted field lists. l1 is the focused (concrete)
// side, l2 the pattern side. Field-forgetting tolerance is gated by
// cfg.AbsStruct; this is a deliberate, documented soundness gap, not a
// bug: a pattern record may be matched against a focused record
// with additional fields, and — with AbsStruct enabled and l2 empty — even
// when every field has been forgotten.
func FselMatch(cfg *Config, l1 []adt.FieldVal, sigma adt.Subst, v adt.VarSet, l2 []adt.FieldVal) (adt.Subst, adt.VarSet, bool) {
	switch {
	case len(l1) == 0 && len(l2) == 0:
		return sigma, v, true
	case len(l1) == 0 && len(l2) != 0:
		return adt.Subst{}, adt.VarSet{}, false
	case len(l1) != 0 && len(l2) == 0:
		if cfg != nil && cfg.AbsStruct > 0 {
			return sigma, v, true
		}
		return adt.Subst{}, adt.VarSet{}, false
	}

	f1, s1 := l1[0], l1[1:]
	f2, s2 := l2[0], l2[1:]

	switch {
	case f1.Field == f2.Field:
		sigma1, v1, ok := StrExpMatch(cfg, f1.Val, sigma, v, f2.Val)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return FselMatch(cfg, s1, sigma1, v1, s2)

	case f1.Field < f2.Field && cfg != nil && cfg.AbsStruct > 0:
		// Left-field forgetting: drop f1 and continue.
		return FselMatch(cfg, s1, sigma, v, l2)

	default:
		return adt.Subst{}, adt.VarSet{}, false
	}
}

// IselMatch walks both array-cell lists in lock-step. Indices are not
// unified — i2, the pattern side's index, must already be ground under σ;
// a variable of V occurring in i2[σ] is a caller contract violation, not a
// match failure.
func IselMatch(cfg *Config, c1 []adt.CellVal, sigma adt.Subst, v adt.VarSet, c2 []adt.CellVal) (adt.Subst, adt.VarSet, bool) {
	if len(c1) != len(c2) {
		return adt.Subst{}, adt.VarSet{}, false
	}
	for i := range c1 {
		idx2 := sigma.Apply(c2[i].Index)
		if exprMentionsV(idx2, v) {
			adt.Abortf("match.IselMatch: pattern index %v still mentions a free variable after applying σ", c2[i].Index)
		}
		if !exprSyntacticEqual(c1[i].Index, idx2) {
			return adt.Subst{}, adt.VarSet{}, false
		}
		var ok bool
		sigma, v, ok = StrExpMatch(cfg, c1[i].Val, sigma, v, c2[i].Val)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
	}
	return sigma, v, true
}

// exprMentionsV reports whether e contains a reference to any identifier in
// v, after the caller has already applied σ (used by IselMatch's and the
// empty/unfold branches' "fully instantiated" sanity checks).
func exprMentionsV(e adt.Expr, v adt.VarSet) bool {
	switch x := e.(type) {
	case adt.Var:
		return v.Has(x.Ident)
	case adt.Cast:
		return exprMentionsV(x.X, v)
	case adt.UnOp:
		return exprMentionsV(x.X, v)
	case adt.BinOp:
		return exprMentionsV(x.X, v) || exprMentionsV(x.Y, v)
	case adt.Lfield:
		return exprMentionsV(x.X, v)
	case adt.Lindex:
		return exprMentionsV(x.Base, v) || exprMentionsV(x.Index, v)
	default:
		return false
	}
}
