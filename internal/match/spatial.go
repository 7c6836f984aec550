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

import (
	"github.com/sheaplang/sheap/internal/adt"
	"github.com/sheaplang/sheap/internal/iter"
)

// Phi is the caller-supplied side condition over a candidate leftover heap
// and substitution. It is treated as a black box returning true or
// false only; it must not fail.
type Phi func(leftover iter.Prop, sigma adt.Subst) bool

// AlwaysTrue is the trivial side condition used when a caller has no
// additional pure constraint to check.
func AlwaysTrue(iter.Prop, adt.Subst) bool { return true }

// PropMatchWithImpl is the public entry point of the spatial matcher: it
// decides whether p entails an instance of the pattern head::tail, and if
// so returns a witnessing substitution closed over v and the leftover heap
// not consumed by the match.
func PropMatchWithImpl(cfg *Config, p iter.Prop, phi Phi, v adt.VarSet, head adt.HPat, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	return propMatchWithImplSub(cfg, p, phi, adt.EmptySubst(), v, head, tail)
}

// propMatchWithImplSub is the internal form that threads a starting
// substitution, used both by PropMatchWithImpl (with the empty
// substitution) and recursively by the matcher itself.
func propMatchWithImplSub(cfg *Config, p iter.Prop, phi Phi, sigma adt.Subst, v adt.VarSet, head adt.HPat, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	it, ok := iter.New(p)
	if !ok {
		pats := append([]adt.HPat{head}, tail...)
		return instantiateToEmp(cfg, p, phi, sigma, v, pats)
	}
	return iterMatchWithImpl(cfg, it, phi, sigma, v, head, tail)
}

// iterMatchWithImpl drives backtracking search over the focused spatial
// conjunction, dispatching on the pattern predicate kind.
func iterMatchWithImpl(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, head adt.HPat, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	switch hp := head.Pred.(type) {
	case adt.PointsTo:
		return matchPointsTo(cfg, it, phi, sigma, v, hp, tail)
	case adt.Lseg:
		return matchLseg(cfg, it, phi, sigma, v, head.ImplFlag, hp, tail)
	case adt.Dllseg:
		return matchDllseg(cfg, it, phi, sigma, v, head.ImplFlag, hp, tail)
	default:
		adt.Abortf("match.iterMatchWithImpl: unknown predicate kind %T", head.Pred)
		panic("unreachable")
	}
}

func closeOverV(cfg *Config, sigma adt.Subst, v adt.VarSet) adt.Subst {
	for _, id := range v.Idents() {
		sigma = sigma.Extend(id, adt.Var{Ident: cfg.fresh(id.Name)})
	}
	return sigma
}

// commit finalizes a successful focus-match when the pattern tail is
// exhausted: it closes the leftover free variables over fresh identifiers,
// removes the focused predicate, and succeeds iff phi holds for the
// resulting leftover heap and extended substitution.
func commit(cfg *Config, found *iter.Iter, phi Phi, sigma2 adt.Subst, v2 adt.VarSet) (adt.Subst, iter.Prop, bool) {
	sigmaExt := closeOverV(cfg, sigma2, v2)
	leftover := found.RemoveCurrToProp()
	if phi(leftover, sigmaExt) {
		return sigmaExt, leftover, true
	}
	return adt.Subst{}, iter.Prop{}, false
}

func fail() (adt.Subst, iter.Prop, bool) {
	return adt.Subst{}, iter.Prop{}, false
}

// matchPointsTo finds a focus whose
// predicate is a PointsTo with equal type and unifiable root/value, then
// either commit (tail exhausted) or backtrack between consuming this focus
// and continuing the tail, or advancing to the next candidate focus.
func matchPointsTo(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, pt2 adt.PointsTo, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	filter := func(h adt.HPred, s adt.Subst, vv adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		pt1, ok := h.(adt.PointsTo)
		if !ok || !exprSyntacticEqual(pt1.Typ, pt2.Typ) {
			return adt.Subst{}, adt.VarSet{}, false
		}
		s1, v1, ok := ExpMatch(pt1.RootExpr, s, vv, pt2.RootExpr)
		if !ok {
			return adt.Subst{}, adt.VarSet{}, false
		}
		return StrExpMatch(cfg, pt1.X, s1, v1, pt2.X)
	}

	cur := it.Seed(sigma, v)
	for {
		found, ok := iter.Find(cur, filter)
		if !ok {
			return fail()
		}
		_, sigma2, v2 := found.Current()
		if len(tail) == 0 {
			return commit(cfg, found, phi, sigma2, v2)
		}
		residual := found.RemoveCurrToProp()
		if sR, pR, ok := propMatchWithImplSub(cfg, residual, phi, sigma2, v2, tail[0], tail[1:]); ok {
			return sR, pR, true
		}
		nxt, ok := found.Next()
		if !ok {
			return fail()
		}
		cur = nxt.Seed(sigma, v)
	}
}

// matchLseg tries the focus-match branch
// (with its own internal consume/advance backtracking), and if that fails
// entirely, try the empty branch (PE only) and the unfold branch (subject
// to implFlag), in that order.
func matchLseg(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, implFlag bool, seg adt.Lseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	if sR, pR, ok := tryLsegFocus(cfg, it, phi, sigma, v, seg, tail); ok {
		return sR, pR, true
	}
	if !implFlag {
		return fail()
	}
	switch seg.K {
	case adt.NE:
		// NE segments cannot collapse to empty: only unfold.
		return tryLsegUnfold(cfg, it, phi, sigma, v, seg, tail)
	default: // PE
		if sR, pR, ok := tryLsegEmpty(cfg, it, phi, sigma, v, seg, tail); ok {
			return sR, pR, true
		}
		return tryLsegUnfold(cfg, it, phi, sigma, v, seg, tail)
	}
}

func tryLsegFocus(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Lseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	filter := func(h adt.HPred, s adt.Subst, vv adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		l1, ok := h.(adt.Lseg)
		if !ok || !l1.K.Subsumes(seg.K) || !HparaMatch(cfg, true, l1.Para, seg.Para) {
			return adt.Subst{}, adt.VarSet{}, false
		}
		e1 := append([]adt.Expr{l1.From, l1.To}, l1.Shared...)
		e2 := append([]adt.Expr{seg.From, seg.To}, seg.Shared...)
		return ExpListMatch(e1, s, vv, e2)
	}

	cur := it.Seed(sigma, v)
	for {
		found, ok := iter.Find(cur, filter)
		if !ok {
			return fail()
		}
		_, sigma2, v2 := found.Current()
		if len(tail) == 0 {
			return commit(cfg, found, phi, sigma2, v2)
		}
		residual := found.RemoveCurrToProp()
		if sR, pR, ok := propMatchWithImplSub(cfg, residual, phi, sigma2, v2, tail[0], tail[1:]); ok {
			return sR, pR, true
		}
		nxt, ok := found.Next()
		if !ok {
			return fail()
		}
		cur = nxt.Seed(sigma, v)
	}
}

// tryLsegEmpty is do_emp_lseg: discharge a PE pattern segment against the
// empty heap by proving its two ends coincide, without consuming any
// predicate of the focused heap.
func tryLsegEmpty(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Lseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	from := sigma.Apply(seg.From)
	if exprMentionsV(from, v) {
		return fail()
	}
	sigma2, v2, ok := ExpMatch(from, sigma, v, seg.To)
	if !ok {
		return fail()
	}
	if len(tail) == 0 {
		sigmaExt := closeOverV(cfg, sigma2, v2)
		leftover := it.ToProp()
		if phi(leftover, sigmaExt) {
			return sigmaExt, leftover, true
		}
		return fail()
	}
	return propMatchWithImplSub(cfg, it.ToProp(), phi, sigma2, v2, tail[0], tail[1:])
}

// tryLsegUnfold is do_para_lseg: unfold the parameter body, generating
// fresh existentials for its evars, instantiating root/next/shared with the
// pattern's actual from/to/shared arguments, and prepending the result to
// the tail with ImplFlag forced to true unconditionally, regardless of the
// unfolded segment's own impl_flag.
func tryLsegUnfold(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Lseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	para := seg.Para
	renIds := append([]adt.Ident{para.Root, para.Next}, para.Svars...)
	renExprs := append([]adt.Expr{seg.From, seg.To}, seg.Shared...)
	ren := newRename(renIds, renExprs)

	fresh := make([]adt.Ident, len(para.Evars))
	newV := v
	for i, ev := range para.Evars {
		fresh[i] = cfg.fresh(ev.Name)
		ren[ev] = adt.Var{Ident: fresh[i]}
		newV = newV.Add(fresh[i])
	}

	body := ren.hpats(para.Body, true)
	newPats := append(body, tail...)

	sR, pR, ok := iterMatchWithImpl(cfg, it, phi, sigma, newV, newPats[0], newPats[1:])
	if !ok {
		return fail()
	}
	return filterFresh(sR, fresh), pR, true
}

func filterFresh(sigma adt.Subst, fresh []adt.Ident) adt.Subst {
	return sigma.Filter(func(id adt.Ident) bool {
		for _, f := range fresh {
			if f.Equal(id) {
				return false
			}
		}
		return true
	})
}

// matchDllseg is the doubly-linked
// analogue of matchLseg: unification is performed on the 4+|shared|
// expression list [iF;oB;oF;iB] ++ shared.
func matchDllseg(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, implFlag bool, seg adt.Dllseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	if sR, pR, ok := tryDllsegFocus(cfg, it, phi, sigma, v, seg, tail); ok {
		return sR, pR, true
	}
	if !implFlag {
		return fail()
	}
	switch seg.K {
	case adt.NE:
		return tryDllsegUnfold(cfg, it, phi, sigma, v, seg, tail)
	default: // PE
		if sR, pR, ok := tryDllsegEmpty(cfg, it, phi, sigma, v, seg, tail); ok {
			return sR, pR, true
		}
		return tryDllsegUnfold(cfg, it, phi, sigma, v, seg, tail)
	}
}

func tryDllsegFocus(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Dllseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	filter := func(h adt.HPred, s adt.Subst, vv adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		l1, ok := h.(adt.Dllseg)
		if !ok || !l1.K.Subsumes(seg.K) || !HparaDllMatch(cfg, true, l1.ParaDll, seg.ParaDll) {
			return adt.Subst{}, adt.VarSet{}, false
		}
		e1 := append([]adt.Expr{l1.IF, l1.OB, l1.OF, l1.IB}, l1.Shared...)
		e2 := append([]adt.Expr{seg.IF, seg.OB, seg.OF, seg.IB}, seg.Shared...)
		return ExpListMatch(e1, s, vv, e2)
	}

	cur := it.Seed(sigma, v)
	for {
		found, ok := iter.Find(cur, filter)
		if !ok {
			return fail()
		}
		_, sigma2, v2 := found.Current()
		if len(tail) == 0 {
			return commit(cfg, found, phi, sigma2, v2)
		}
		residual := found.RemoveCurrToProp()
		if sR, pR, ok := propMatchWithImplSub(cfg, residual, phi, sigma2, v2, tail[0], tail[1:]); ok {
			return sR, pR, true
		}
		nxt, ok := found.Next()
		if !ok {
			return fail()
		}
		cur = nxt.Seed(sigma, v)
	}
}

// tryDllsegEmpty requires iF and oB to be fully instantiated, then that the
// pair [iF[σ];oB[σ]] unifies against the pattern's [oF;iB].
func tryDllsegEmpty(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Dllseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	ifr := sigma.Apply(seg.IF)
	obr := sigma.Apply(seg.OB)
	if exprMentionsV(ifr, v) || exprMentionsV(obr, v) {
		return fail()
	}
	sigma2, v2, ok := ExpListMatch([]adt.Expr{ifr, obr}, sigma, v, []adt.Expr{seg.OF, seg.IB})
	if !ok {
		return fail()
	}
	if len(tail) == 0 {
		sigmaExt := closeOverV(cfg, sigma2, v2)
		leftover := it.ToProp()
		if phi(leftover, sigmaExt) {
			return sigmaExt, leftover, true
		}
		return fail()
	}
	return propMatchWithImplSub(cfg, it.ToProp(), phi, sigma2, v2, tail[0], tail[1:])
}

// tryDllsegUnfold additionally requires iF to be fully instantiated and
// performs exp_match(iF[σ], σ, V, iB) — for a single unfolded cell, the
// entry reached going forward must be the entry reached going backward —
// before unfolding the cell body. The cell's root (Cell) is instantiated
// with iF, its stored backward/forward link fields (Blink/Flink) with the
// pattern's oB/oF actual arguments.
func tryDllsegUnfold(cfg *Config, it *iter.Iter, phi Phi, sigma adt.Subst, v adt.VarSet, seg adt.Dllseg, tail []adt.HPat) (adt.Subst, iter.Prop, bool) {
	ifr := sigma.Apply(seg.IF)
	if exprMentionsV(ifr, v) {
		return fail()
	}
	sigma1, v1, ok := ExpMatch(ifr, sigma, v, seg.IB)
	if !ok {
		return fail()
	}

	para := seg.ParaDll
	renIds := append([]adt.Ident{para.Cell, para.Blink, para.Flink}, para.SvarsDll...)
	renExprs := append([]adt.Expr{seg.IF, seg.OB, seg.OF}, seg.Shared...)
	ren := newRename(renIds, renExprs)

	fresh := make([]adt.Ident, len(para.EvarsDll))
	newV := v1
	for i, ev := range para.EvarsDll {
		fresh[i] = cfg.fresh(ev.Name)
		ren[ev] = adt.Var{Ident: fresh[i]}
		newV = newV.Add(fresh[i])
	}

	body := ren.hpats(para.BodyDll, true)
	newPats := append(body, tail...)

	sR, pR, ok := iterMatchWithImpl(cfg, it, phi, sigma1, newV, newPats[0], newPats[1:])
	if !ok {
		return fail()
	}
	return filterFresh(sR, fresh), pR, true
}

// instantiateToEmp collapses every remaining pattern against the empty
// heap. Each entry must carry ImplFlag=true; PointsTo and NE
// segments are rejected outright, and PE segments require their start-side
// expressions to be fully instantiated before the two ends are unified.
func instantiateToEmp(cfg *Config, p iter.Prop, phi Phi, sigma adt.Subst, v adt.VarSet, pats []adt.HPat) (adt.Subst, iter.Prop, bool) {
	if len(pats) == 0 {
		if phi(p, sigma) {
			return sigma, p, true
		}
		return fail()
	}

	pat, rest := pats[0], pats[1:]
	if !pat.ImplFlag {
		return fail()
	}

	switch h := pat.Pred.(type) {
	case adt.PointsTo:
		return fail()

	case adt.Lseg:
		if h.K == adt.NE {
			return fail()
		}
		from := sigma.Apply(h.From)
		if exprMentionsV(from, v) {
			return fail()
		}
		sigma2, v2, ok := ExpMatch(from, sigma, v, h.To)
		if !ok {
			return fail()
		}
		return instantiateToEmp(cfg, p, phi, sigma2, v2, rest)

	case adt.Dllseg:
		if h.K == adt.NE {
			return fail()
		}
		ifr := sigma.Apply(h.IF)
		obr := sigma.Apply(h.OB)
		if exprMentionsV(ifr, v) || exprMentionsV(obr, v) {
			return fail()
		}
		sigma2, v2, ok := ExpListMatch([]adt.Expr{ifr, obr}, sigma, v, []adt.Expr{h.OF, h.IB})
		if !ok {
			return fail()
		}
		return instantiateToEmp(cfg, p, phi, sigma2, v2, rest)

	default:
		adt.Abortf("match.instantiateToEmp: unknown predicate kind %T", pat.Pred)
		panic("unreachable")
	}
}
