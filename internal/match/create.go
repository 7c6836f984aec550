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

// exprSubst rewrites whole subexpressions by syntactic-textual identity,
// unlike rename (which only ever replaces bare identifiers): parameter
// synthesis assigns fresh identifiers to arbitrary corresponding source
// expressions, not just variables, so the substitution has to match at
// every node, not only at Var leaves.
type exprSubst map[string]adt.Expr

func (s exprSubst) apply(e adt.Expr) adt.Expr {
	if repl, ok := s[e.String()]; ok {
		return repl
	}
	switch x := e.(type) {
	case adt.Cast:
		x.X = s.apply(x.X)
		return x
	case adt.UnOp:
		x.X = s.apply(x.X)
		return x
	case adt.BinOp:
		x.X = s.apply(x.X)
		x.Y = s.apply(x.Y)
		return x
	case adt.Lfield:
		x.X = s.apply(x.X)
		return x
	case adt.Lindex:
		x.Base = s.apply(x.Base)
		x.Index = s.apply(x.Index)
		return x
	default:
		return e
	}
}

func (s exprSubst) exprs(es []adt.Expr) []adt.Expr {
	out := make([]adt.Expr, len(es))
	for i, e := range es {
		out[i] = s.apply(e)
	}
	return out
}

func (s exprSubst) strExp(se adt.StrExp) adt.StrExp {
	switch x := se.(type) {
	case adt.Atom:
		x.X = s.apply(x.X)
		return x
	case adt.Record:
		fields := make([]adt.FieldVal, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.FieldVal{Field: f.Field, Val: s.strExp(f.Val)}
		}
		x.Fields = fields
		return x
	case adt.Array:
		x.Size = s.apply(x.Size)
		cells := make([]adt.CellVal, len(x.Cells))
		for i, c := range x.Cells {
			cells[i] = adt.CellVal{Index: s.apply(c.Index), Val: s.strExp(c.Val)}
		}
		x.Cells = cells
		return x
	default:
		return se
	}
}

func (s exprSubst) hpred(h adt.HPred) adt.HPred {
	switch x := h.(type) {
	case adt.PointsTo:
		x.RootExpr = s.apply(x.RootExpr)
		x.X = s.strExp(x.X)
		x.Typ = s.apply(x.Typ)
		return x
	case adt.Lseg:
		x.From = s.apply(x.From)
		x.To = s.apply(x.To)
		x.Shared = s.exprs(x.Shared)
		return x
	case adt.Dllseg:
		x.IF = s.apply(x.IF)
		x.OB = s.apply(x.OB)
		x.OF = s.apply(x.OF)
		x.IB = s.apply(x.IB)
		x.Shared = s.exprs(x.Shared)
		return x
	default:
		return h
	}
}

func (s exprSubst) hpats(pats []adt.HPat) []adt.HPat {
	out := make([]adt.HPat, len(pats))
	for i, p := range pats {
		out[i] = adt.HPat{Pred: s.hpred(p.Pred), ImplFlag: p.ImplFlag}
	}
	return out
}

func liftHpats(pats []adt.HPat) []adt.HPat {
	out := make([]adt.HPat, len(pats))
	for i, p := range pats {
		out[i] = adt.HPat{Pred: HpredLiftToPe(p.Pred), ImplFlag: p.ImplFlag}
	}
	return out
}

func isConstExpr(e adt.Expr) bool {
	_, ok := e.(adt.Const)
	return ok
}

func exprInList(es []adt.Expr, e adt.Expr) bool {
	for _, x := range es {
		if exprSyntacticEqual(x, e) {
			return true
		}
	}
	return false
}

// genericParaCreate fabricates a canonical parameter body:
//  1. For every (e1,e2) in corres where e1 and e2 are not both the same
//     constant, assign a fresh primed identifier.
//  2. Partition those not in elist1 by whether e1 = e2 (shared, becoming
//     svars) or not (existential, becoming evars).
//  3. Build a renaming e1 → Var(fresh) and apply it to the PE-lifted body1.
//
// It also returns, parallel to svars, the original source expression each
// svar was assigned to — the "es_shared" actual-parameter list hpara_create
// and hpara_dll_create hand back to their caller.
func genericParaCreate(cfg *Config, corres []Pair, body1 []adt.HPat, elist1 []adt.Expr) (svars, evars []adt.Ident, svarsSource []adt.Expr, body []adt.HPat, idOf map[string]adt.Ident) {
	idOf = make(map[string]adt.Ident, len(corres))
	subst := make(exprSubst, len(corres))

	for _, c := range corres {
		if isConstExpr(c.E1) && isConstExpr(c.E2) && exprSyntacticEqual(c.E1, c.E2) {
			continue
		}
		fresh := cfg.fresh("p")
		idOf[c.E1.String()] = fresh
		subst[c.E1.String()] = adt.Var{Ident: fresh}

		if exprInList(elist1, c.E1) {
			continue
		}
		if exprSyntacticEqual(c.E1, c.E2) {
			svars = append(svars, fresh)
			svarsSource = append(svarsSource, c.E1)
		} else {
			evars = append(evars, fresh)
		}
	}

	body = subst.hpats(liftHpats(body1))
	return svars, evars, svarsSource, body, idOf
}

func lookupAssignedID(idOf map[string]adt.Ident, e adt.Expr) adt.Ident {
	id, ok := idOf[e.String()]
	if !ok {
		adt.Abortf("match.genericParaCreate: no identifier assigned to %v during parameter synthesis", e)
	}
	return id
}

// HparaCreate synthesises a singly-linked parameter body from a
// correspondence, fixing root1 and next1's fresh identifiers as Para.Root
// and Para.Next.
func HparaCreate(cfg *Config, corres []Pair, body1 []adt.HPat, root1, next1 adt.Expr) (*adt.Para, []adt.Expr) {
	elist1 := []adt.Expr{root1, next1}
	svars, evars, esShared, body, idOf := genericParaCreate(cfg, corres, body1, elist1)

	para := &adt.Para{
		Root:  lookupAssignedID(idOf, root1),
		Next:  lookupAssignedID(idOf, next1),
		Svars: svars,
		Evars: evars,
		Body:  body,
	}
	return para, esShared
}

// HparaDllCreate is the doubly-linked analogue of HparaCreate, fixing
// cell1, blink1, flink1's fresh identifiers as ParaDll.Cell/Blink/Flink.
func HparaDllCreate(cfg *Config, corres []Pair, body1 []adt.HPat, cell1, blink1, flink1 adt.Expr) (*adt.ParaDll, []adt.Expr) {
	elist1 := []adt.Expr{cell1, blink1, flink1}
	svars, evars, esShared, body, idOf := genericParaCreate(cfg, corres, body1, elist1)

	para := &adt.ParaDll{
		Cell:     lookupAssignedID(idOf, cell1),
		Blink:    lookupAssignedID(idOf, blink1),
		Flink:    lookupAssignedID(idOf, flink1),
		SvarsDll: svars,
		EvarsDll: evars,
		BodyDll:  body,
	}
	return para, esShared
}
