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

// rename is a term rewrite: a finite mapping from Ident to a replacement
// Expr, applied structurally. It backs both hpara_match's renaming of a
// parameter body's formal identifiers and the unfold branch's
// instantiation of a pattern list-segment's parameter body with concrete
// actual arguments.
type rename map[adt.Ident]adt.Expr

func newRename(ids []adt.Ident, exprs []adt.Expr) rename {
	if len(ids) != len(exprs) {
		adt.Abortf("match.rename: length mismatch (%d ids vs %d exprs)", len(ids), len(exprs))
	}
	r := make(rename, len(ids))
	for i, id := range ids {
		r[id] = exprs[i]
	}
	return r
}

func (r rename) expr(e adt.Expr) adt.Expr {
	switch x := e.(type) {
	case adt.Var:
		if repl, ok := r[x.Ident]; ok {
			return repl
		}
		return x
	case adt.Cast:
		x.X = r.expr(x.X)
		return x
	case adt.UnOp:
		x.X = r.expr(x.X)
		return x
	case adt.BinOp:
		x.X = r.expr(x.X)
		x.Y = r.expr(x.Y)
		return x
	case adt.Lfield:
		x.X = r.expr(x.X)
		return x
	case adt.Lindex:
		x.Base = r.expr(x.Base)
		x.Index = r.expr(x.Index)
		return x
	default:
		return e
	}
}

func (r rename) exprs(es []adt.Expr) []adt.Expr {
	out := make([]adt.Expr, len(es))
	for i, e := range es {
		out[i] = r.expr(e)
	}
	return out
}

func (r rename) strExp(se adt.StrExp) adt.StrExp {
	switch x := se.(type) {
	case adt.Atom:
		x.X = r.expr(x.X)
		return x
	case adt.Record:
		fields := make([]adt.FieldVal, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.FieldVal{Field: f.Field, Val: r.strExp(f.Val)}
		}
		x.Fields = fields
		return x
	case adt.Array:
		x.Size = r.expr(x.Size)
		cells := make([]adt.CellVal, len(x.Cells))
		for i, c := range x.Cells {
			cells[i] = adt.CellVal{Index: r.expr(c.Index), Val: r.strExp(c.Val)}
		}
		x.Cells = cells
		return x
	default:
		return se
	}
}

func (r rename) hpred(h adt.HPred) adt.HPred {
	switch x := h.(type) {
	case adt.PointsTo:
		x.RootExpr = r.expr(x.RootExpr)
		x.X = r.strExp(x.X)
		x.Typ = r.expr(x.Typ)
		return x
	case adt.Lseg:
		x.From = r.expr(x.From)
		x.To = r.expr(x.To)
		x.Shared = r.exprs(x.Shared)
		return x
	case adt.Dllseg:
		x.IF = r.expr(x.IF)
		x.OB = r.expr(x.OB)
		x.OF = r.expr(x.OF)
		x.IB = r.expr(x.IB)
		x.Shared = r.exprs(x.Shared)
		return x
	default:
		return h
	}
}

// hpat applies r to pat.Pred and forces the resulting pattern's ImplFlag to
// implFlag, overriding whatever pat.ImplFlag was.
func (r rename) hpat(pat adt.HPat, implFlag bool) adt.HPat {
	return adt.HPat{Pred: r.hpred(pat.Pred), ImplFlag: implFlag}
}

func (r rename) hpats(pats []adt.HPat, implFlag bool) []adt.HPat {
	out := make([]adt.HPat, len(pats))
	for i, p := range pats {
		out[i] = r.hpat(p, implFlag)
	}
	return out
}
