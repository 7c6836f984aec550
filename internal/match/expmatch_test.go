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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sheaplang/sheap/internal/adt"
)

func primed(name string) adt.Ident  { return adt.Ident{Name: name, Kind: adt.Primed} }
func pvar(name string) adt.Var      { return adt.Var{Ident: primed(name)} }

func TestExpMatchBindsFreeVar(t *testing.T) {
	// e1 = 3, e2 = 'x with 'x free in V: binds 'x to 3.
	sigma, v, ok := ExpMatch(adt.NewIntConst(3), adt.EmptySubst(), adt.NewVarSet(primed("x")), pvar("x"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Len(), 0))
	bound, found := sigma.Lookup(primed("x"))
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(bound.String(), "3"))
}

func TestExpMatchGroundMismatch(t *testing.T) {
	_, _, ok := ExpMatch(adt.NewIntConst(3), adt.EmptySubst(), adt.VarSet{}, adt.NewIntConst(4))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestExpMatchAlreadyBoundVarUsesSigma(t *testing.T) {
	// 'x is already bound to 3 and no longer in V: e2 = 'x must resolve
	// through sigma, not rebind.
	sigma := adt.EmptySubst().Extend(primed("x"), adt.NewIntConst(3))
	_, _, ok := ExpMatch(adt.NewIntConst(3), sigma, adt.VarSet{}, pvar("x"))
	qt.Assert(t, qt.IsTrue(ok))

	_, _, ok = ExpMatch(adt.NewIntConst(4), sigma, adt.VarSet{}, pvar("x"))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestExpMatchBareVarOnConcreteSideFails(t *testing.T) {
	// e1 a bare Var (not covered by rule 1) can never match a non-leaf e2.
	_, _, ok := ExpMatch(pvar("y"), adt.EmptySubst(), adt.VarSet{}, adt.BinOp{Op: adt.Add, X: adt.NewIntConst(1), Y: adt.NewIntConst(2)})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestExpMatchBinOpRecurses(t *testing.T) {
	e1 := adt.BinOp{Op: adt.Add, X: adt.NewIntConst(1), Y: adt.NewIntConst(2)}
	e2 := adt.BinOp{Op: adt.Add, X: pvar("a"), Y: pvar("b")}
	sigma, v, ok := ExpMatch(e1, adt.EmptySubst(), adt.NewVarSet(primed("a"), primed("b")), e2)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Len(), 0))
	a, _ := sigma.Lookup(primed("a"))
	b, _ := sigma.Lookup(primed("b"))
	qt.Assert(t, qt.Equals(a.String(), "1"))
	qt.Assert(t, qt.Equals(b.String(), "2"))
}

func TestExpMatchBinOpOpMismatch(t *testing.T) {
	e1 := adt.BinOp{Op: adt.Add, X: adt.NewIntConst(1), Y: adt.NewIntConst(2)}
	e2 := adt.BinOp{Op: adt.Sub, X: pvar("a"), Y: pvar("b")}
	_, _, ok := ExpMatch(e1, adt.EmptySubst(), adt.NewVarSet(primed("a"), primed("b")), e2)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestExpMatchCrossConstructorFails(t *testing.T) {
	_, _, ok := ExpMatch(adt.Cast{Typ: adt.Typ{Name: "int"}, X: adt.NewIntConst(1)}, adt.EmptySubst(), adt.VarSet{}, adt.UnOp{Op: adt.Neg, X: pvar("a")})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestExpListMatchLengthMismatchAborts(t *testing.T) {
	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	ExpListMatch([]adt.Expr{adt.NewIntConst(1)}, adt.EmptySubst(), adt.VarSet{}, nil)
}

func TestFselMatchExactFields(t *testing.T) {
	in := adt.NewInterner()
	l1 := []adt.FieldVal{{Field: in.Field("a"), Val: adt.Atom{X: adt.NewIntConst(1)}}}
	l2 := []adt.FieldVal{{Field: in.Field("a"), Val: adt.Atom{X: pvar("x")}}}

	sigma, _, ok := FselMatch(nil, l1, adt.EmptySubst(), adt.NewVarSet(primed("x")), l2)
	qt.Assert(t, qt.IsTrue(ok))
	bound, _ := sigma.Lookup(primed("x"))
	qt.Assert(t, qt.Equals(bound.String(), "1"))
}

func TestFselMatchExtraFieldRejectedWithoutAbsStruct(t *testing.T) {
	in := adt.NewInterner()
	l1 := []adt.FieldVal{
		{Field: in.Field("a"), Val: adt.Atom{X: adt.NewIntConst(1)}},
		{Field: in.Field("b"), Val: adt.Atom{X: adt.NewIntConst(2)}},
	}
	l2 := []adt.FieldVal{{Field: in.Field("a"), Val: adt.Atom{X: pvar("x")}}}

	_, _, ok := FselMatch(nil, l1, adt.EmptySubst(), adt.NewVarSet(primed("x")), l2)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestFselMatchExtraFieldAcceptedWithAbsStruct(t *testing.T) {
	in := adt.NewInterner()
	l1 := []adt.FieldVal{
		{Field: in.Field("a"), Val: adt.Atom{X: adt.NewIntConst(1)}},
		{Field: in.Field("b"), Val: adt.Atom{X: adt.NewIntConst(2)}},
	}
	l2 := []adt.FieldVal{{Field: in.Field("a"), Val: adt.Atom{X: pvar("x")}}}

	cfg := &Config{AbsStruct: 1}
	sigma, v, ok := FselMatch(cfg, l1, adt.EmptySubst(), adt.NewVarSet(primed("x")), l2)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(v.Len(), 0))
	bound, _ := sigma.Lookup(primed("x"))
	qt.Assert(t, qt.Equals(bound.String(), "1"))
}

func TestFselMatchAllForgottenRequiresAbsStruct(t *testing.T) {
	in := adt.NewInterner()
	l1 := []adt.FieldVal{{Field: in.Field("a"), Val: adt.Atom{X: adt.NewIntConst(1)}}}

	_, _, ok := FselMatch(nil, l1, adt.EmptySubst(), adt.VarSet{}, nil)
	qt.Assert(t, qt.IsFalse(ok))

	cfg := &Config{AbsStruct: 1}
	_, _, ok = FselMatch(cfg, l1, adt.EmptySubst(), adt.VarSet{}, nil)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestIselMatchIndexMismatch(t *testing.T) {
	c1 := []adt.CellVal{{Index: adt.NewIntConst(0), Val: adt.Atom{X: adt.NewIntConst(1)}}}
	c2 := []adt.CellVal{{Index: adt.NewIntConst(1), Val: adt.Atom{X: pvar("x")}}}
	_, _, ok := IselMatch(nil, c1, adt.EmptySubst(), adt.NewVarSet(primed("x")), c2)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestIselMatchUnboundIndexAborts(t *testing.T) {
	c1 := []adt.CellVal{{Index: adt.NewIntConst(0), Val: adt.Atom{X: adt.NewIntConst(1)}}}
	c2 := []adt.CellVal{{Index: pvar("i"), Val: adt.Atom{X: pvar("x")}}}
	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	IselMatch(nil, c1, adt.EmptySubst(), adt.NewVarSet(primed("i"), primed("x")), c2)
}
