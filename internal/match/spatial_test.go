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

func newCfg() *Config {
	return &Config{IDs: adt.NewIDGen()}
}

var intTyp = adt.Typ{Name: "int"}

func pointsTo(root adt.Expr, val adt.Expr) adt.PointsTo {
	return adt.PointsTo{RootExpr: root, X: adt.Atom{X: val}, Typ: intTyp}
}

// listPara is a minimal singly-linked cell shape: x |-> next : int, no
// shared or existential parameters.
func listPara() *adt.Para {
	root := adt.Ident{Name: "root", Kind: adt.Primed}
	next := adt.Ident{Name: "next", Kind: adt.Primed}
	return &adt.Para{
		Root: root,
		Next: next,
		Body: []adt.HPat{{
			Pred:     pointsTo(adt.Var{Ident: root}, adt.Var{Ident: next}),
			ImplFlag: true,
		}},
	}
}

func TestPropMatchWithImplPointsToExact(t *testing.T) {
	cfg := newCfg()
	heap := []adt.HPred{pointsTo(adt.Lvar{Name: "p"}, adt.NewIntConst(5))}
	pattern := adt.HPat{Pred: pointsTo(adt.Lvar{Name: "p"}, pvar("v")), ImplFlag: false}

	sigma, leftover, ok := Run(cfg, heap, []adt.HPat{pattern}, adt.NewVarSet(primed("v")))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(leftover), 0))
	bound, _ := sigma.Lookup(primed("v"))
	qt.Assert(t, qt.Equals(bound.String(), "5"))
}

func TestPropMatchWithImplPointsToTypeMismatchFails(t *testing.T) {
	cfg := newCfg()
	h := adt.PointsTo{RootExpr: adt.Lvar{Name: "p"}, X: adt.Atom{X: adt.NewIntConst(5)}, Typ: adt.Typ{Name: "char"}}
	pattern := adt.HPat{Pred: pointsTo(adt.Lvar{Name: "p"}, pvar("v")), ImplFlag: false}

	_, _, ok := Run(cfg, []adt.HPred{h}, []adt.HPat{pattern}, adt.NewVarSet(primed("v")))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestPropMatchWithImplLsegEmpty(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	seg := adt.Lseg{K: adt.PE, Para: para, From: adt.Lvar{Name: "p"}, To: adt.Lvar{Name: "p"}}
	pattern := adt.HPat{Pred: seg, ImplFlag: true}

	sigma, leftover, ok := Run(cfg, nil, []adt.HPat{pattern}, adt.VarSet{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(leftover), 0))
	qt.Assert(t, qt.Equals(sigma.Len(), 0))
}

func TestPropMatchWithImplLsegUnfoldsOneCell(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	// Concrete heap: p |-> q : int, a single-cell list from p to q.
	heap := []adt.HPred{pointsTo(adt.Lvar{Name: "p"}, adt.Lvar{Name: "q"})}
	seg := adt.Lseg{K: adt.PE, Para: para, From: adt.Lvar{Name: "p"}, To: adt.Lvar{Name: "q"}}
	pattern := adt.HPat{Pred: seg, ImplFlag: true}

	sigma, leftover, ok := Run(cfg, heap, []adt.HPat{pattern}, adt.VarSet{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(leftover), 0))
	qt.Assert(t, qt.Equals(sigma.Len(), 0))
}

func TestPropMatchWithImplLsegFocusMatchesExistingSegment(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	heap := []adt.HPred{adt.Lseg{K: adt.NE, Para: para, From: adt.Lvar{Name: "p"}, To: adt.Lvar{Name: "q"}}}
	// A PE pattern segment is subsumed by a focused NE segment.
	pattern := adt.HPat{Pred: adt.Lseg{K: adt.PE, Para: para, From: adt.Lvar{Name: "p"}, To: adt.Lvar{Name: "q"}}, ImplFlag: true}

	_, leftover, ok := Run(cfg, heap, []adt.HPat{pattern}, adt.VarSet{})
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(leftover), 0))
}

func TestKindSubsumesNotReverse(t *testing.T) {
	qt.Assert(t, qt.IsTrue(adt.NE.Subsumes(adt.NE)))
	qt.Assert(t, qt.IsTrue(adt.NE.Subsumes(adt.PE)))
	qt.Assert(t, qt.IsTrue(adt.PE.Subsumes(adt.PE)))
	qt.Assert(t, qt.IsFalse(adt.PE.Subsumes(adt.NE)))
}

func TestPropMatchWithImplNESegmentCannotMatchEmptyHeap(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	seg := adt.Lseg{K: adt.NE, Para: para, From: adt.Lvar{Name: "p"}, To: adt.Lvar{Name: "p"}}
	pattern := adt.HPat{Pred: seg, ImplFlag: true}

	_, _, ok := Run(cfg, nil, []adt.HPat{pattern}, adt.VarSet{})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestPropMatchWithImplEmptyPatternRequiresImplFlag(t *testing.T) {
	cfg := newCfg()
	pattern := adt.HPat{Pred: pointsTo(adt.Lvar{Name: "p"}, adt.NewIntConst(1)), ImplFlag: false}

	// A PointsTo pattern can never be discharged against the empty heap,
	// impl_flag or not.
	_, _, ok := Run(cfg, nil, []adt.HPat{pattern}, adt.VarSet{})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestPropMatchWithImplLeftoverHeapIsReported(t *testing.T) {
	cfg := newCfg()
	extra := pointsTo(adt.Lvar{Name: "other"}, adt.NewIntConst(42))
	heap := []adt.HPred{pointsTo(adt.Lvar{Name: "p"}, adt.NewIntConst(5)), extra}
	pattern := adt.HPat{Pred: pointsTo(adt.Lvar{Name: "p"}, pvar("v")), ImplFlag: false}

	_, leftover, ok := Run(cfg, heap, []adt.HPat{pattern}, adt.NewVarSet(primed("v")))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(len(leftover), 1))
	qt.Assert(t, qt.Equals(leftover[0].String(), extra.String()))
}

func TestRunRejectsEmptyPattern(t *testing.T) {
	cfg := newCfg()
	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	Run(cfg, nil, nil, adt.VarSet{})
}
