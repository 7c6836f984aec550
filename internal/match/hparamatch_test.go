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

func TestHparaMatchReflexive(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	qt.Assert(t, qt.IsTrue(HparaMatch(cfg, false, para, para)))
}

func TestHparaIsoSymmetric(t *testing.T) {
	cfg := newCfg()
	para := listPara()
	// Relabel the formals: structurally identical up to renaming.
	root2 := adt.Ident{Name: "r2", Kind: adt.Primed}
	next2 := adt.Ident{Name: "n2", Kind: adt.Primed}
	para2 := &adt.Para{
		Root: root2,
		Next: next2,
		Body: []adt.HPat{{
			Pred:     pointsTo(adt.Var{Ident: root2}, adt.Var{Ident: next2}),
			ImplFlag: true,
		}},
	}

	qt.Assert(t, qt.IsTrue(HparaIso(cfg, para, para2)))
	qt.Assert(t, qt.IsTrue(HparaIso(cfg, para2, para)))
}

func TestHparaMatchArityMismatchAborts(t *testing.T) {
	cfg := newCfg()
	para1 := listPara()
	root2 := adt.Ident{Name: "r2", Kind: adt.Primed}
	next2 := adt.Ident{Name: "n2", Kind: adt.Primed}
	shared2 := adt.Ident{Name: "s2", Kind: adt.Primed}
	para2 := &adt.Para{
		Root:  root2,
		Next:  next2,
		Svars: []adt.Ident{shared2},
		Body: []adt.HPat{{
			Pred:     pointsTo(adt.Var{Ident: root2}, adt.Var{Ident: next2}),
			ImplFlag: true,
		}},
	}

	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	HparaMatch(cfg, false, para1, para2)
}

func TestHparaMatchDifferentShapeFails(t *testing.T) {
	cfg := newCfg()
	para1 := listPara()

	// A two-predicate body is not alpha-equivalent to a one-predicate body.
	root2 := adt.Ident{Name: "r2", Kind: adt.Primed}
	next2 := adt.Ident{Name: "n2", Kind: adt.Primed}
	para2 := &adt.Para{
		Root: root2,
		Next: next2,
		Body: []adt.HPat{
			{Pred: pointsTo(adt.Var{Ident: root2}, adt.Var{Ident: next2}), ImplFlag: true},
			{Pred: pointsTo(adt.Var{Ident: next2}, adt.NewIntConst(0)), ImplFlag: true},
		},
	}

	qt.Assert(t, qt.IsFalse(HparaMatch(cfg, false, para1, para2)))
}
