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

func TestHparaCreateRootAndNextOnly(t *testing.T) {
	cfg := newCfg()
	// body1: p |-> n : int. Both correspondence pairs are the fixed root/next
	// pair, so neither yields a shared or existential parameter.
	body1 := []adt.HPat{
		{Pred: pointsTo(adt.Lvar{Name: "p"}, adt.Lvar{Name: "n"}), ImplFlag: true},
	}
	corres := []Pair{
		{adt.Lvar{Name: "p"}, adt.Lvar{Name: "p2"}},
		{adt.Lvar{Name: "n"}, adt.Lvar{Name: "n2"}},
	}

	para, esShared := HparaCreate(cfg, corres, body1, adt.Lvar{Name: "p"}, adt.Lvar{Name: "n"})
	qt.Assert(t, qt.Equals(len(esShared), 0))
	qt.Assert(t, qt.Equals(len(para.Svars), 0))
	qt.Assert(t, qt.Equals(len(para.Evars), 0))
	qt.Assert(t, qt.Equals(len(para.Body), 1))
	// The synthesised body's points-to cell is now rooted at Para.Root and
	// stores Para.Next, lifted to PE.
	pt, ok := para.Body[0].Pred.(adt.PointsTo)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(pt.RootExpr.String(), adt.Var{Ident: para.Root}.String()))
}

func TestHparaCreateSharedVariable(t *testing.T) {
	cfg := newCfg()
	// body1: p |-> s : int, where s is shared (appears as both sides of its
	// own correspondence pair, i.e. e1 == e2) and is also passed as next1.
	body1 := []adt.HPat{
		{Pred: pointsTo(adt.Lvar{Name: "p"}, adt.Lvar{Name: "s"}), ImplFlag: true},
	}
	corres := []Pair{
		{adt.Lvar{Name: "p"}, adt.Lvar{Name: "p2"}},
		{adt.Lvar{Name: "s"}, adt.Lvar{Name: "s"}},
	}

	para, esShared := HparaCreate(cfg, corres, body1, adt.Lvar{Name: "p"}, adt.Lvar{Name: "s"})
	// s is elist1's second element (next1), so it is excluded from svars
	// even though e1 == e2 for its pair.
	qt.Assert(t, qt.Equals(len(para.Svars), 0))
	_ = esShared
}

func TestHparaCreateUnassignedNextAborts(t *testing.T) {
	cfg := newCfg()
	body1 := []adt.HPat{
		{Pred: pointsTo(adt.Lvar{Name: "p"}, adt.NewIntConst(0)), ImplFlag: true},
	}
	corres := []Pair{
		{adt.Lvar{Name: "p"}, adt.Lvar{Name: "p2"}},
		{adt.NewIntConst(0), adt.NewIntConst(0)},
	}

	defer func() {
		r := recover()
		qt.Assert(t, qt.Not(qt.IsNil(r)))
	}()
	HparaCreate(cfg, corres, body1, adt.Lvar{Name: "p"}, adt.NewIntConst(0))
}

func TestHparaDllCreate(t *testing.T) {
	cfg := newCfg()
	body1 := []adt.HPat{
		{Pred: pointsTo(adt.Lvar{Name: "c"}, adt.Lvar{Name: "f"}), ImplFlag: true},
	}
	corres := []Pair{
		{adt.Lvar{Name: "c"}, adt.Lvar{Name: "c2"}},
		{adt.Lvar{Name: "b"}, adt.Lvar{Name: "b2"}},
		{adt.Lvar{Name: "f"}, adt.Lvar{Name: "f2"}},
	}

	para, esShared := HparaDllCreate(cfg, corres, body1, adt.Lvar{Name: "c"}, adt.Lvar{Name: "b"}, adt.Lvar{Name: "f"})
	qt.Assert(t, qt.Equals(len(para.BodyDll), 1))
	qt.Assert(t, qt.Equals(len(esShared), 0))
}
