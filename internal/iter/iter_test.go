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

package iter

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/sheaplang/sheap/internal/adt"
)

// pred builds a minimal PointsTo predicate distinguishable by its root's
// name, standing in for an arbitrary HPred in these tests: HPred's hpred()
// marker method is unexported, so only adt's own concrete types can satisfy
// the interface from outside package adt.
func pred(name string) adt.PointsTo {
	return adt.PointsTo{
		RootExpr: adt.Lvar{Name: name},
		X:        adt.Atom{X: adt.NewIntConst(0)},
		Typ:      adt.Typ{Name: "int"},
	}
}

func predName(h adt.HPred) string {
	return h.Root().(adt.Lvar).Name
}

func TestNewEmptyProp(t *testing.T) {
	_, ok := New(Prop{})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestNewAndCurrent(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a"), pred("b")}}
	it, ok := New(p)
	qt.Assert(t, qt.IsTrue(ok))
	h, _, _ := it.Current()
	qt.Assert(t, qt.Equals(predName(h), "a"))
}

func TestNext(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a"), pred("b")}}
	it, _ := New(p)
	it2, ok := it.Next()
	qt.Assert(t, qt.IsTrue(ok))
	h, _, _ := it2.Current()
	qt.Assert(t, qt.Equals(predName(h), "b"))

	_, ok = it2.Next()
	qt.Assert(t, qt.IsFalse(ok))
}

func TestSeedCarriesRunningState(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a")}}
	it, _ := New(p)
	sigma := adt.EmptySubst().Extend(adt.Ident{Name: "x", Kind: adt.Primed}, adt.NewIntConst(1))
	v := adt.NewVarSet(adt.Ident{Name: "y", Kind: adt.Primed})

	seeded := it.Seed(sigma, v)
	_, gotSigma, gotV := seeded.Current()
	qt.Assert(t, qt.Equals(gotSigma.Len(), 1))
	qt.Assert(t, qt.Equals(gotV.Len(), 1))
}

func TestFindScansFromCurrentPosition(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a"), pred("b"), pred("c")}}
	it, _ := New(p)
	it = it.Seed(adt.EmptySubst(), adt.VarSet{})

	filter := func(h adt.HPred, s adt.Subst, v adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		return s, v, predName(h) == "b"
	}
	found, ok := Find(it, filter)
	qt.Assert(t, qt.IsTrue(ok))
	h, _, _ := found.Current()
	qt.Assert(t, qt.Equals(predName(h), "b"))
}

func TestFindUsesSeededRunningStateNotZeroValue(t *testing.T) {
	// A filter that only succeeds when it observes the seeded substitution
	// proves Find reads it.running, not a fresh zero Running.
	p := Prop{Spatial: []adt.HPred{pred("a")}}
	it, _ := New(p)
	sigma := adt.EmptySubst().Extend(adt.Ident{Name: "x", Kind: adt.Primed}, adt.NewIntConst(7))
	seeded := it.Seed(sigma, adt.VarSet{})

	filter := func(h adt.HPred, s adt.Subst, v adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		return s, v, s.Len() == 1
	}
	_, ok := Find(seeded, filter)
	qt.Assert(t, qt.IsTrue(ok))

	// Without seeding, the same filter must fail.
	fresh, _ := New(p)
	_, ok = Find(fresh, filter)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestFindNoMatchReturnsFalse(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a")}}
	it, _ := New(p)
	it = it.Seed(adt.EmptySubst(), adt.VarSet{})
	_, ok := Find(it, func(adt.HPred, adt.Subst, adt.VarSet) (adt.Subst, adt.VarSet, bool) {
		return adt.Subst{}, adt.VarSet{}, false
	})
	qt.Assert(t, qt.IsFalse(ok))
}

func TestRemoveCurrToProp(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a"), pred("b"), pred("c")}, Pure: "pure"}
	it, _ := New(p)
	it2, _ := it.Next()

	out := it2.RemoveCurrToProp()
	qt.Assert(t, qt.Equals(len(out.Spatial), 2))
	qt.Assert(t, qt.Equals(predName(out.Spatial[0]), "a"))
	qt.Assert(t, qt.Equals(predName(out.Spatial[1]), "c"))
	qt.Assert(t, qt.Equals(out.Pure, "pure"))
}

func TestToPropKeepsFocused(t *testing.T) {
	p := Prop{Spatial: []adt.HPred{pred("a"), pred("b")}}
	it, _ := New(p)
	it2, _ := it.Next()

	out := it2.ToProp()
	qt.Assert(t, qt.Equals(len(out.Spatial), 2))
}
