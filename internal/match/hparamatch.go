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

// hparaCommonMatch decides α-equivalence of two inductive bodies modulo
// renaming of roots, shared and existential variables:
//  1. rename ids2 → ids1 pointwise (lengths must match, else a contract
//     violation — the caller presented two parameters of different arity).
//  2. rename evars2 to fresh existentials.
//  3. apply the combined renaming to body2, turning it into a pattern with
//     ImplFlag = implOk uniformly.
//  4. ask the spatial matcher to consume all of the renamed body2 against
//     body1 and require the leftover heap to be empty.
func hparaCommonMatch(cfg *Config, implOk bool, ids1 []adt.Ident, body1 []adt.HPat, evars2, ids2 []adt.Ident, body2 []adt.HPat) bool {
	if len(body1) == 0 || len(body2) == 0 {
		adt.Abortf("match.hparaCommonMatch: parameter bodies must be non-empty")
	}
	if len(ids1) != len(ids2) {
		adt.Abortf("match.hparaCommonMatch: parameter arity mismatch (%d vs %d)", len(ids1), len(ids2))
	}

	ren := newRename(ids2, identExprs(ids1))
	fresh := make([]adt.Ident, len(evars2))
	for i, ev := range evars2 {
		fresh[i] = cfg.fresh(ev.Name)
		ren[ev] = adt.Var{Ident: fresh[i]}
	}

	pattern := ren.hpats(body2, implOk)

	sigma1 := make([]adt.HPred, len(body1))
	for i, p := range body1 {
		sigma1[i] = p.Pred
	}

	v := adt.NewVarSet(fresh...)
	phiTrue := func(iter.Prop, adt.Subst) bool { return true }

	_, leftover, ok := propMatchWithImplSub(cfg, iter.Prop{Spatial: sigma1}, phiTrue, adt.EmptySubst(), v, pattern[0], pattern[1:])
	if !ok {
		return false
	}
	return len(leftover.Spatial) == 0
}

func identExprs(ids []adt.Ident) []adt.Expr {
	out := make([]adt.Expr, len(ids))
	for i, id := range ids {
		out[i] = adt.Var{Ident: id}
	}
	return out
}

// HparaMatch decides α-equivalence between two singly-linked parameter
// bodies, using [root; next] ++ svars as the identifier list.
func HparaMatch(cfg *Config, implOk bool, para1, para2 *adt.Para) bool {
	return hparaCommonMatch(cfg, implOk, para1.Ids(), para1.Body, para2.Evars, para2.Ids(), para2.Body)
}

// HparaDllMatch is the doubly-linked analogue of HparaMatch, using
// [cell; blink; flink] ++ svars_dll as the identifier list.
func HparaDllMatch(cfg *Config, implOk bool, para1, para2 *adt.ParaDll) bool {
	return hparaCommonMatch(cfg, implOk, para1.Ids(), para1.BodyDll, para2.EvarsDll, para2.Ids(), para2.BodyDll)
}

// HparaIso reports whether para1 and para2 describe the same cell shape in
// both directions: hpara_match(false, p, p) is reflexive for every
// parameter.
func HparaIso(cfg *Config, para1, para2 *adt.Para) bool {
	return HparaMatch(cfg, false, para1, para2) && HparaMatch(cfg, false, para2, para1)
}

// HparaDllIso is the doubly-linked analogue of HparaIso.
func HparaDllIso(cfg *Config, para1, para2 *adt.ParaDll) bool {
	return HparaDllMatch(cfg, false, para1, para2) && HparaDllMatch(cfg, false, para2, para1)
}
