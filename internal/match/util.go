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

// EqPred is an equality predicate over two expressions, the granularity at
// which SigmaRemoveHpred and the isomorphism finder locate rooted
// predicates.
type EqPred func(a, b adt.Expr) bool

// SigmaRemoveHpred partitions sigma on rooted predicates whose root is
// eq-equal to e: it returns (the single matching predicate, the remainder,
// true) if exactly one matches, or (nil, sigma, false) if none matches. Two
// matches is a contract violation: a heap may never contain
// two predicates with the same root.
func SigmaRemoveHpred(eq EqPred, sigma []adt.HPred, e adt.Expr) (adt.HPred, []adt.HPred, bool) {
	var found adt.HPred
	var foundAt = -1
	for i, h := range sigma {
		if eq(h.Root(), e) {
			if foundAt != -1 {
				adt.Abortf("match.SigmaRemoveHpred: two predicates share root %v", e)
			}
			found = h
			foundAt = i
		}
	}
	if foundAt == -1 {
		return nil, sigma, false
	}
	rest := make([]adt.HPred, 0, len(sigma)-1)
	rest = append(rest, sigma[:foundAt]...)
	rest = append(rest, sigma[foundAt+1:]...)
	return found, rest, true
}

// ExprEqSyntactic is the default EqPred: syntactic (textual) equality.
func ExprEqSyntactic(a, b adt.Expr) bool {
	return exprSyntacticEqual(a, b)
}
