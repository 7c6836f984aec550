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
	"github.com/google/uuid"

	"github.com/sheaplang/sheap/internal/adt"
	"github.com/sheaplang/sheap/internal/iter"
)

// Run is the common-case entry point over PropMatchWithImpl: a trivial side
// condition and a heap with no pure part. It exists for callers — chiefly
// cmd/sheap — that have no side condition of their own to thread through
// PropMatchWithImpl's full signature.
//
// Every call is tagged with a random run id, logged at entry and exit, so a
// human reading a trace that interleaves several runs (or several matches in
// one CLI invocation) can grep a single one out.
func Run(cfg *Config, heap []adt.HPred, pattern []adt.HPat, v adt.VarSet) (adt.Subst, []adt.HPred, bool) {
	if len(pattern) == 0 {
		adt.Abortf("match.Run: pattern must be non-empty")
	}
	runID := uuid.New()
	defer cfg.indentf("run %s: matching %d pattern(s) against %d heap predicate(s)", runID, len(pattern), len(heap))()

	p := iter.Prop{Spatial: heap}
	sigma, leftover, ok := PropMatchWithImpl(cfg, p, AlwaysTrue, v, pattern[0], pattern[1:])
	if !ok {
		cfg.logf("run %s: no match", runID)
		return adt.Subst{}, nil, false
	}
	cfg.logf("run %s: matched, %d leftover predicate(s)", runID, len(leftover.Spatial))
	return sigma, leftover.Spatial, true
}
