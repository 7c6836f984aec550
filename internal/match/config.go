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

// Package match is the unification-driven matcher over heap predicates: the
// core of this module. It interleaves first-order unification, backtracking
// search, structural congruence of nested symbolic expressions, parametric
// instantiation of inductive predicates, and kind-subsumption between NE and
// PE list segments.
package match

import (
	"github.com/sheaplang/sheap/internal/adt"
)

// Config carries the matcher's one tuning knob, AbsStruct, and its tracer,
// threaded explicitly as a value passed by pointer rather than read from a
// package global — modelled on internal/core/adt.OpContext's Config/Runtime
// fields.
type Config struct {
	// AbsStruct, when > 0, enables field-forgetting in fsel_match: a
	// pattern record may be matched against a focused record carrying
	// extra fields (left-field forgetting) or, with the right side empty,
	// any focused record at all. This is deliberately unsound and is
	// preserved exactly, not silently tightened.
	AbsStruct int

	// Tracer receives a trace of the backtracking search when non-nil and
	// its Verbosity is > 0.
	Tracer *adt.Tracer

	// IDs mints fresh primed identifiers for leftover-existential closure
	// and parameter-body unfolding. Callers share one IDGen across a whole
	// matching session so fresh identifiers never collide.
	IDs *adt.IDGen
}

func (cfg *Config) logf(format string, args ...interface{}) {
	if cfg == nil {
		return
	}
	cfg.Tracer.Logf(format, args...)
}

func (cfg *Config) indentf(format string, args ...interface{}) func() {
	if cfg == nil || cfg.Tracer == nil {
		return func() {}
	}
	return cfg.Tracer.Indentf(format, args...)
}

func (cfg *Config) fresh(base string) adt.Ident {
	if cfg == nil || cfg.IDs == nil {
		adt.Abortf("match.Config: IDs generator is required")
	}
	return cfg.IDs.Fresh(base)
}
