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

// Package adt defines the term algebra the matcher in internal/match
// operates over: expressions, structured values, heap predicates,
// list-segment parameters, substitutions and free-variable sets. These term
// values are immutable; mutators return new values rather than updating in
// place. The helpers Interner, IDGen and Tracer are stateful and do change
// in place.
package adt
