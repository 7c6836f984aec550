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

package adt

// An IDGen produces fresh primed identifiers: a plain counter passed by
// reference and threaded explicitly through a matching session, rather than
// an implicit process-wide sequence behind a package-level global.
type IDGen struct {
	next uint64
}

// NewIDGen returns a generator whose first Fresh call returns generation 1.
func NewIDGen() *IDGen {
	return &IDGen{}
}

// Fresh returns a new primed identifier named base, distinct from every
// identifier previously produced by this generator (including earlier
// idents sharing base).
func (g *IDGen) Fresh(base string) Ident {
	g.next++
	return Ident{Name: base, Kind: Primed, Gen: g.next}
}
