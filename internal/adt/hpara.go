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

// Para is the shape of one cell of a singly-linked list segment,
// parameterised by its Root and Next pointer, its shared formal parameters
// Svars, and its existential locals Evars. Body is non-empty.
type Para struct {
	Root  Ident
	Next  Ident
	Svars []Ident
	Evars []Ident
	Body  []HPat
}

// Ids returns [Root, Next] ++ Svars, the identifier list hpara_match renames
// pointwise.
func (p *Para) Ids() []Ident {
	ids := make([]Ident, 0, 2+len(p.Svars))
	ids = append(ids, p.Root, p.Next)
	ids = append(ids, p.Svars...)
	return ids
}

// ParaDll is the doubly-linked analogue of Para.
type ParaDll struct {
	Cell      Ident
	Blink     Ident
	Flink     Ident
	SvarsDll  []Ident
	EvarsDll  []Ident
	BodyDll   []HPat
}

// Ids returns [Cell, Blink, Flink] ++ SvarsDll.
func (p *ParaDll) Ids() []Ident {
	ids := make([]Ident, 0, 3+len(p.SvarsDll))
	ids = append(ids, p.Cell, p.Blink, p.Flink)
	ids = append(ids, p.SvarsDll...)
	return ids
}

// HPat is one conjunct of a pattern: a heap predicate plus the impl_flag
// controlling whether it may be discharged against the empty heap or
// unfolded.
type HPat struct {
	Pred     HPred
	ImplFlag bool
}
