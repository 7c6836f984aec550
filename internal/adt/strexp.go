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

import "fmt"

// Inst is opaque provenance metadata attached to a StrExp. The matcher never
// inspects it; it exists only so a caller's representation can round-trip
// through matching.
type Inst interface{}

// StrExp (SE) is a structured expression value: an atom, a field-sorted
// record, or an index-sorted array.
type StrExp interface {
	strExp()
}

// Atom is a scalar structured value.
type Atom struct {
	X    Expr
	Inst Inst
}

func (Atom) strExp() {}

// FieldVal is one (field, value) entry of a Record. Record.Fields must stay
// sorted by Field per the total order in feature.go; NewRecord enforces
// this.
type FieldVal struct {
	Field Feature
	Val   StrExp
}

// Record is a struct value, its fields kept sorted by Feature order.
type Record struct {
	Fields []FieldVal
	Inst   Inst
}

func (Record) strExp() {}

// NewRecord builds a Record from fields, sorting them by Feature order. It
// panics (via Abortf) if two fields share the same Feature — the invariant
// requires unique, sorted field lists.
func NewRecord(fields []FieldVal, inst Inst) Record {
	fs := append([]FieldVal(nil), fields...)
	sortFieldVals(fs)
	for i := 1; i < len(fs); i++ {
		if fs[i-1].Field == fs[i].Field {
			Abortf("adt.NewRecord: duplicate field %d in record literal", fs[i].Field)
		}
	}
	return Record{Fields: fs, Inst: inst}
}

func sortFieldVals(fs []FieldVal) {
	// insertion sort: records are small (field counts bounded by the
	// program's struct types), so a library dedup/sort utility is not
	// warranted — see DESIGN.md's note on github.com/mpvl/unique.
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j-1].Field > fs[j].Field; j-- {
			fs[j-1], fs[j] = fs[j], fs[j-1]
		}
	}
}

// CellVal is one (index, value) entry of an Array. Array.Cells must stay
// sorted by the stored index Expr's String form.
type CellVal struct {
	Index Expr
	Val   StrExp
}

// Array is an array value of static size Size, its cells kept ordered by the
// stored index expression.
type Array struct {
	Size  Expr
	Cells []CellVal
	Inst  Inst
}

func (Array) strExp() {}

// NewArray builds an Array from cells, sorting them by the textual order of
// their index expressions (a stable, deterministic surrogate for "ordered
// by the stored index expression" when indices are not all ground).
func NewArray(size Expr, cells []CellVal, inst Inst) Array {
	cs := append([]CellVal(nil), cells...)
	for i := 1; i < len(cs); i++ {
		for j := i; j > 0 && cs[j-1].Index.String() > cs[j].Index.String(); j-- {
			cs[j-1], cs[j] = cs[j], cs[j-1]
		}
	}
	return Array{Size: size, Cells: cs, Inst: inst}
}

func (a Atom) String() string   { return a.X.String() }
func (r Record) String() string { return fmt.Sprintf("{record: %d fields}", len(r.Fields)) }
func (a Array) String() string  { return fmt.Sprintf("{array[%s]: %d cells}", a.Size, len(a.Cells)) }
