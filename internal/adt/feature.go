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

import "sort"

// A Feature is an encoded field identifier with a total order: two features
// compare by a single integer compare, regardless of the string they were
// interned from. This is the total order that record field lists are kept
// sorted by (see Record in strexp.go).
type Feature uint32

// InvalidFeature is the encoding of an erroneous or absent field.
const InvalidFeature Feature = 0

// An Interner maps strings to indices unique to this matcher run and back.
// Two calls to StringToIndex with equal strings must return the same index;
// two calls with unequal strings must never collide.
type Interner struct {
	index map[string]int64
	names []string
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{index: map[string]int64{}}
}

// StringToIndex returns a stable index for s, allocating one if s has not
// been seen before by this Interner.
func (in *Interner) StringToIndex(s string) int64 {
	if i, ok := in.index[s]; ok {
		return i
	}
	i := int64(len(in.names))
	in.names = append(in.names, s)
	in.index[s] = i
	return i
}

// IndexToString returns the string that produced index i.
func (in *Interner) IndexToString(i int64) string {
	return in.names[i]
}

// Field interns name and returns the Feature identifying it.
func (in *Interner) Field(name string) Feature {
	return Feature(in.StringToIndex(name) + 1)
}

// String returns the field name f was interned from.
func (f Feature) String(in *Interner) string {
	if f == InvalidFeature {
		return "_"
	}
	return in.IndexToString(int64(f) - 1)
}

// Cmp orders two features by their encoded index. This is the total order
// required by the record/array sorting invariant.
func (f Feature) Cmp(g Feature) int {
	switch {
	case f < g:
		return -1
	case f > g:
		return 1
	default:
		return 0
	}
}

// SortFields sorts fs in place by Feature order, the order Record values are
// required to be kept in.
func SortFields(fs []Feature) {
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
}
