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

// HpredLiftToPe rewrites any Lseg/Dllseg to kind PE, passing PointsTo
// through unchanged.
func HpredLiftToPe(h adt.HPred) adt.HPred {
	switch x := h.(type) {
	case adt.Lseg:
		x.K = adt.PE
		return x
	case adt.Dllseg:
		x.K = adt.PE
		return x
	default:
		return h
	}
}

// SigmaLiftToPe maps HpredLiftToPe pointwise over sigma.
func SigmaLiftToPe(sigma []adt.HPred) []adt.HPred {
	out := make([]adt.HPred, len(sigma))
	for i, h := range sigma {
		out[i] = HpredLiftToPe(h)
	}
	return out
}
