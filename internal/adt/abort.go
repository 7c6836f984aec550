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

// ContractViolation is the panic value raised by Abortf. It distinguishes
// recoverable Failure (the ⊥ alternative of a result option) from fatal
// Contract violations, which abort loudly rather than returning a partial
// result. Nothing in the matcher packages recovers it: a contract violation
// indicates a caller bug, not a heap that failed to match. The CLI's match
// subcommand recovers it only to print the message and exit with status 2.
type ContractViolation struct {
	Msg string
}

func (e *ContractViolation) Error() string { return e.Msg }

// Abortf reports a contract violation and panics.
func Abortf(format string, args ...interface{}) {
	panic(&ContractViolation{Msg: fmt.Sprintf(format, args...)})
}
