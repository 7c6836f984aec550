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

import (
	"fmt"
	"io"
	"strings"
)

// A Tracer is a small indent-tracking trace logger, modelled on
// internal/core/adt/context.go's OpContext.Logf/Indentf/Un: a hand-rolled
// indent tracker rather than a third-party structured logger.
type Tracer struct {
	// Verbosity gates output: 0 disables tracing entirely.
	Verbosity int
	Out       io.Writer
	depth     int
}

// Logf writes an indented trace line if t.Verbosity > 0.
func (t *Tracer) Logf(format string, args ...interface{}) {
	if t == nil || t.Verbosity <= 0 || t.Out == nil {
		return
	}
	fmt.Fprintf(t.Out, "%s%s\n", strings.Repeat("  ", t.depth), fmt.Sprintf(format, args...))
}

// Indentf logs format and returns a closer that must be called (typically
// via defer) to dedent: `defer t.Indentf("MATCH(%v)", h)()`.
func (t *Tracer) Indentf(format string, args ...interface{}) func() {
	t.Logf(format, args...)
	if t != nil {
		t.depth++
	}
	return func() {
		if t != nil {
			t.depth--
		}
	}
}
