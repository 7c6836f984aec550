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

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sheaplang/sheap/internal/adt"
	"github.com/sheaplang/sheap/internal/match"
)

// commonFlags are the --abs-struct and -v/--verbose flags every subcommand
// maps onto a match.Config.
type commonFlags struct {
	absStruct int
	verbose   bool
}

// addCommonFlags registers the flags every subcommand shares onto f, a free
// function taking the FlagSet directly (the cmd/cue/cmd/flags.go
// addGlobalFlags/addOutFlags shape) rather than a method on *cobra.Command.
func addCommonFlags(f *pflag.FlagSet, flags *commonFlags) {
	f.IntVar(&flags.absStruct, "abs-struct", 0, "field-forgetting tolerance level (0 disables)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "trace the backtracking search")
}

func (f *commonFlags) register(cmd *cobra.Command) {
	addCommonFlags(cmd.Flags(), f)
}

func (f *commonFlags) config() *match.Config {
	tracer := &adt.Tracer{Out: os.Stderr}
	if f.verbose {
		tracer.Verbosity = 1
	}
	return &match.Config{
		AbsStruct: f.absStruct,
		Tracer:    tracer,
		IDs:       adt.NewIDGen(),
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sheap",
		Short: "sheap matches symbolic heaps against separation-logic patterns",
		Long: `sheap is a driver around the symbolic-heap pattern matcher: given a
YAML fixture describing a heap and a pattern, it decides entailment and
reports the witnessing substitution and leftover heap.

This command exists to give the matcher a runnable surface for the fixtures
under testdata; it is not part of the matcher's own interface.`,
		SilenceUsage: true,
	}

	root.AddCommand(newMatchCmd(), newIsoCmd(), newCreateCmd())
	return root
}
