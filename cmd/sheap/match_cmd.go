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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sheaplang/sheap/internal/adt"
	"github.com/sheaplang/sheap/internal/match"
)

func newMatchCmd() *cobra.Command {
	flags := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "match <fixture.yaml>",
		Short: "decide whether a heap entails a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runMatch(cmd *cobra.Command, path string, flags *commonFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc matchFixture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("sheap: decoding %s: %w", path, err)
	}

	heap, pattern, v, err := doc.build()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if cv, ok := r.(*adt.ContractViolation); ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "sheap: contract violation: %s\n", cv.Msg)
				os.Exit(2)
			}
			panic(r)
		}
	}()

	sigma, leftover, ok := match.Run(flags.config(), heap, pattern, v)
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no match")
		os.Exit(1)
		return nil
	}

	printSubst(cmd, sigma)
	fmt.Fprintf(cmd.OutOrStdout(), "leftover: %d predicate(s)\n", len(leftover))
	for _, h := range leftover {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", h)
	}
	return nil
}

func printSubst(cmd *cobra.Command, sigma adt.Subst) {
	out := cmd.OutOrStdout()
	ids := sigma.Domain()
	adt.SortIdents(ids)
	fmt.Fprintf(out, "substitution: %d binding(s)\n", len(ids))
	for _, id := range ids {
		e, _ := sigma.Lookup(id)
		fmt.Fprintf(out, "  %s = %s\n", id, e)
	}
}
