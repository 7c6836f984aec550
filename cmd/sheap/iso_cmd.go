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

	"github.com/sheaplang/sheap/internal/match"
)

func newIsoCmd() *cobra.Command {
	flags := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "iso <fixture.yaml>",
		Short: "find a bijection between two isomorphic sub-heaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIso(cmd, args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runIso(cmd *cobra.Command, path string, flags *commonFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc isoFixture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("sheap: decoding %s: %w", path, err)
	}

	paras, err := doc.buildParas()
	if err != nil {
		return err
	}
	mode, err := doc.mode()
	if err != nil {
		return err
	}
	cfg := flags.config()
	todos := doc.todoPairs()

	var corres []match.Pair
	var ok bool
	switch {
	case len(doc.Heap1) > 0 || len(doc.Heap2) > 0:
		h1, err := buildHeap(doc.Heap1, paras)
		if err != nil {
			return err
		}
		h2, err := buildHeap(doc.Heap2, paras)
		if err != nil {
			return err
		}
		corres, _, _, _, ok = match.FindPartialIsoFromTwoSigmas(cfg, mode, match.ExprEqSyntactic, h1, h2, todos)
	default:
		h, err := buildHeap(doc.Heap, paras)
		if err != nil {
			return err
		}
		corres, _, _, _, ok = match.FindPartialIso(cfg, mode, match.ExprEqSyntactic, h, todos)
	}

	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no isomorphism")
		os.Exit(1)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "correspondence: %d pair(s)\n", len(corres))
	for _, p := range corres {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s <-> %s\n", p.E1, p.E2)
	}
	return nil
}
