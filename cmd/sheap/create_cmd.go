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

func newCreateCmd() *cobra.Command {
	flags := &commonFlags{}
	cmd := &cobra.Command{
		Use:   "create <fixture.yaml>",
		Short: "synthesise an inductive parameter body from a correspondence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func runCreate(cmd *cobra.Command, path string, flags *commonFlags) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc createFixture
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("sheap: decoding %s: %w", path, err)
	}

	body1, corres, err := doc.build()
	if err != nil {
		return err
	}

	cfg := flags.config()
	out := cmd.OutOrStdout()

	switch {
	case doc.Cell1 != nil:
		if doc.Blink1 == nil || doc.Flink1 == nil {
			return fmt.Errorf("sheap: cell1 fixture also requires blink1 and flink1")
		}
		para, esShared := match.HparaDllCreate(cfg, corres, body1, doc.Cell1.E, doc.Blink1.E, doc.Flink1.E)
		fmt.Fprintf(out, "cell=%s blink=%s flink=%s\n", para.Cell, para.Blink, para.Flink)
		fmt.Fprintf(out, "svars: %v\n", para.SvarsDll)
		fmt.Fprintf(out, "evars: %v\n", para.EvarsDll)
		fmt.Fprintf(out, "body: %d predicate(s)\n", len(para.BodyDll))
		for _, p := range para.BodyDll {
			fmt.Fprintf(out, "  %s\n", p.Pred)
		}
		fmt.Fprintf(out, "es_shared: %v\n", esShared)

	default:
		para, esShared := match.HparaCreate(cfg, corres, body1, doc.Root1.E, doc.Next1.E)
		fmt.Fprintf(out, "root=%s next=%s\n", para.Root, para.Next)
		fmt.Fprintf(out, "svars: %v\n", para.Svars)
		fmt.Fprintf(out, "evars: %v\n", para.Evars)
		fmt.Fprintf(out, "body: %d predicate(s)\n", len(para.Body))
		for _, p := range para.Body {
			fmt.Fprintf(out, "  %s\n", p.Pred)
		}
		fmt.Fprintf(out, "es_shared: %v\n", esShared)
	}

	return nil
}
