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

// Fixture decoding is the CLI's own concern, external to the matcher:
// internal/adt and internal/match never see YAML. This
// file's fixture format is a test/demo convenience, not a language — it
// supports only enough of the term algebra (Var, Const, PointsTo, Lseg,
// Record, Array) to drive the example fixtures under testdata; Dllseg and
// the Cast/UnOp/BinOp/Lfield/Lindex expression forms are not exposed here,
// though the matcher itself handles all of them.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sheaplang/sheap/internal/adt"
	"github.com/sheaplang/sheap/internal/match"
)

// exprNode decodes one scalar or small-mapping YAML value into an adt.Expr:
// a leading "'" marks a primed (logical) variable, "true"/"false" a bool
// constant, a bare integer a numeric constant, a {str: ...} mapping a
// string constant, and any other bare word an unprimed (program) variable.
type exprNode struct {
	E adt.Expr
}

func (n *exprNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		s := value.Value
		switch {
		case strings.HasPrefix(s, "'"):
			n.E = adt.Var{Ident: adt.Ident{Name: strings.TrimPrefix(s, "'"), Kind: adt.Primed}}
		case s == "true" || s == "false":
			n.E = adt.Const{Kind: adt.ConstBool, Bool: s == "true"}
		default:
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				n.E = adt.NewIntConst(i)
			} else {
				n.E = adt.Var{Ident: adt.Ident{Name: s, Kind: adt.Unprimed}}
			}
		}
		return nil

	case yaml.MappingNode:
		var m struct {
			Str *string `yaml:"str"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		if m.Str != nil {
			n.E = adt.Const{Kind: adt.ConstString, Str: *m.Str}
			return nil
		}
		return fmt.Errorf("sheap: expr mapping must set str")

	default:
		return fmt.Errorf("sheap: unsupported expr fixture node")
	}
}

// valueNode decodes an atom, a record ({fields: {name: value}}), or an
// array ({array: [value, ...]}) into an adt.StrExp.
type valueNode struct {
	SE adt.StrExp
}

func (n *valueNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		var e exprNode
		if err := value.Decode(&e); err != nil {
			return err
		}
		n.SE = adt.Atom{X: e.E}
		return nil
	}

	var m struct {
		Fields map[string]valueNode `yaml:"fields"`
		Array  []valueNode          `yaml:"array"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}

	switch {
	case m.Fields != nil:
		in := fixtureInterner
		fields := make([]adt.FieldVal, 0, len(m.Fields))
		for name, v := range m.Fields {
			fields = append(fields, adt.FieldVal{Field: in.Field(name), Val: v.SE})
		}
		n.SE = adt.NewRecord(fields, nil)
		return nil

	case m.Array != nil:
		cells := make([]adt.CellVal, len(m.Array))
		for i, v := range m.Array {
			cells[i] = adt.CellVal{Index: adt.NewIntConst(int64(i)), Val: v.SE}
		}
		n.SE = adt.NewArray(adt.NewIntConst(int64(len(m.Array))), cells, nil)
		return nil

	default:
		return fmt.Errorf("sheap: value mapping must set fields or array")
	}
}

// fixtureInterner is shared by every fixture decoded in one CLI run, so
// that field names decoded from separate YAML documents (heap vs pattern vs
// para bodies) land on the same Feature encoding.
var fixtureInterner = adt.NewInterner()

type paraFixture struct {
	Root  string       `yaml:"root"`
	Next  string       `yaml:"next"`
	Svars []string     `yaml:"svars"`
	Evars []string     `yaml:"evars"`
	Body  []patFixture `yaml:"body"`
}

func (p paraFixture) build(paras map[string]*adt.Para) (*adt.Para, error) {
	body, err := buildPats(p.Body, paras)
	if err != nil {
		return nil, err
	}
	return &adt.Para{
		Root:  unprimedOrPrimedIdent(p.Root),
		Next:  unprimedOrPrimedIdent(p.Next),
		Svars: identList(p.Svars),
		Evars: identList(p.Evars),
		Body:  body,
	}, nil
}

func unprimedOrPrimedIdent(s string) adt.Ident {
	if strings.HasPrefix(s, "'") {
		return adt.Ident{Name: strings.TrimPrefix(s, "'"), Kind: adt.Primed}
	}
	return adt.Ident{Name: s, Kind: adt.Unprimed}
}

func identList(ss []string) []adt.Ident {
	out := make([]adt.Ident, len(ss))
	for i, s := range ss {
		out[i] = unprimedOrPrimedIdent(s)
	}
	return out
}

type hpredFixture struct {
	PointsTo *pointsToFixture `yaml:"points_to"`
	Lseg     *lsegFixture     `yaml:"lseg"`
}

type pointsToFixture struct {
	Root  exprNode  `yaml:"root"`
	Value valueNode `yaml:"value"`
	Typ   string    `yaml:"typ"`
}

type lsegFixture struct {
	Kind   string     `yaml:"kind"`
	Para   string     `yaml:"para"`
	From   exprNode   `yaml:"from"`
	To     exprNode   `yaml:"to"`
	Shared []exprNode `yaml:"shared"`
}

func (h hpredFixture) build(paras map[string]*adt.Para) (adt.HPred, error) {
	switch {
	case h.PointsTo != nil:
		return adt.PointsTo{
			RootExpr: h.PointsTo.Root.E,
			X:        h.PointsTo.Value.SE,
			Typ:      adt.Typ{Name: h.PointsTo.Typ},
		}, nil
	case h.Lseg != nil:
		para, ok := paras[h.Lseg.Para]
		if !ok {
			return nil, fmt.Errorf("sheap: fixture references undefined para %q", h.Lseg.Para)
		}
		k := adt.PE
		if h.Lseg.Kind == "NE" {
			k = adt.NE
		}
		return adt.Lseg{
			K:      k,
			Para:   para,
			From:   h.Lseg.From.E,
			To:     h.Lseg.To.E,
			Shared: exprList(h.Lseg.Shared),
		}, nil
	default:
		return nil, fmt.Errorf("sheap: fixture heap predicate must set points_to or lseg")
	}
}

func exprList(ns []exprNode) []adt.Expr {
	out := make([]adt.Expr, len(ns))
	for i, n := range ns {
		out[i] = n.E
	}
	return out
}

type patFixture struct {
	Pred     hpredFixture `yaml:"pred"`
	ImplFlag bool         `yaml:"impl_flag"`
}

func buildPats(pats []patFixture, paras map[string]*adt.Para) ([]adt.HPat, error) {
	out := make([]adt.HPat, len(pats))
	for i, p := range pats {
		h, err := p.Pred.build(paras)
		if err != nil {
			return nil, err
		}
		out[i] = adt.HPat{Pred: h, ImplFlag: p.ImplFlag}
	}
	return out, nil
}

// matchFixture is the top-level document the "match" subcommand loads.
type matchFixture struct {
	Paras   map[string]paraFixture `yaml:"paras"`
	Heap    []hpredFixture         `yaml:"heap"`
	Pattern []patFixture           `yaml:"pattern"`
	Vars    []string               `yaml:"vars"`
}

// todoFixture decodes a two-element [e1, e2] YAML sequence into a
// correspondence obligation.
type todoFixture [2]exprNode

// isoFixture is the top-level document the "iso" subcommand loads. Either
// Heap (the one-heap form, find_partial_iso) or both Heap1 and Heap2 (the
// two-heap form, find_partial_iso_from_two_sigmas) must be set.
type isoFixture struct {
	Paras map[string]paraFixture `yaml:"paras"`
	Heap  []hpredFixture         `yaml:"heap"`
	Heap1 []hpredFixture         `yaml:"heap1"`
	Heap2 []hpredFixture         `yaml:"heap2"`
	Todos [][2]exprNode          `yaml:"todos"`
	Mode  string                 `yaml:"mode"`
}

func (f isoFixture) buildParas() (map[string]*adt.Para, error) {
	paras := make(map[string]*adt.Para, len(f.Paras))
	for name, pf := range f.Paras {
		para, err := pf.build(paras)
		if err != nil {
			return nil, err
		}
		paras[name] = para
	}
	return paras, nil
}

func buildHeap(hs []hpredFixture, paras map[string]*adt.Para) ([]adt.HPred, error) {
	out := make([]adt.HPred, len(hs))
	for i, h := range hs {
		hp, err := h.build(paras)
		if err != nil {
			return nil, err
		}
		out[i] = hp
	}
	return out, nil
}

func (f isoFixture) mode() (match.Mode, error) {
	switch f.Mode {
	case "", "exact":
		return match.Exact, nil
	case "lforget":
		return match.LFieldForget, nil
	case "rforget":
		return match.RFieldForget, nil
	default:
		return 0, fmt.Errorf("sheap: unknown iso mode %q", f.Mode)
	}
}

func (f isoFixture) todoPairs() []match.Pair {
	out := make([]match.Pair, len(f.Todos))
	for i, t := range f.Todos {
		out[i] = match.Pair{E1: t[0].E, E2: t[1].E}
	}
	return out
}

// createFixture is the top-level document the "create" subcommand loads:
// a correspondence plus the source heap it was built from, from which
// hpara_create or hpara_dll_create synthesises a parameter body.
type createFixture struct {
	Paras  map[string]paraFixture `yaml:"paras"`
	Body1  []patFixture           `yaml:"body1"`
	Corres [][2]exprNode          `yaml:"corres"`
	Root1  exprNode               `yaml:"root1"`
	Next1  exprNode               `yaml:"next1"`
	Cell1  *exprNode              `yaml:"cell1"`
	Blink1 *exprNode              `yaml:"blink1"`
	Flink1 *exprNode              `yaml:"flink1"`
}

func (f createFixture) build() (body1 []adt.HPat, corres []match.Pair, err error) {
	paras := make(map[string]*adt.Para, len(f.Paras))
	for name, pf := range f.Paras {
		para, err := pf.build(paras)
		if err != nil {
			return nil, nil, err
		}
		paras[name] = para
	}
	body1, err = buildPats(f.Body1, paras)
	if err != nil {
		return nil, nil, err
	}
	corres = make([]match.Pair, len(f.Corres))
	for i, c := range f.Corres {
		corres[i] = match.Pair{E1: c[0].E, E2: c[1].E}
	}
	return body1, corres, nil
}

func (f matchFixture) build() (heap []adt.HPred, pattern []adt.HPat, v adt.VarSet, err error) {
	paras := make(map[string]*adt.Para, len(f.Paras))
	for name, pf := range f.Paras {
		para, err := pf.build(paras)
		if err != nil {
			return nil, nil, adt.VarSet{}, err
		}
		paras[name] = para
	}
	heap = make([]adt.HPred, len(f.Heap))
	for i, h := range f.Heap {
		hp, err := h.build(paras)
		if err != nil {
			return nil, nil, adt.VarSet{}, err
		}
		heap[i] = hp
	}
	pattern, err = buildPats(f.Pattern, paras)
	if err != nil {
		return nil, nil, adt.VarSet{}, err
	}
	v = adt.NewVarSet(identList(f.Vars)...)
	return heap, pattern, v, nil
}
