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

	"github.com/cockroachdb/apd/v3"
)

// Expr is the tagged union of scalar program/logical expressions: Var,
// Const, Sizeof, Cast, UnOp, BinOp, Lvar, Lfield, Lindex. There is
// deliberately no interface method beyond String; the matcher in
// internal/match dispatches on concrete type via a type switch rather than
// introducing virtual dispatch.
type Expr interface {
	String() string
}

// Var is a reference to an Ident. Only Var with a Primed Ident is ever bound
// by exp_match.
type Var struct {
	Ident Ident
}

func (e Var) String() string { return e.Ident.String() }

// ConstKind distinguishes the three literal shapes allowed inside Const.
type ConstKind uint8

const (
	ConstString ConstKind = iota
	ConstBool
	ConstNum
)

// Const is a ground literal: a string, a bool, or an arbitrary-precision
// decimal/integer (apd.Decimal).
type Const struct {
	Kind ConstKind
	Str  string
	Bool bool
	Num  apd.Decimal
}

func (e Const) String() string {
	switch e.Kind {
	case ConstString:
		return fmt.Sprintf("%q", e.Str)
	case ConstBool:
		return fmt.Sprintf("%v", e.Bool)
	default:
		return e.Num.String()
	}
}

// Equal reports whether two Const literals denote the same value.
func (e Const) Equal(o Const) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ConstString:
		return e.Str == o.Str
	case ConstBool:
		return e.Bool == o.Bool
	default:
		return e.Num.Cmp(&o.Num) == 0
	}
}

// NewIntConst builds a ConstNum from a plain integer, for tests and fixtures.
func NewIntConst(n int64) Const {
	c := Const{Kind: ConstNum}
	c.Num.SetInt64(n)
	return c
}

// Typ is an opaque, comparable type tag: matching only ever compares two
// types for syntactic equality, it never unifies them.
type Typ struct {
	Name string
}

func (t Typ) String() string { return t.Name }

// Sizeof is sizeof(T) for a type T.
type Sizeof struct {
	Typ Typ
}

func (e Sizeof) String() string { return fmt.Sprintf("sizeof(%s)", e.Typ) }

// Cast is (T)E. The cast's type is carried for pretty-printing only; Cast/Cast
// pairs are matched ignoring their types.
type Cast struct {
	Typ Typ
	X   Expr
}

func (e Cast) String() string { return fmt.Sprintf("(%s)%s", e.Typ, e.X) }

// UnOpKind enumerates the unary operators exp_match compares by identity.
type UnOpKind uint8

const (
	Neg UnOpKind = iota
	Not
	BNot
)

// UnOp is op X, optionally carrying a result type (ignored by matching).
type UnOp struct {
	Op  UnOpKind
	X   Expr
	Typ *Typ
}

func (e UnOp) String() string { return fmt.Sprintf("%v(%s)", e.Op, e.X) }

// BinOpKind enumerates the binary operators exp_match compares by identity;
// operators are not commutativity-normalised.
type BinOpKind uint8

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

// BinOp is X op Y.
type BinOp struct {
	Op   BinOpKind
	X, Y Expr
}

func (e BinOp) String() string { return fmt.Sprintf("(%s %v %s)", e.X, e.Op, e.Y) }

// Lvar is a reference to a program variable (as opposed to a logical Var).
type Lvar struct {
	Name string
}

func (e Lvar) String() string { return "$" + e.Name }

// Lfield is E.f, a field access at type Typ (ignored by matching beyond
// requiring the field names to be equal).
type Lfield struct {
	X     Expr
	Field Feature
	Typ   Typ
	names *Interner
}

func (e Lfield) String() string {
	name := fmt.Sprintf("#%d", e.Field)
	if e.names != nil {
		name = e.Field.String(e.names)
	}
	return fmt.Sprintf("%s.%s", e.X, name)
}

// NewLfield builds an Lfield that renders its field name using in.
func NewLfield(x Expr, f Feature, t Typ, in *Interner) Lfield {
	return Lfield{X: x, Field: f, Typ: t, names: in}
}

// Lindex is E[I].
type Lindex struct {
	Base, Index Expr
}

func (e Lindex) String() string { return fmt.Sprintf("%s[%s]", e.Base, e.Index) }
