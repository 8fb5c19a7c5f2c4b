// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package code is the compiled instruction set a Node tree lowers to:
// flat enough to execute directly, transpile, or JIT, per spec §4.7.
package code

import "github.com/arclang/arc/node"

// Code is the sum type every compiled instruction implements.
type Code interface {
	codeNode()
}

type Int struct{ Value int32 }

func (Int) codeNode() {}

type Str struct{ Value string }

func (Str) codeNode() {}

// Const wraps an already-evaluated runtime Value, passed through
// verbatim from the source Const expression.
type Const struct{ Value node.Value }

func (Const) codeNode() {}

type Seq struct{ Items []Code }

func (Seq) codeNode() {}

type Add struct{ Lhs, Rhs Code }

func (Add) codeNode() {}

type Mul struct{ Lhs, Rhs Code }

func (Mul) codeNode() {}

type Less struct{ Lhs, Rhs Code }

func (Less) codeNode() {}

type Print struct{ Args []Code }

func (Print) codeNode() {}

// Set evaluates Value and stores the result under Name, declaring it
// on first use (RefInit) or reassigning it (Set).
type Set struct {
	Name  string
	Value Code
}

func (Set) codeNode() {}

// Get reads the current value stored under Name, failing at runtime
// if it was never set.
type Get struct{ Name string }

func (Get) codeNode() {}

type While struct{ Cond, Body Code }

func (While) codeNode() {}
