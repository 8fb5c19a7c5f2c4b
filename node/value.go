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

// Package node holds the forest data model the rewriting engine
// operates on: Expr variants, Node (an expr plus its span and
// parent-list back-link), List, LetDecl, and the runtime Value
// type the compiled program produces.
package node

import (
	"fmt"
	"strings"
)

// ValueKind discriminates the runtime Value variants.
type ValueKind int

const (
	ValUnit ValueKind = iota
	ValInt
	ValStr
	ValBool
	ValTuple
)

// Value is the runtime value produced by executing compiled code:
// Unit, Int(int32), Str(interned), Bool, or Tuple(values).
type Value struct {
	Kind  ValueKind
	Int   int32
	Str   string
	Bool  bool
	Tuple []Value
}

func Unit() Value             { return Value{Kind: ValUnit} }
func IntValue(i int32) Value  { return Value{Kind: ValInt, Int: i} }
func StrValue(s string) Value { return Value{Kind: ValStr, Str: s} }
func BoolValue(b bool) Value  { return Value{Kind: ValBool, Bool: b} }
func TupleValue(vs []Value) Value {
	return Value{Kind: ValTuple, Tuple: vs}
}

// Display formats v the way Print joins arguments: a bare textual
// form with no Go-struct punctuation. Unit renders as the empty
// string, per Print's "format each non-Unit value" rule.
func (v Value) Display() string {
	switch v.Kind {
	case ValUnit:
		return ""
	case ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ValStr:
		return v.Str
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValTuple:
		parts := make([]string, len(v.Tuple))
		for i, e := range v.Tuple {
			parts[i] = e.Display()
		}
		return strings.Join(parts, ", ")
	default:
		return "<invalid value>"
	}
}

func (v Value) String() string { return v.Display() }
