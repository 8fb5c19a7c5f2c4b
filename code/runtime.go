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

package code

import (
	"fmt"
	"strings"

	"github.com/arclang/arc/node"
)

// RuntimeError is returned from Runtime.Execute on a type mismatch or
// an undeclared-variable read.
type RuntimeError struct {
	Msg string
}

func (r *RuntimeError) Error() string { return r.Msg }

// Runtime holds the mutable state a Code tree executes against: an
// output buffer and a name-to-value store.
type Runtime struct {
	Output strings.Builder
	Vars   map[string]node.Value
}

// NewRuntime returns a Runtime with an empty variable store.
func NewRuntime() *Runtime {
	return &Runtime{Vars: make(map[string]node.Value)}
}

// Execute evaluates c against r, per spec §4.7's execution rules.
func (r *Runtime) Execute(c Code) (node.Value, error) {
	switch e := c.(type) {
	case Int:
		return node.IntValue(e.Value), nil
	case Str:
		return node.StrValue(e.Value), nil
	case Const:
		return e.Value, nil
	case Seq:
		result := node.Unit()
		for _, item := range e.Items {
			v, err := r.Execute(item)
			if err != nil {
				return node.Value{}, err
			}
			result = v
		}
		return result, nil
	case Add:
		return r.arith(e.Lhs, e.Rhs, "+", func(a, b int32) node.Value { return node.IntValue(a + b) })
	case Mul:
		return r.arith(e.Lhs, e.Rhs, "*", func(a, b int32) node.Value { return node.IntValue(a * b) })
	case Less:
		return r.arith(e.Lhs, e.Rhs, "<", func(a, b int32) node.Value { return node.BoolValue(a < b) })
	case Print:
		return r.execPrint(e)
	case Set:
		v, err := r.Execute(e.Value)
		if err != nil {
			return node.Value{}, err
		}
		r.Vars[e.Name] = v
		return v, nil
	case Get:
		v, ok := r.Vars[e.Name]
		if !ok {
			return node.Value{}, &RuntimeError{Msg: fmt.Sprintf("variable %q not declared", e.Name)}
		}
		return v, nil
	case While:
		return r.execWhile(e)
	default:
		return node.Value{}, &RuntimeError{Msg: fmt.Sprintf("cannot execute %T", c)}
	}
}

func (r *Runtime) arith(lhs, rhs Code, op string, combine func(a, b int32) node.Value) (node.Value, error) {
	lv, err := r.Execute(lhs)
	if err != nil {
		return node.Value{}, err
	}
	rv, err := r.Execute(rhs)
	if err != nil {
		return node.Value{}, err
	}
	if lv.Kind != node.ValInt || rv.Kind != node.ValInt {
		return node.Value{}, &RuntimeError{Msg: fmt.Sprintf("operator %q requires int operands", op)}
	}
	return combine(lv.Int, rv.Int), nil
}

func (r *Runtime) execPrint(p Print) (node.Value, error) {
	vals := make([]node.Value, len(p.Args))
	var parts []string
	for i, a := range p.Args {
		v, err := r.Execute(a)
		if err != nil {
			return node.Value{}, err
		}
		vals[i] = v
		if v.Kind != node.ValUnit {
			parts = append(parts, v.Display())
		}
	}
	r.Output.WriteString(strings.Join(parts, " "))
	r.Output.WriteByte('\n')
	if len(vals) == 0 {
		return node.Unit(), nil
	}
	return node.TupleValue(vals), nil
}

func (r *Runtime) execWhile(w While) (node.Value, error) {
	for {
		cv, err := r.Execute(w.Cond)
		if err != nil {
			return node.Value{}, err
		}
		if cv.Kind != node.ValBool {
			return node.Value{}, &RuntimeError{Msg: "while condition requires a bool"}
		}
		if !cv.Bool {
			return node.Unit(), nil
		}
		if _, err := r.Execute(w.Body); err != nil {
			return node.Value{}, err
		}
	}
}
