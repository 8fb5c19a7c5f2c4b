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

	"github.com/arclang/arc/node"
)

// CompileError is returned from Compile when an expression cannot be
// lowered, carrying the offending node's span for error reporting.
type CompileError struct {
	At  *node.Node
	Msg string
}

func (c *CompileError) Error() string {
	return fmt.Sprintf("%v: %s", c.At.Span, c.Msg)
}

// Compile lowers n's expression tree to Code, per spec §4.7's table.
func Compile(n *node.Node) (Code, error) {
	switch e := n.Expr.(type) {
	case node.Num:
		return Int{Value: e.Value}, nil
	case node.Str:
		return Str{Value: e.Value}, nil
	case node.Const:
		return Const{Value: e.Value}, nil
	case node.Seq:
		items, err := compileAll(e.List.Nodes())
		if err != nil {
			return nil, err
		}
		return Seq{Items: items}, nil
	case node.BinOp:
		lhs, err := Compile(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := Compile(e.Rhs)
		if err != nil {
			return nil, err
		}
		switch e.Kind {
		case node.OpAdd:
			return Add{Lhs: lhs, Rhs: rhs}, nil
		case node.OpMul:
			return Mul{Lhs: lhs, Rhs: rhs}, nil
		case node.OpLess:
			return Less{Lhs: lhs, Rhs: rhs}, nil
		}
		return nil, &CompileError{At: n, Msg: fmt.Sprintf("unknown binary operator %v", e.Kind)}
	case node.Print:
		args, err := compileAll(e.Args.Nodes())
		if err != nil {
			return nil, err
		}
		return Print{Args: args}, nil
	case node.RefInit:
		value, err := Compile(e.Decl.Node)
		if err != nil {
			return nil, err
		}
		e.Decl.Init = true
		return Set{Name: e.Decl.Name, Value: value}, nil
	case node.Ref:
		if !e.Decl.Init {
			return nil, &CompileError{At: n, Msg: fmt.Sprintf("variable `%s` was not initialized", e.Decl.Name)}
		}
		return Get{Name: e.Decl.Name}, nil
	case node.Set:
		value, err := Compile(e.Node)
		if err != nil {
			return nil, err
		}
		return Set{Name: e.Name, Value: value}, nil
	case node.While:
		cond, err := Compile(e.Cond)
		if err != nil {
			return nil, err
		}
		body, err := Compile(e.Body)
		if err != nil {
			return nil, err
		}
		return While{Cond: cond, Body: body}, nil
	default:
		return nil, &CompileError{At: n, Msg: "expression cannot be compiled"}
	}
}

func compileAll(nodes []*node.Node) ([]Code, error) {
	out := make([]Code, len(nodes))
	for i, n := range nodes {
		c, err := Compile(n)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
