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

package code_test

import (
	"testing"

	"github.com/arclang/arc/code"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/source"
)

func sp(offset, length int) source.Span {
	return source.Span{Source: 0, Offset: offset, Length: length}
}

func TestCompileLiterals(t *testing.T) {
	n := node.NewNode(node.Num{Value: 7}, sp(0, 1))
	c, err := code.Compile(n)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if i, ok := c.(code.Int); !ok || i.Value != 7 {
		t.Fatalf("Compile = %#v, want Int{7}", c)
	}
}

func TestCompileBinOp(t *testing.T) {
	lhs := node.NewNode(node.Num{Value: 2}, sp(0, 1))
	rhs := node.NewNode(node.Num{Value: 3}, sp(2, 1))
	n := node.NewNode(node.BinOp{Kind: node.OpAdd, Lhs: lhs, Rhs: rhs}, sp(0, 3))

	c, err := code.Compile(n)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	add, ok := c.(code.Add)
	if !ok {
		t.Fatalf("Compile = %#v, want Add", c)
	}
	if _, ok := add.Lhs.(code.Int); !ok {
		t.Fatalf("add.Lhs = %#v, want Int", add.Lhs)
	}
}

func TestCompileRefInitThenRef(t *testing.T) {
	decl := &node.LetDecl{Name: "x", Node: node.NewNode(node.Num{Value: 5}, sp(0, 1))}
	refInit := node.NewNode(node.RefInit{Decl: decl}, sp(0, 5))
	ref := node.NewNode(node.Ref{Decl: decl}, sp(10, 1))

	if _, err := code.Compile(ref); err == nil {
		t.Fatal("Compile(ref): want error before initialization, got nil")
	}

	c, err := code.Compile(refInit)
	if err != nil {
		t.Fatalf("Compile(refInit): %v", err)
	}
	set, ok := c.(code.Set)
	if !ok || set.Name != "x" {
		t.Fatalf("Compile(refInit) = %#v, want Set{Name: x}", c)
	}
	if !decl.Init {
		t.Fatal("decl.Init = false after compiling RefInit, want true")
	}

	c, err = code.Compile(ref)
	if err != nil {
		t.Fatalf("Compile(ref) after init: %v", err)
	}
	if get, ok := c.(code.Get); !ok || get.Name != "x" {
		t.Fatalf("Compile(ref) = %#v, want Get{Name: x}", c)
	}
}

func TestCompileUncompilableVariant(t *testing.T) {
	n := node.NewNode(node.LBreak{}, sp(0, 1))
	if _, err := code.Compile(n); err == nil {
		t.Fatal("Compile(LBreak): want error, got nil")
	}
}
