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

package ops_test

import (
	"testing"

	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/ops"
)

func TestPrintConsumesTrailingSiblings(t *testing.T) {
	p := &fakeProgram{}
	kw := node.NewNode(node.Id{Name: "print"}, sp(0, 5))
	a := node.NewNode(node.Id{Name: "a"}, sp(6, 1))
	b := node.NewNode(node.Id{Name: "b"}, sp(8, 1))
	list := node.NewList([]*node.Node{kw, a, b})

	pr := ops.Print{}
	if err := pr.Execute(p, bind.ID("print"), []*node.Node{kw}, bind.Range{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if list.Len() != 1 {
		t.Fatalf("list.Len() = %d, want 1", list.Len())
	}
	pn, ok := list.At(0).Expr.(node.Print)
	if !ok {
		t.Fatalf("Expr = %#v, want Print", list.At(0).Expr)
	}
	args := pn.Args.Nodes()
	if len(args) != 2 || args[0] != a || args[1] != b {
		t.Fatalf("args = %v, want [a, b]", args)
	}
}

func TestPrintWithNoArguments(t *testing.T) {
	p := &fakeProgram{}
	kw := node.NewNode(node.Id{Name: "print"}, sp(0, 5))
	list := node.NewList([]*node.Node{kw})

	pr := ops.Print{}
	if err := pr.Execute(p, bind.ID("print"), []*node.Node{kw}, bind.Range{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	pn, ok := list.At(0).Expr.(node.Print)
	if !ok {
		t.Fatalf("Expr = %#v, want Print", list.At(0).Expr)
	}
	if pn.Args.Len() != 0 {
		t.Fatalf("Args.Len() = %d, want 0", pn.Args.Len())
	}
}
