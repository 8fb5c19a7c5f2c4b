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

func TestDeclBindsAndRewritesInitializer(t *testing.T) {
	p := &fakeProgram{}
	numNode := node.NewNode(node.Num{Value: 5}, sp(5, 1))
	letNode := node.NewNode(node.Let{Name: "x", Node: numNode}, sp(0, 6))

	d := ops.Decl{Precedence: 10}
	if err := d.Execute(p, bind.NoKey, []*node.Node{letNode}, bind.Range{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	ri, ok := letNode.Expr.(node.RefInit)
	if !ok {
		t.Fatalf("letNode.Expr = %#v, want RefInit", letNode.Expr)
	}
	if ri.Decl.Name != "x" || ri.Decl.Node != numNode {
		t.Fatalf("decl = %+v, want Name=x Node=numNode", ri.Decl)
	}

	if len(p.binds) != 1 {
		t.Fatalf("binds = %d, want 1", len(p.binds))
	}
	b := p.binds[0]
	if b.key != bind.ID("x") {
		t.Fatalf("bind key = %v, want ID(x)", b.key)
	}
	if b.order != 10 {
		t.Fatalf("bind order = %v, want 10", b.order)
	}
	bv, ok := b.value.(ops.BindVar)
	if !ok || bv.Decl != ri.Decl {
		t.Fatalf("bind value = %#v, want BindVar{Decl: same decl}", b.value)
	}
}

func TestBindVarRewritesIdentifiers(t *testing.T) {
	p := &fakeProgram{}
	decl := &node.LetDecl{Name: "x"}
	idNode := node.NewNode(node.Id{Name: "x"}, sp(20, 1))

	bv := ops.BindVar{Decl: decl}
	if err := bv.Execute(p, bind.ID("x"), []*node.Node{idNode}, bind.Range{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	ref, ok := idNode.Expr.(node.Ref)
	if !ok || ref.Decl != decl {
		t.Fatalf("idNode.Expr = %#v, want Ref{Decl: decl}", idNode.Expr)
	}
}
