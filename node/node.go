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

package node

import (
	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/source"
)

// Node is an immutable-by-convention cell holding an expression and
// its span, plus the back-links to the list it currently lives in.
// Identity is address: two Nodes are the same node iff they are the
// same pointer. Expr is mutated only through List's owning Program,
// via SetExpr — never assigned directly by any other package.
type Node struct {
	Expr   Expr
	Span   source.Span
	parent *List
	index  int
}

// NewNode allocates a detached node. It has no parent list until
// inserted into one.
func NewNode(expr Expr, span source.Span) *Node {
	return &Node{Expr: expr, Span: span}
}

// SetExpr is the single mutation primitive for a node's expression,
// per spec §4.5: "the only legitimate way to rewrite expr in place."
func (n *Node) SetExpr(expr Expr) { n.Expr = expr }

// Parent returns the list n currently belongs to, or nil if detached.
func (n *Node) Parent() *List { return n.parent }

// Index returns n's position within its parent list, reindexing the
// list first if it was left dirty by an intervening mutation. Panics
// if n is detached.
func (n *Node) Index() int {
	if n.parent == nil {
		panic("node: Index called on a detached node")
	}
	n.parent.reindex()
	return n.index
}

// BindKey implements bind.Node.
func (n *Node) BindKey() bind.Key { return keyOf(n.Expr) }

// BindSpan implements bind.Node.
func (n *Node) BindSpan() source.Span { return n.Span }

// SpanOf returns the smallest span covering every node in nodes,
// which must be non-empty and share a source.
func SpanOf(nodes []*Node) source.Span {
	sp := nodes[0].Span
	for _, n := range nodes[1:] {
		sp = source.Between(sp, n.Span)
	}
	return sp
}

// LetDecl is the declaration a Let/RefInit pair and every Ref to the
// same name share. Init is set once code generation has emitted the
// declaration's initializer, enforcing use-after-initialization.
type LetDecl struct {
	Name string
	Node *Node
	Init bool
}
