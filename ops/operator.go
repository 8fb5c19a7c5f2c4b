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

// Package ops implements the built-in rewriting operators from spec
// §4.4: Decl, BindVar, SplitAt, MakeRange, MakeForEach, EvalForEach,
// and Print. Each is a capability with a single Execute method that
// may mutate the node forest and register further bindings through
// the Program interface.
package ops

import (
	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/source"
)

// Program is the callback surface an operator needs from the engine
// façade: allocating and splicing nodes, rewriting a node's
// expression, and registering further bindings. Implemented by
// program.Program; defined here, not there, so this package does not
// import program (which imports this one).
type Program interface {
	NewNode(expr node.Expr, span source.Span) *node.Node
	NewList(nodes []*node.Node) *node.List
	Bind(span source.Span, key bind.Key, value Operator, order bind.Order)
	SetNode(n *node.Node, expr node.Expr)

	// SpliceList removes the count nodes starting at position at in
	// list and inserts nodes in their place, returning the removed
	// nodes.
	SpliceList(list *node.List, at, count int, nodes ...*node.Node) []*node.Node
	// RemoveNodes removes and returns the count nodes starting at
	// position at in list, without inserting anything.
	RemoveNodes(list *node.List, at, count int) []*node.Node
	// ReplaceList discards every node currently in list and replaces
	// them wholesale with nodes.
	ReplaceList(list *node.List, nodes ...*node.Node)
	// SplitList divides list into two new lists at position at,
	// leaving list empty.
	SplitList(list *node.List, at int) (*node.List, *node.List)
}

// Operator is the capability a binding carries, per spec §4.4: it
// runs once per dequeued segment, given the segment's key, the nodes
// that matched it, and the range the segment covered.
type Operator interface {
	Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error
}

// farFutureLength is used to build an "open ended" span stretching
// from a starting offset to the practical end of a source, for
// bindings like Decl's that should match every later reference in the
// same source.
const farFutureLength = int(1) << 60

func openSpan(src, from int) source.Span {
	return source.Span{Source: src, Offset: from, Length: farFutureLength}
}
