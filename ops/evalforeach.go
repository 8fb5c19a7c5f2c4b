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

package ops

import (
	"errors"
	"fmt"

	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
)

// EvalForEach lowers a resolved ForEach node into
// Seq[ RefInit(decl) /* v = iter.start */,
//      While(iter.has_next(v), Seq[ body..., Set(v, iter.next(v)) ]) ]
// per spec §4.7, running after MakeForEach at a later priority so the
// body's identifier references are already rewritten to Ref(decl).
// Per spec §9, the increment runs after the body and before the next
// condition check — this is intended, not a bug.
type EvalForEach struct{}

func (EvalForEach) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, n := range nodes {
		fe, ok := n.Expr.(node.ForEach)
		if !ok {
			return fmt.Errorf("ops: EvalForEach given a non-ForEach node for key %v", key)
		}
		if fe.ExprList.Len() != 1 {
			return fmt.Errorf("ops: foreach at %v: range expression must resolve to one expression", n.Span)
		}

		iterExpr := fe.ExprList.At(0)
		iterable, ok := node.AsIterable(iterExpr.Expr)
		if !ok {
			return errors.New("ops: expression is not iterable")
		}

		decl := fe.Decl
		startNode := iterable.IterStart(p)
		decl.Node = startNode
		declNode := p.NewNode(node.RefInit{Decl: decl}, startNode.Span)

		cursor := p.NewNode(node.Ref{Decl: decl}, startNode.Span)
		cond := iterable.IterHasNext(p, cursor)
		nextVal := iterable.IterNext(p, cursor)
		setNode := p.NewNode(node.Set{Name: decl.Name, Node: nextVal}, nextVal.Span)

		bodyNodes := p.RemoveNodes(fe.BodyList, 0, fe.BodyList.Len())
		loopBody := p.NewNode(node.Seq{List: p.NewList(append(bodyNodes, setNode))}, n.Span)

		whileNode := p.NewNode(node.While{Cond: cond, Body: loopBody}, n.Span)
		p.SetNode(n, node.Seq{List: p.NewList([]*node.Node{declNode, whileNode})})
	}
	return nil
}
