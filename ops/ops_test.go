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
	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/ops"
	"github.com/arclang/arc/source"
)

// fakeBind records a single Bind call so tests can assert on what an
// operator scheduled for later resolution, without pulling in the full
// bind.Table machinery.
type fakeBind struct {
	span  source.Span
	key   bind.Key
	value ops.Operator
	order bind.Order
}

// fakeProgram implements ops.Program directly atop node.List/node.Node,
// recording every Bind call for assertions.
type fakeProgram struct {
	binds []fakeBind
}

func (p *fakeProgram) NewNode(expr node.Expr, span source.Span) *node.Node {
	return node.NewNode(expr, span)
}

func (p *fakeProgram) NewList(nodes []*node.Node) *node.List {
	return node.NewList(nodes)
}

func (p *fakeProgram) Bind(span source.Span, key bind.Key, value ops.Operator, order bind.Order) {
	p.binds = append(p.binds, fakeBind{span, key, value, order})
}

func (p *fakeProgram) SetNode(n *node.Node, expr node.Expr) {
	n.SetExpr(expr)
}

func (p *fakeProgram) SpliceList(list *node.List, at, count int, nodes ...*node.Node) []*node.Node {
	return list.Replace(at, count, nodes...)
}

func (p *fakeProgram) RemoveNodes(list *node.List, at, count int) []*node.Node {
	return list.Remove(at, count)
}

func (p *fakeProgram) ReplaceList(list *node.List, nodes ...*node.Node) {
	list.Remove(0, list.Len())
	list.Insert(0, nodes...)
}

func (p *fakeProgram) SplitList(list *node.List, at int) (*node.List, *node.List) {
	return list.Split(at)
}

func sp(offset, length int) source.Span {
	return source.Span{Source: 0, Offset: offset, Length: length}
}

func ids(names ...string) []*node.Node {
	out := make([]*node.Node, len(names))
	for i, n := range names {
		out[i] = node.NewNode(node.Id{Name: n}, sp(i, 1))
	}
	return out
}
