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

import "github.com/arclang/arc/source"

// Builder is the minimal Program capability an Iterable
// implementation needs: allocating a fresh, detached node. It exists
// so this package can define Iterable without importing program,
// which itself imports node.
type Builder interface {
	NewNode(expr Expr, span source.Span) *Node
}

// Iterable is the capability from spec §4.6 that lets EvalForEach
// lower a `foreach` loop to start/has-next/next primitives.
type Iterable interface {
	IterStart(b Builder) *Node
	IterHasNext(b Builder, cursor *Node) *Node
	IterNext(b Builder, cursor *Node) *Node
}

// AsIterable returns the Iterable capability for expr, if it has one.
// The only built-in implementation is Range; new iterables are added
// by extending this dispatch, per spec §9's design note.
func AsIterable(expr Expr) (Iterable, bool) {
	if r, ok := expr.(Range); ok {
		return rangeIterable{r}, true
	}
	return nil, false
}

type rangeIterable struct{ r Range }

func (ri rangeIterable) IterStart(b Builder) *Node {
	return ri.r.Sta
}

func (ri rangeIterable) IterHasNext(b Builder, cursor *Node) *Node {
	return b.NewNode(BinOp{Kind: OpLess, Lhs: cursor, Rhs: ri.r.End}, cursor.Span)
}

func (ri rangeIterable) IterNext(b Builder, cursor *Node) *Node {
	one := b.NewNode(Num{Value: 1}, cursor.Span)
	return b.NewNode(BinOp{Kind: OpAdd, Lhs: cursor, Rhs: one}, cursor.Span)
}
