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
	"testing"

	"github.com/arclang/arc/source"
)

type fakeBuilder struct{}

func (fakeBuilder) NewNode(expr Expr, span source.Span) *Node { return NewNode(expr, span) }

func TestRangeIterable(t *testing.T) {
	sta := NewNode(Num{Value: 1}, sp(0))
	end := NewNode(Num{Value: 5}, sp(1))
	r := Range{Sta: sta, End: end}

	it, ok := AsIterable(r)
	if !ok {
		t.Fatal("Range should be iterable")
	}
	var b fakeBuilder

	if it.IterStart(b) != sta {
		t.Fatal("IterStart should return the range's start node")
	}

	cursor := NewNode(Num{Value: 1}, sp(2))
	hasNext := it.IterHasNext(b, cursor)
	binop, ok := hasNext.Expr.(BinOp)
	if !ok || binop.Kind != OpLess || binop.Lhs != cursor || binop.Rhs != end {
		t.Fatalf("expected cursor < end, got %#v", hasNext.Expr)
	}

	next := it.IterNext(b, cursor)
	add, ok := next.Expr.(BinOp)
	if !ok || add.Kind != OpAdd || add.Lhs != cursor {
		t.Fatalf("expected cursor + 1, got %#v", next.Expr)
	}
	one, ok := add.Rhs.Expr.(Num)
	if !ok || one.Value != 1 {
		t.Fatalf("expected the increment literal to be 1, got %#v", add.Rhs.Expr)
	}
}

func TestAsIterableRejectsNonIterable(t *testing.T) {
	if _, ok := AsIterable(Num{Value: 1}); ok {
		t.Fatal("Num should not be iterable")
	}
}
