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

package bind

import (
	"testing"

	"github.com/arclang/arc/source"
)

type testNode struct {
	key    Key
	offset int
	length int
}

func (n *testNode) BindKey() Key { return n.key }
func (n *testNode) BindSpan() source.Span {
	return source.Span{Source: 0, Offset: n.offset, Length: n.length}
}

func node(key Key, offset int) *testNode { return &testNode{key: key, offset: offset, length: 1} }

func span(offset, length int) source.Span {
	return source.Span{Source: 0, Offset: offset, Length: length}
}

func TestTableEmpty(t *testing.T) {
	tb := NewTable[string]()
	if _, ok := tb.Peek(); ok {
		t.Fatal("expected no segment in an empty table")
	}
	if u := tb.Unbound(); len(u) != 0 {
		t.Fatalf("expected no unbound entries, got %v", u)
	}
}

func TestTableNodesStayUnboundBeforeAnyBind(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	for i := 0; i < 5; i++ {
		tb.Push(node(key, i))
	}
	if _, ok := tb.Peek(); ok {
		t.Fatal("no binding has been made; nothing should be queued")
	}
	u := tb.Unbound()
	if len(u) != 1 || len(u[0].Nodes) != 5 {
		t.Fatalf("expected 5 unbound nodes under one key, got %+v", u)
	}
}

func TestTableNoneKeyNeverPushed(t *testing.T) {
	tb := NewTable[string]()
	tb.Push(node(NoKey, 0))
	if u := tb.Unbound(); len(u) != 0 {
		t.Fatalf("expected a none-keyed node to be dropped, got %v", u)
	}
}

func TestTableSingleBinding(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	for i := 0; i < 10; i++ {
		tb.Push(node(key, i))
	}
	tb.Bind(span(0, 100), key, "op", 0)

	seg, ok := tb.Shift()
	if !ok {
		t.Fatal("expected one segment")
	}
	if seg.Value() != "op" {
		t.Fatalf("got value %q", seg.Value())
	}
	if len(seg.Nodes()) != 10 {
		t.Fatalf("expected 10 nodes in the segment, got %d", len(seg.Nodes()))
	}
	for i, n := range seg.Nodes() {
		if n.BindSpan().Offset != i {
			t.Fatalf("node %d out of order: offset %d", i, n.BindSpan().Offset)
		}
	}
	if _, ok := tb.Shift(); ok {
		t.Fatal("expected the queue to be drained")
	}
}

func TestTableBindThenPush(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(0, 100), key, "op", 0)
	for i := 0; i < 10; i++ {
		tb.Push(node(key, i))
	}
	seg, ok := tb.Shift()
	if !ok || len(seg.Nodes()) != 10 {
		t.Fatalf("expected all 10 pushed nodes in the bound segment, got ok=%v seg=%+v", ok, seg)
	}
}

func TestTableMultiBindingPre(t *testing.T) {
	// Bind a narrower, more specific sub-range first, then the wider
	// range: the earlier narrow binding must survive untouched.
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(10, 5), key, "inner", 0)
	tb.Bind(span(0, 100), key, "outer", 0)

	for i := 0; i < 20; i++ {
		tb.Push(node(key, i))
	}

	var segs []Segment[string]
	for {
		seg, ok := tb.Shift()
		if !ok {
			break
		}
		segs = append(segs, seg)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments (before/inner/after), got %d", len(segs))
	}
	byValue := map[string]int{}
	for _, s := range segs {
		byValue[s.Value()] += len(s.Nodes())
	}
	if byValue["inner"] != 5 {
		t.Fatalf("expected 5 nodes bound to inner, got %d", byValue["inner"])
	}
	if byValue["outer"] != 15 {
		t.Fatalf("expected 15 nodes bound to outer, got %d", byValue["outer"])
	}
}

func TestTableMultiBindingPos(t *testing.T) {
	// Bind the wide range first, then a narrower sub-range: the
	// narrower, later binding must carve its nodes out of the wide one.
	tb := NewTable[string]()
	key := ID("x")
	for i := 0; i < 20; i++ {
		tb.Push(node(key, i))
	}
	tb.Bind(span(0, 100), key, "outer", 0)
	tb.Bind(span(10, 5), key, "inner", 0)

	byValue := map[string]int{}
	for {
		seg, ok := tb.Shift()
		if !ok {
			break
		}
		byValue[seg.Value()] += len(seg.Nodes())
	}
	if byValue["inner"] != 5 {
		t.Fatalf("expected 5 nodes bound to inner, got %d", byValue["inner"])
	}
	if byValue["outer"] != 15 {
		t.Fatalf("expected 15 nodes bound to outer, got %d", byValue["outer"])
	}
}

func TestTableEqualSpanDoesNotOverride(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(0, 10), key, "first", 0)
	tb.Bind(span(0, 10), key, "second", 0)
	for i := 0; i < 10; i++ {
		tb.Push(node(key, i))
	}
	seg, ok := tb.Shift()
	if !ok {
		t.Fatal("expected a segment")
	}
	if seg.Value() != "first" {
		t.Fatalf("equal-span rebind should not override: got %q", seg.Value())
	}
	if _, ok := tb.Shift(); ok {
		t.Fatal("expected exactly one segment")
	}
}

// TestTableBindingSpan replicates the ten-point-bindings scenario from
// the original binding_span test: many disjoint single-point bindings
// inside three enclosing bindings must never be merged into, or
// overridden by, their enclosing range.
func TestTableBindingSpan(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")

	tb.Bind(span(0, 10), key, "a", 0)
	tb.Bind(span(10, 10), key, "b", 0)
	tb.Bind(span(20, 10), key, "c", 0)

	points := []int{1, 3, 5, 11, 13, 15, 21, 23, 25, 27}
	for _, p := range points {
		tb.Bind(span(p, 1), key, "point", 0)
	}
	for i := 0; i < 30; i++ {
		tb.Push(node(key, i))
	}

	byValue := map[string]int{}
	segments := 0
	for {
		seg, ok := tb.Shift()
		if !ok {
			break
		}
		segments++
		byValue[seg.Value()] += len(seg.Nodes())
	}
	if byValue["point"] != len(points) {
		t.Fatalf("expected %d point-bound nodes, got %d", len(points), byValue["point"])
	}
	if got := byValue["a"] + byValue["b"] + byValue["c"]; got != 30-len(points) {
		t.Fatalf("expected %d nodes left bound to a/b/c, got %d", 30-len(points), got)
	}
	// Each point bind splits the enclosing segment it lands in three
	// ways (prefix/point/suffix), a net +2 segments per point on top
	// of the 3 enclosing segments a/b/c started as.
	wantSegments := 3 + 2*len(points)
	if segments != wantSegments {
		t.Fatalf("expected %d segments, got %d", wantSegments, segments)
	}
}

func TestTableOrderingDrainsLowestPriorityFirst(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(0, 10), key, "low", 5)
	tb.Bind(span(100, 10), key, "high", 1)
	tb.Push(node(key, 0))
	tb.Push(node(key, 100))

	seg, ok := tb.Shift()
	if !ok || seg.Value() != "high" {
		t.Fatalf("expected the lower-order binding first, got %+v ok=%v", seg, ok)
	}
	seg, ok = tb.Shift()
	if !ok || seg.Value() != "low" {
		t.Fatalf("expected the higher-order binding second, got %+v ok=%v", seg, ok)
	}
}

func TestTableDistinctKeysDoNotInteract(t *testing.T) {
	tb := NewTable[string]()
	a, b := ID("a"), ID("b")
	tb.Bind(span(0, 10), a, "A", 0)
	tb.Push(node(b, 0))

	u := tb.Unbound()
	if len(u) != 1 || u[0].Key != b {
		t.Fatalf("expected node under key b to remain unbound, got %+v", u)
	}
}

func TestTableNeverOrderIsNoop(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(0, 10), key, "op", Never)
	tb.Push(node(key, 0))
	if _, ok := tb.Peek(); ok {
		t.Fatal("a Never-order binding must never be scheduled")
	}
}

func TestTableShiftLeavesSegmentUnqueuedButIndexed(t *testing.T) {
	tb := NewTable[string]()
	key := ID("x")
	tb.Bind(span(0, 10), key, "op", 0)
	tb.Push(node(key, 0))

	seg, ok := tb.Shift()
	if !ok || len(seg.Nodes()) != 1 {
		t.Fatalf("expected one node in the shifted segment, got %+v", seg)
	}
	if _, ok := tb.Peek(); ok {
		t.Fatal("queue should be empty after draining the only segment")
	}

	// The binding is still indexed: pushing another node in range
	// should be claimed directly, with no further Bind call.
	tb.Push(node(key, 1))
	seg, ok = tb.Shift()
	if !ok || len(seg.Nodes()) != 1 || seg.Value() != "op" {
		t.Fatalf("expected the still-indexed binding to claim the new node, got %+v ok=%v", seg, ok)
	}
}
