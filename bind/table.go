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
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/arclang/arc/heap"
	"github.com/arclang/arc/source"
)

// Node is the capability a node forest element must expose to be
// bindable: the key it is looked up under and the span it occupies.
// Implemented by node.Node.
type Node interface {
	BindKey() Key
	BindSpan() source.Span
}

// Binding records one call to Table.Bind: the span it covers, the key
// it was made under, the operator value it carries, and the priority
// it was scheduled with.
type Binding[V any] struct {
	Span  source.Span
	Key   Key
	Value V
	Order Order
}

// Segment is a maximal run of offsets under one key and source that
// currently resolve to the same Binding, together with the nodes
// pushed into that run so far.
type Segment[V any] struct {
	binding *Binding[V]
	rng     Range
	source  int
	nodes   []Node
}

func (s *Segment[V]) Binding() Binding[V]    { return *s.binding }
func (s *Segment[V]) Key() Key               { return s.binding.Key }
func (s *Segment[V]) Value() V               { return s.binding.Value }
func (s *Segment[V]) Order() Order           { return s.binding.Order }
func (s *Segment[V]) BoundSpan() source.Span { return s.binding.Span }
func (s *Segment[V]) Range() Range           { return s.rng }
func (s *Segment[V]) Source() int            { return s.source }
func (s *Segment[V]) Nodes() []Node          { return s.nodes }

const notQueued = -1

// boundSegment is the priority-queue-visible wrapper around a
// Segment: queuePos tracks its index in Table.queue, or notQueued
// while the segment has no nodes and sits only in the per-source
// segment list.
type boundSegment[V any] struct {
	data     Segment[V]
	queuePos int
}

// sourceEntry holds one key's state for a single source: the nodes
// pushed so far that fall outside every bound segment, and the
// sorted, disjoint, gapless-within-bound-ranges segment list.
type sourceEntry[V any] struct {
	unbound  []Node
	segments []*boundSegment[V]
}

// keyEntry holds one key's per-source state.
type keyEntry[V any] struct {
	bySource map[int]*sourceEntry[V]
}

// Table is the (key, span) -> operator binding table from spec §4.3:
// nodes pushed under a key before any binding covers them sit in an
// unbound list; Bind partitions a source's offset space for a key
// into segments, resolving overlaps by specificity (narrower span
// wins ties keep the earlier binding); non-empty segments form a
// priority queue ordered by (order, key, range), drained by Shift.
type Table[V any] struct {
	keys  map[Key]*keyEntry[V]
	queue []*boundSegment[V]
}

// NewTable returns an empty binding table.
func NewTable[V any]() *Table[V] {
	return &Table[V]{keys: make(map[Key]*keyEntry[V])}
}

// heap.Interface, over the priority queue of non-empty segments.

func (t *Table[V]) Len() int { return len(t.queue) }

func (t *Table[V]) Less(i, j int) bool {
	a, b := t.queue[i].data, t.queue[j].data
	if a.binding.Order != b.binding.Order {
		return a.binding.Order < b.binding.Order
	}
	if a.binding.Key != b.binding.Key {
		return a.binding.Key.Less(b.binding.Key)
	}
	return a.rng.less(b.rng)
}

func (t *Table[V]) Swap(i, j int) {
	t.queue[i], t.queue[j] = t.queue[j], t.queue[i]
	t.queue[i].queuePos = i
	t.queue[j].queuePos = j
}

func (t *Table[V]) enqueue(seg *boundSegment[V]) {
	seg.queuePos = len(t.queue)
	t.queue = append(t.queue, seg)
	heap.ShiftUp(t, seg.queuePos)
}

func (t *Table[V]) fix(seg *boundSegment[V]) {
	if seg.queuePos != notQueued {
		heap.Fix(t, seg.queuePos)
	}
}

func (t *Table[V]) keyEntryFor(k Key) *keyEntry[V] {
	e, ok := t.keys[k]
	if !ok {
		e = &keyEntry[V]{bySource: make(map[int]*sourceEntry[V])}
		t.keys[k] = e
	}
	return e
}

func (ke *keyEntry[V]) sourceFor(src int) *sourceEntry[V] {
	e, ok := ke.bySource[src]
	if !ok {
		e = &sourceEntry[V]{}
		ke.bySource[src] = e
	}
	return e
}

// offsetInsertPoint returns the index in nodes, sorted by offset,
// after which a node at the given offset should be inserted so that
// nodes sharing an offset stay in push order.
func offsetInsertPoint(nodes []Node, offset int) int {
	return sort.Search(len(nodes), func(i int) bool {
		return nodes[i].BindSpan().Offset > offset
	})
}

// insertNode adds n into nodes (kept sorted by offset) and, if the
// owning segment was unqueued, enqueues it now that it holds a node.
func (t *Table[V]) insertNode(seg *boundSegment[V], n Node) {
	offset := n.BindSpan().Offset
	idx := offsetInsertPoint(seg.data.nodes, offset)
	seg.data.nodes = slices.Insert(seg.data.nodes, idx, n)
	if seg.queuePos == notQueued {
		t.enqueue(seg)
	}
}

// newSegment builds a segment over rng for binding, seeded with
// nodes, enqueuing it only if it already has nodes: an empty segment
// is part of the index but not the schedule until Push gives it one.
func (t *Table[V]) newSegment(binding *Binding[V], rng Range, src int, nodes []Node) *boundSegment[V] {
	seg := &boundSegment[V]{
		data:     Segment[V]{binding: binding, rng: rng, source: src, nodes: nodes},
		queuePos: notQueued,
	}
	if len(nodes) > 0 {
		t.enqueue(seg)
	}
	return seg
}

// Push adds a node to the table under its own key. If a segment of
// that key already covers the node's offset, it is appended straight
// into that segment (queuing it if this is its first node);
// otherwise it joins the key's unbound list, to be claimed by a
// future Bind.
func (t *Table[V]) Push(n Node) {
	key := n.BindKey()
	if key.IsNone() {
		return
	}
	span := n.BindSpan()
	offset := span.Offset

	se := t.keyEntryFor(key).sourceFor(span.Source)
	idx := sort.Search(len(se.segments), func(i int) bool {
		return se.segments[i].data.rng.End > offset
	})
	if idx < len(se.segments) && se.segments[idx].data.rng.Sta <= offset {
		t.insertNode(se.segments[idx], n)
		return
	}

	at := offsetInsertPoint(se.unbound, offset)
	se.unbound = slices.Insert(se.unbound, at, n)
}

// Bind registers that every node under key whose offset falls in
// span, in span's source, now resolves to value at the given
// priority. It is a no-op for a none key, an empty span, or Never.
//
// The key's segment list for span's source is walked left to right
// from the first segment that could overlap span. Gaps before or
// between overlapping segments become new, still-empty segments for
// this binding. Where an existing segment is exactly as specific
// (equal span) or more specific (its binding's span is strictly
// narrower than span) than the new binding, that segment is left
// alone and span effectively has a hole carved out of it. Where the
// new binding is strictly more specific, the existing segment is
// split around span's boundaries and the covered portion is rebound.
// Nodes already unbound within the affected offsets are then drained
// into their newly shaped segments.
func (t *Table[V]) Bind(span source.Span, key Key, value V, order Order) {
	if key.IsNone() || order == Never || span.IsEmpty() {
		return
	}
	binding := &Binding[V]{Span: span, Key: key, Value: value, Order: order}
	rng := rangeOf(span)
	src := span.Source

	se := t.keyEntryFor(key).sourceFor(src)
	start := sort.Search(len(se.segments), func(i int) bool {
		return se.segments[i].data.rng.End > rng.Sta
	})

	cur, end := rng.Sta, rng.End
	idx := start
	for idx < len(se.segments) && cur < end {
		seg := se.segments[idx]
		segSta, segEnd := seg.data.rng.Sta, seg.data.rng.End

		if segSta > cur {
			gapEnd := min(end, segSta)
			gap := t.newSegment(binding, Range{cur, gapEnd}, src, nil)
			se.segments = slices.Insert(se.segments, idx, gap)
			idx++
			cur = gapEnd
			continue
		}

		narrower := seg.data.binding.Span.Contains(span) && !sameRange(seg.data.binding.Span, span)
		if !narrower {
			// seg is at least as specific as the new binding: leave it
			// untouched and skip past its range.
			cur = segEnd
			idx++
			continue
		}
		oldBinding := seg.data.binding

		if cur > segSta {
			splitAt := sort.Search(len(seg.data.nodes), func(i int) bool {
				return seg.data.nodes[i].BindSpan().Offset >= cur
			})
			before := append([]Node(nil), seg.data.nodes[:splitAt]...)
			seg.data.nodes = seg.data.nodes[splitAt:]
			seg.data.rng = Range{cur, segEnd}
			t.fix(seg)

			prefix := t.newSegment(oldBinding, Range{segSta, cur}, src, before)
			se.segments = slices.Insert(se.segments, idx, prefix)
			idx++
		}

		segSta, segEnd = seg.data.rng.Sta, seg.data.rng.End
		if end < segEnd {
			splitAt := sort.Search(len(seg.data.nodes), func(i int) bool {
				return seg.data.nodes[i].BindSpan().Offset >= end
			})
			after := append([]Node(nil), seg.data.nodes[splitAt:]...)
			seg.data.nodes = seg.data.nodes[:splitAt]

			seg.data.binding = binding
			seg.data.rng = Range{segSta, end}
			t.fix(seg)
			idx++

			suffix := t.newSegment(oldBinding, Range{end, segEnd}, src, after)
			se.segments = slices.Insert(se.segments, idx, suffix)
		} else {
			seg.data.binding = binding
			t.fix(seg)
			idx++
		}
		if len(seg.data.nodes) == 0 && seg.queuePos != notQueued {
			// Every node moved to the prefix or suffix: take the
			// now-empty segment off the queue.
			i, last := seg.queuePos, len(t.queue)-1
			t.Swap(i, last)
			t.queue = t.queue[:last]
			seg.queuePos = notQueued
			if i < last {
				heap.Fix(t, i)
			}
		}
		cur = segEnd
	}
	if cur < end {
		tail := t.newSegment(binding, Range{cur, end}, src, nil)
		se.segments = slices.Insert(se.segments, idx, tail)
	}

	t.drainUnbound(se, start, rng)
}

// drainUnbound moves nodes whose offsets fall in rng out of the
// key/source's unbound list and into the segments that now cover
// them, scanning segments forward from searchFrom (the index Bind
// started its walk at, which can only have moved forward since).
func (t *Table[V]) drainUnbound(se *sourceEntry[V], searchFrom int, rng Range) {
	lo := sort.Search(len(se.unbound), func(i int) bool {
		return se.unbound[i].BindSpan().Offset >= rng.Sta
	})
	hi := lo + sort.Search(len(se.unbound)-lo, func(i int) bool {
		return se.unbound[lo+i].BindSpan().Offset >= rng.End
	})
	if lo >= hi {
		return
	}
	drained := append([]Node(nil), se.unbound[lo:hi]...)
	se.unbound = append(se.unbound[:lo], se.unbound[hi:]...)

	segIdx := searchFrom
	for _, n := range drained {
		offset := n.BindSpan().Offset
		for segIdx < len(se.segments) && offset >= se.segments[segIdx].data.rng.End {
			segIdx++
		}
		t.insertNode(se.segments[segIdx], n)
	}
}

// Peek returns the segment at the head of the priority queue without
// removing it.
func (t *Table[V]) Peek() (Segment[V], bool) {
	if len(t.queue) == 0 {
		return Segment[V]{}, false
	}
	return t.queue[0].data, true
}

// Shift removes and returns the highest-priority segment. The
// returned Segment takes ownership of its node list; the in-table
// segment is left with an empty node list and unqueued, so a later
// Push into its range starts the segment's queue membership fresh.
func (t *Table[V]) Shift() (Segment[V], bool) {
	n := len(t.queue)
	if n == 0 {
		return Segment[V]{}, false
	}
	t.Swap(0, n-1)
	seg := t.queue[n-1]
	t.queue = t.queue[:n-1]
	if len(t.queue) > 0 {
		heap.ShiftDown(t, 0)
	}
	seg.queuePos = notQueued

	taken := seg.data
	seg.data.nodes = nil
	return taken, true
}

// UnboundEntry reports the nodes under Key that were pushed but never
// covered by any binding, per Table.Unbound.
type UnboundEntry struct {
	Key   Key
	Nodes []Node
}

// Unbound returns, for every key with at least one unbound node, the
// nodes still waiting for a binding, in a deterministic key order.
func (t *Table[V]) Unbound() []UnboundEntry {
	keys := maps.Keys(t.keys)
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	var out []UnboundEntry
	for _, k := range keys {
		ke := t.keys[k]
		srcs := maps.Keys(ke.bySource)
		sort.Ints(srcs)

		var nodes []Node
		for _, s := range srcs {
			nodes = append(nodes, ke.bySource[s].unbound...)
		}
		if len(nodes) > 0 {
			out = append(out, UnboundEntry{Key: k, Nodes: nodes})
		}
	}
	return out
}
