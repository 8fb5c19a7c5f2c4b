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

import "golang.org/x/exp/slices"

// List is an ordered sequence of nodes with a dirty flag: mutation
// sets dirty, and the next call that needs each node's index
// reindexes the whole list first rather than on every edit.
type List struct {
	nodes []*Node
	dirty bool
}

// NewList builds a list owning nodes. Every node must currently be
// detached; this is a programming error otherwise, per spec §4.5's
// splice semantics ("inserting a node into a list, it must not
// already have a parent").
func NewList(nodes []*Node) *List {
	return NewListInto(&List{}, nodes)
}

// NewListInto fills dst in place and returns it, rather than
// allocating a new List header, so a caller that has already placed
// dst at a stable address (an arena.Store, for one) can adopt nodes
// against that exact address instead of a throwaway one. dst must be
// a zero List.
func NewListInto(dst *List, nodes []*Node) *List {
	dst.nodes = append([]*Node(nil), nodes...)
	for _, n := range dst.nodes {
		adopt(n, dst)
	}
	dst.dirty = true
	return dst
}

func adopt(n *Node, l *List) {
	if n.parent != nil {
		panic("node: cannot insert a node that already has a parent list")
	}
	n.parent = l
}

func (l *List) reindex() {
	if !l.dirty {
		return
	}
	for i, n := range l.nodes {
		n.index = i
	}
	l.dirty = false
}

// Len returns the number of nodes currently in the list.
func (l *List) Len() int { return len(l.nodes) }

// At returns the node at position i.
func (l *List) At(i int) *Node {
	l.reindex()
	return l.nodes[i]
}

// Nodes returns the list's nodes in order. The returned slice must
// not be mutated by the caller; use Insert/Remove/Replace instead.
func (l *List) Nodes() []*Node {
	l.reindex()
	return l.nodes
}

// Prev returns the node immediately before n in this list, if any.
func (l *List) Prev(n *Node) (*Node, bool) {
	l.reindex()
	if n.index <= 0 {
		return nil, false
	}
	return l.nodes[n.index-1], true
}

// Next returns the node immediately after n in this list, if any.
func (l *List) Next(n *Node) (*Node, bool) {
	l.reindex()
	if n.index+1 >= len(l.nodes) {
		return nil, false
	}
	return l.nodes[n.index+1], true
}

// Insert splices nodes into the list starting at position at. Every
// inserted node must currently be detached.
func (l *List) Insert(at int, nodes ...*Node) {
	for _, n := range nodes {
		if n.parent != nil {
			panic("node: cannot insert a node that already has a parent list")
		}
	}
	l.nodes = slices.Insert(l.nodes, at, nodes...)
	for _, n := range nodes {
		n.parent = l
	}
	l.dirty = true
}

// Remove detaches the count nodes starting at position at and
// returns them, clearing their parent link.
func (l *List) Remove(at, count int) []*Node {
	removed := append([]*Node(nil), l.nodes[at:at+count]...)
	l.nodes = slices.Delete(l.nodes, at, at+count)
	for _, n := range removed {
		n.parent = nil
	}
	l.dirty = true
	return removed
}

// Replace removes the count nodes starting at position at and
// inserts nodes in their place, returning the removed nodes.
func (l *List) Replace(at, count int, nodes ...*Node) []*Node {
	removed := l.Remove(at, count)
	l.Insert(at, nodes...)
	return removed
}

// Split divides the list into two lists at position at: the first
// holds nodes[:at], the second nodes[at:]. l is left empty.
func (l *List) Split(at int) (*List, *List) {
	l.reindex()
	left := l.nodes[:at]
	right := l.nodes[at:]
	l.nodes = nil
	l.dirty = false
	return NewList(detach(left)), NewList(detach(right))
}

func detach(nodes []*Node) []*Node {
	for _, n := range nodes {
		n.parent = nil
	}
	return nodes
}
