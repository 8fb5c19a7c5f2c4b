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

// Package heap implements the abstract min-heap discipline the
// binding table's segment priority queue is built on: a caller
// supplies Len/Less/Swap over its own backing storage, and this
// package provides the index arithmetic to keep that storage in heap
// order, including Fix for the "an element's order key changed in
// place" case the segment queue needs when a segment is rebound.
package heap

// Interface is the minimal capability a priority queue must expose
// for this package to maintain heap order over it: a length, a
// strict order between two elements, and a way to swap two elements
// in place. Unlike container/heap, Interface has no Push/Pop of its
// own — callers grow and shrink their backing storage directly and
// call ShiftUp/ShiftDown to restore the invariant around the edit.
type Interface interface {
	Len() int
	Less(i, j int) bool
	Swap(i, j int)
}

// ShiftUp restores heap order by moving the element at index up
// toward the root while its parent sorts after it. Call this after
// appending a new element at the end of the backing storage.
func ShiftUp(h Interface, index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if h.Less(parent, index) {
			break
		}
		h.Swap(parent, index)
		index = parent
	}
}

// ShiftDown restores heap order by moving the element at index down
// toward the leaves while a child sorts before it. Call this after
// overwriting the root with what was the last element.
func ShiftDown(h Interface, index int) {
	n := h.Len()
	for {
		left := index*2 + 1
		right := left + 1
		if left >= n {
			return
		}
		smallest := left
		if right < n && h.Less(right, left) {
			smallest = right
		}
		if h.Less(index, smallest) {
			return
		}
		h.Swap(index, smallest)
		index = smallest
	}
}

// Fix re-establishes heap order for the element at index after its
// order key changed in place (rather than after an insertion or
// removal). This is what the binding table calls when rebinding a
// segment changes its (order, key, range) triple.
func Fix(h Interface, index int) {
	ShiftUp(h, index)
	ShiftDown(h, index)
}
