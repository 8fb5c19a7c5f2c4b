// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package heap

import (
	"math/rand"
	"slices"
	"testing"
)

type intHeap []int

func (h intHeap) Len() int           { return len(h) }
func (h intHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *intHeap) push(v int) {
	*h = append(*h, v)
	ShiftUp(*h, len(*h)-1)
}

func (h *intHeap) pop() int {
	old := *h
	n := len(old)
	old[0], old[n-1] = old[n-1], old[0]
	top := old[n-1]
	*h = old[:n-1]
	if len(*h) > 0 {
		ShiftDown(*h, 0)
	}
	return top
}

func TestHeap(t *testing.T) {
	var h intHeap
	for len(h) < 1000 {
		h.push(rand.Int())
	}
	var sorted []int
	for len(h) > 0 {
		sorted = append(sorted, h.pop())
	}
	if !slices.IsSorted(sorted) {
		t.Fatal("not sorted")
	}
}

func TestHeapFix(t *testing.T) {
	var h intHeap
	for len(h) < 1000 {
		h.push(rand.Int())
	}
	mid := len(h) / 2
	h[mid] = -1
	Fix(h, mid)

	var sorted []int
	for len(h) > 0 {
		sorted = append(sorted, h.pop())
	}
	if !slices.IsSorted(sorted) {
		t.Fatal("not sorted after Fix")
	}
}
