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

// Package arena implements the single-lifetime bump allocator that
// backs every node, list, binding, and segment in the rewriting
// engine. A Store owns everything allocated from it; dropping the
// Store (Close) runs every registered destructor in reverse order of
// registration and then releases the underlying pages.
package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

const defaultPageSize = 4 << 20 // 4 MiB

// page is a single fixed-capacity block that values are bump-allocated
// from. Once created, a page's backing array never moves or grows, so
// pointers handed out by Store.alloc stay valid for the page's entire
// lifetime.
type page struct {
	data []byte
	next atomic.Uint64
}

type destructor struct {
	fn func()
}

// Store is a concurrency-safe bump allocator. Multiple goroutines may
// call Add/AddItems concurrently; Close must not race with allocation.
//
// Allocations at least a quarter of the page size are placed in their
// own dedicated block instead of an active page, mirroring the
// "large allocations go to their own block" rule.
type Store struct {
	pageSize int

	mu     sync.Mutex
	active atomic.Pointer[page]
	pages  []*page
	large  [][]byte

	dmu   sync.Mutex
	drops []destructor

	closed atomic.Bool
}

// NewStore creates a Store with the default page size.
func NewStore() *Store {
	return NewStoreSize(defaultPageSize)
}

// NewStoreSize creates a Store whose pages are pageSize bytes.
func NewStoreSize(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	s := &Store{pageSize: pageSize}
	s.newPage(nil)
	return s
}

// newPage installs a fresh active page, unless another goroutine has
// already replaced current with a newer one.
func (s *Store) newPage(current *page) *page {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now := s.active.Load(); now != nil && now != current {
		return now
	}
	p := &page{data: make([]byte, s.pageSize)}
	s.pages = append(s.pages, p)
	s.active.Store(p)
	return p
}

func alignUp(off uint64, align uintptr) uint64 {
	a := uint64(align)
	if a == 0 {
		return off
	}
	return (off + a - 1) &^ (a - 1)
}

// alloc carves size bytes aligned to align out of the active page via
// an atomic bump pointer with CAS commit, falling back to a dedicated
// block for large allocations and to a freshly installed page when
// the active one is full.
func (s *Store) alloc(size, align uintptr) unsafe.Pointer {
	if s.closed.Load() {
		panic("arena: Store used after Close")
	}
	if size == 0 {
		size = 1
	}
	if int(size) >= s.pageSize/4 {
		s.mu.Lock()
		block := make([]byte, size)
		s.large = append(s.large, block)
		s.mu.Unlock()
		return unsafe.Pointer(&block[0])
	}

	p := s.active.Load()
	for {
		off := p.next.Load()
		start := alignUp(off, align)
		end := start + uint64(size)
		if end > uint64(len(p.data)) {
			p = s.newPage(p)
			continue
		}
		if p.next.CompareAndSwap(off, end) {
			return unsafe.Pointer(&p.data[start])
		}
	}
}

// Destroyer is implemented by values whose destruction is observable.
// If a value stored with Add or AddItems implements Destroyer, its
// Destroy method is registered to run when the Store is closed.
type Destroyer interface{ Destroy() }

func (s *Store) onDrop(fn func()) {
	s.dmu.Lock()
	s.drops = append(s.drops, destructor{fn: fn})
	s.dmu.Unlock()
}

// Add stores value in the arena and returns a stable pointer to it.
func Add[T any](s *Store, value T) *T {
	var zero T
	ptr := s.alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	p := (*T)(ptr)
	*p = value
	if d, ok := any(p).(Destroyer); ok {
		s.onDrop(d.Destroy)
	}
	return p
}

// AddItems bulk-allocates a slice holding a copy of items, backed by
// arena memory, and returns it. The returned slice's backing array
// never moves, so pointers into its elements are stable.
func AddItems[T any](s *Store, items []T) []T {
	if len(items) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero) * uintptr(len(items))
	ptr := s.alloc(size, unsafe.Alignof(zero))
	dst := unsafe.Slice((*T)(ptr), len(items))
	copy(dst, items)
	for i := range dst {
		if d, ok := any(&dst[i]).(Destroyer); ok {
			s.onDrop(d.Destroy)
		}
	}
	return dst
}

// Close runs every registered destructor exactly once, in reverse
// order of registration, then releases the Store's pages. Close must
// not be called concurrently with Add/AddItems.
func (s *Store) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.dmu.Lock()
	drops := s.drops
	s.drops = nil
	s.dmu.Unlock()
	for i := len(drops) - 1; i >= 0; i-- {
		drops[i].fn()
	}
	s.mu.Lock()
	s.pages = nil
	s.large = nil
	s.mu.Unlock()
}
