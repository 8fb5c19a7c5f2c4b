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

package arena

import (
	"sync"
	"unsafe"

	"github.com/dchest/siphash"
)

// Fixed siphash keys: interning only needs to be stable within a
// single process, not unpredictable across processes, so a fixed seed
// (rather than a random one) keeps Intern deterministic for tests.
const (
	internK0 = 0x646f6465732d6172
	internK1 = 0x63612d696e746572
)

type internEntry struct {
	text string
	next *internEntry
}

// Interner deduplicates immutable string slices: interning equal byte
// strings always returns a string backed by the same memory, so
// pointer identity (see SameAddr) can stand in for string equality.
// Interner is safe for concurrent use and append-only. NewInterner
// makes a per-Store instance; the process-wide instance described in
// spec §5 is the one behind the package-level Intern.
type Interner struct {
	store *Store

	mu      sync.RWMutex
	buckets map[uint64]*internEntry
	empty   string
}

// NewInterner creates an Interner that allocates interned text from
// store.
func NewInterner(store *Store) *Interner {
	it := &Interner{store: store, buckets: make(map[uint64]*internEntry)}
	it.empty = it.Intern("")
	return it
}

func bucketHash(s string) uint64 {
	return siphash.Hash(internK0, internK1, []byte(s))
}

// Intern returns a string with the same contents as s, guaranteeing
// that two calls with byte-equal input return strings that share the
// same backing address (see SameAddr).
func (it *Interner) Intern(s string) string {
	if len(s) == 0 {
		return it.empty
	}
	h := bucketHash(s)

	it.mu.RLock()
	for e := it.buckets[h]; e != nil; e = e.next {
		if e.text == s {
			it.mu.RUnlock()
			return e.text
		}
	}
	it.mu.RUnlock()

	it.mu.Lock()
	defer it.mu.Unlock()
	for e := it.buckets[h]; e != nil; e = e.next {
		if e.text == s {
			return e.text
		}
	}
	buf := AddItems(it.store, []byte(s))
	text := unsafe.String(&buf[0], len(buf))
	it.buckets[h] = &internEntry{text: text, next: it.buckets[h]}
	return text
}

// Str allocates a fresh copy of s in the arena with a unique address,
// unlike Intern, which deduplicates. Each call returns a distinct
// address even for equal input.
func (it *Interner) Str(s string) string {
	if len(s) == 0 {
		return ""
	}
	buf := AddItems(it.store, []byte(s))
	return unsafe.String(&buf[0], len(buf))
}

// SameAddr reports whether a and b are backed by the same memory, as
// produced by two Intern calls with equal content. Two non-interned,
// content-equal strings will generally report false.
func SameAddr(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}
	return unsafe.StringData(a) == unsafe.StringData(b)
}

// global is the one process-wide Interner spec §9's "global process
// state" note calls for: unlike a per-run Store, it outlives every
// Program and is shared by all of them, so identifiers and operator
// text keep comparing pointer-identical across runs. It is backed by
// its own Store, which is never closed — the process exit is its
// teardown.
var global = NewInterner(NewStore())

// Intern deduplicates s through the process-wide interner. This is
// the Intern callers outside this package should use; a fresh
// per-Program Interner would give each run its own address space for
// the same text, defeating the point of sharing one intern table.
func Intern(s string) string { return global.Intern(s) }
