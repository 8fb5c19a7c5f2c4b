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

// Package source holds the source-text registry and the Span type
// that references it, plus the file-backed loader collaborator
// described in spec §6. Neither the lexer nor the rewriting engine
// itself cares how text was produced; they only ever see a Set and
// the small integer source ids it hands out.
package source

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/blake2b"
)

type entry struct {
	name        string
	text        string
	fingerprint [blake2b.Size256]byte
}

// Set is the registry of loaded source texts. A Span's Source field
// is an index into a Set. Set is safe for concurrent use.
type Set struct {
	mu   sync.RWMutex
	list []*entry
}

// NewSet creates an empty source registry.
func NewSet() *Set {
	return &Set{}
}

// Add registers text under name and returns its source id.
func (s *Set) Add(name, text string) int {
	e := &entry{name: name, text: text, fingerprint: blake2b.Sum256([]byte(text))}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = append(s.list, e)
	return len(s.list) - 1
}

func (s *Set) get(id int) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.list) {
		panic(fmt.Sprintf("source: invalid source id %d", id))
	}
	return s.list[id]
}

// Name returns the name a source was registered under.
func (s *Set) Name(id int) string { return s.get(id).name }

// Text returns the full text of a source.
func (s *Set) Text(id int) string { return s.get(id).text }

// Fingerprint returns the blake2b-256 digest of a source's text,
// stable across repeated loads of identical content. Add does not
// deduplicate: identical text added twice gets two source ids.
func (s *Set) Fingerprint(id int) [blake2b.Size256]byte { return s.get(id).fingerprint }

// Len returns the number of registered sources.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}
