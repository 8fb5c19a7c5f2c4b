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

// Package bind implements the range-scoped binding table: a map from
// (key, span) pairs to operator values, segmented so that a lookup for
// any node resolves to the single most specific binding that covers
// it, exposed as a priority queue of ready-to-run segments.
package bind

import "math"

// Kind discriminates the syntactic role a node is bindable under.
// Kind's zero value, KindNone, marks a node as never bindable: Push
// silently drops it instead of adding it to any key's unbound list.
type Kind int

const (
	KindNone Kind = iota
	KindLBreak
	KindLet
	KindForEach
	KindID
	KindOp
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLBreak:
		return "lbreak"
	case KindLet:
		return "let"
	case KindForEach:
		return "foreach"
	case KindID:
		return "id"
	case KindOp:
		return "op"
	default:
		return "kind(?)"
	}
}

// Key is the lookup key a node is bound under. Name carries the
// identifier or operator text for KindID/KindOp and is ignored
// otherwise, so distinct kinds never collide regardless of Name.
type Key struct {
	Kind Kind
	Name string
}

// NoKey is the key assigned to nodes that can never be bound.
var NoKey = Key{}

// IsNone reports whether k is the never-bindable key.
func (k Key) IsNone() bool { return k.Kind == KindNone }

// Less gives Key a total order, used only to break ties between
// bindings that share an Order in the priority queue.
func (k Key) Less(o Key) bool {
	if k.Kind != o.Kind {
		return k.Kind < o.Kind
	}
	return k.Name < o.Name
}

// ID builds a KindID key for the interned identifier name.
func ID(name string) Key { return Key{Kind: KindID, Name: name} }

// Op builds a KindOp key for the interned operator text.
func Op(name string) Key { return Key{Kind: KindOp, Name: name} }

// Order is the scheduling priority a binding carries. Lower values
// are drained from the queue first. Never excludes a binding from
// ever being scheduled; Bind is a no-op when given it.
type Order int

// Never is the sentinel order that a binding is never enqueued under.
const Never Order = math.MaxInt
