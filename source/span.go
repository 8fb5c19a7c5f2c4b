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

package source

import "fmt"

// Span is a (source, offset, length) reference into a registered
// source text. Offsets are byte offsets; slicing is only meaningful
// at token boundaries.
type Span struct {
	Source int
	Offset int
	Length int
}

// End returns the exclusive end offset of the span.
func (s Span) End() int { return s.Offset + s.Length }

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool { return s.Length == 0 }

// Intersects reports whether two spans share a source and their
// ranges overlap.
func (s Span) Intersects(o Span) bool {
	return s.Source == o.Source && s.Offset < o.End() && o.Offset < s.End()
}

// Contains reports whether o falls entirely within s, in the same
// source.
func (s Span) Contains(o Span) bool {
	return s.Source == o.Source && s.Offset <= o.Offset && o.End() <= s.End()
}

// Text slices the referenced source through set.
func (s Span) Text(set *Set) string {
	text := set.Text(s.Source)
	return text[s.Offset:s.End()]
}

// Between returns the smallest span covering both a and b, which must
// reference the same source.
func Between(a, b Span) Span {
	if a.Source != b.Source {
		panic("source: Between requires spans from the same source")
	}
	sta, end := a.Offset, a.End()
	if b.Offset < sta {
		sta = b.Offset
	}
	if b.End() > end {
		end = b.End()
	}
	return Span{Source: a.Source, Offset: sta, Length: end - sta}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d+%d", s.Source, s.Offset, s.Length)
}
