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

import "github.com/arclang/arc/source"

// Range is a half-open [Sta, End) offset interval within a single
// source, the unit the segment index partitions on. Unlike Span it
// carries no source id of its own; a Range only has meaning relative
// to the per-source table it lives in.
type Range struct {
	Sta, End int
}

func rangeOf(span source.Span) Range {
	return Range{Sta: span.Offset, End: span.End()}
}

func (r Range) contains(o Range) bool {
	return o.Sta >= r.Sta && o.End <= r.End
}

// less orders ranges by start, then by end, used only to break a
// queue tie between two segments that share both Order and Key.
func (r Range) less(o Range) bool {
	if r.Sta != o.Sta {
		return r.Sta < o.Sta
	}
	return r.End < o.End
}

func sameRange(a, b source.Span) bool {
	return a.Offset == b.Offset && a.End() == b.End()
}
