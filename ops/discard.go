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

package ops

import (
	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
)

// Discard is the no-op operator: every node bound to it simply drains
// from the table without being touched. MakeForEach binds it over the
// structural tokens its window consumes and detaches (NAME, "in",
// ":") but never otherwise refers to again, so that they leave the
// table's unbound list the same way every other node in the window
// does, rather than sitting there forever.
type Discard struct{}

func (Discard) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	return nil
}
