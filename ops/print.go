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
	"fmt"

	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
)

// Print consumes every sibling to the right of a bound "print"
// identifier in its parent list and replaces the whole window with a
// single Print(args) node. Unlike SplitAt, a print with nothing to its
// right is legal: it simply prints no arguments.
type Print struct{}

func (Print) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, kw := range nodes {
		list := kw.Parent()
		if list == nil {
			return fmt.Errorf("ops: print at %v has no parent list", kw.Span)
		}
		start := kw.Index()
		all := list.Nodes()
		args := all[start+1:]

		window := node.SpanOf(all[start:])
		argNodes := p.RemoveNodes(list, start+1, len(args))
		argList := p.NewList(argNodes)

		printNode := p.NewNode(node.Print{Args: argList}, window)
		p.SpliceList(list, start, 1, printNode)
	}
	return nil
}
