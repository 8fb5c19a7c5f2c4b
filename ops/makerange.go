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

// MakeRange recognizes the three-node window (lhs, "..", rhs) around
// each ".." operator node it is given and replaces it with a single
// Range(lhs, rhs) node. Neighbor indices are read once, before any
// mutation, and the whole window is removed in a single splice — the
// resolution spec §9 settled on to avoid an inconsistent-index hazard
// if lhs/rhs were looked up again after a partial edit.
type MakeRange struct{}

func (MakeRange) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, op := range nodes {
		list := op.Parent()
		if list == nil {
			return fmt.Errorf("ops: MakeRange given a %q node with no parent list", op.Span)
		}
		lhs, ok := list.Prev(op)
		if !ok {
			return fmt.Errorf("ops: MakeRange at %v has no left neighbor", op.Span)
		}
		rhs, ok := list.Next(op)
		if !ok {
			return fmt.Errorf("ops: MakeRange at %v has no right neighbor", op.Span)
		}

		at := lhs.Index()
		window := node.SpanOf([]*node.Node{lhs, op, rhs})
		rangeNode := p.NewNode(node.Range{Sta: lhs, End: rhs}, window)
		p.SpliceList(list, at, 3, rangeNode)
	}
	return nil
}
