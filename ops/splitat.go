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
	"errors"
	"sort"

	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/node"
)

// SplitAt splits each separator's parent list around every separator
// in that list, producing one Seq(sublist) node per run of nodes
// between separators; the separators themselves are dropped. A
// separator with no parent list is a programming error: per spec §9
// this keeps the "non-seq nodes" contract rather than silently
// ignoring it.
type SplitAt struct{}

func (SplitAt) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	byList := map[*node.List][]*node.Node{}
	for _, n := range nodes {
		l := n.Parent()
		if l == nil {
			return errors.New("ops: SplitAt given non-seq nodes")
		}
		byList[l] = append(byList[l], n)
	}

	for list, seps := range byList {
		if err := splitOneList(p, list, seps); err != nil {
			return err
		}
	}
	return nil
}

func splitOneList(p Program, list *node.List, seps []*node.Node) error {
	idxs := make([]int, len(seps))
	for i, s := range seps {
		idxs[i] = s.Index()
	}
	sort.Ints(idxs)

	all := p.RemoveNodes(list, 0, list.Len())

	var segments []*node.Node
	start := 0
	for _, sepIdx := range idxs {
		if run := all[start:sepIdx]; len(run) > 0 {
			segments = append(segments, p.NewNode(node.Seq{List: p.NewList(run)}, node.SpanOf(run)))
		}
		start = sepIdx + 1
	}
	if tail := all[start:]; len(tail) > 0 {
		segments = append(segments, p.NewNode(node.Seq{List: p.NewList(tail)}, node.SpanOf(tail)))
	}

	p.ReplaceList(list, segments...)
	return nil
}
