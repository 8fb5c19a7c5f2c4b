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

// Decl realizes lexical scope: for every Let(name, expr) node it is
// given, it allocates the shared LetDecl, rewrites the node to
// RefInit(decl), and binds Id(name) from the end of expr's span to
// the end of the source, at Precedence, to BindVar(decl). Every Id
// reference to name downstream of the declaration resolves through
// that one binding.
type Decl struct {
	Precedence bind.Order
}

func (d Decl) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, n := range nodes {
		let, ok := n.Expr.(node.Let)
		if !ok {
			return fmt.Errorf("ops: Decl given a non-Let node for key %v", key)
		}
		decl := &node.LetDecl{Name: let.Name, Node: let.Node}
		p.SetNode(n, node.RefInit{Decl: decl})

		from := let.Node.Span.End()
		p.Bind(openSpan(n.Span.Source, from), bind.ID(let.Name), BindVar{Decl: decl}, d.Precedence)
	}
	return nil
}

// BindVar rewrites every Id node bound to it into Ref(Decl), the
// terminal form a compiled identifier reference takes.
type BindVar struct {
	Decl *node.LetDecl
}

func (b BindVar) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, n := range nodes {
		if _, ok := n.Expr.(node.Id); !ok {
			return fmt.Errorf("ops: BindVar given a non-Id node for key %v", key)
		}
		p.SetNode(n, node.Ref{Decl: b.Decl})
	}
	return nil
}
