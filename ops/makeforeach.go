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

// MakeForEach recognizes the window `foreach NAME in EXPR... : BODY...`
// running from a bound "foreach" keyword node to the end of its
// parent list, validates NAME is an identifier and that "in" and ":"
// are present, allocates a LetDecl for NAME, and replaces the whole
// window with a single ForEach node. Every Id(NAME) already present in
// BODY is resolved to Ref(decl) through the same mechanism Decl uses
// for an ordinary let-binding: a Bind call over BODY's exact span, at
// Precedence, to BindVar(decl). Binding the narrower body span (rather
// than rewriting the body's Id nodes directly) lets the segmentation
// table's specificity rule shadow any wider enclosing declaration of
// the same name, and keeps every node's table membership consistent —
// a direct SetNode on a node still sitting in the table's unbound
// bucket would leave a stale entry behind.
//
// The replacement ForEach node shares its keyword's KindForEach key
// (see node.keyOf), so it re-enters the very segment MakeForEach was
// just invoked from. Since an equal-span Bind call never displaces the
// binding already in place there, MakeForEach claims that same node
// for EvalForEach itself, immediately, over the node's own window —
// which is strictly narrower than whatever span MakeForEach was bound
// to, so the specificity rule carves out a dedicated segment for it.
//
// NAME, "in", and ":" are detached from the list along with everything
// else in the window, but carry bindable keys of their own (keyOf
// keys every Id and Op) and nothing else ever claims them once they
// are gone from list. MakeForEach binds each to Discard over its own
// span so they leave the table the same way every bound node does,
// rather than sitting in the unbound list forever.
type MakeForEach struct {
	Precedence bind.Order
	EvalOrder  bind.Order
}

func (m MakeForEach) Execute(p Program, key bind.Key, nodes []*node.Node, rng bind.Range) error {
	for _, kw := range nodes {
		list := kw.Parent()
		if list == nil {
			return fmt.Errorf("ops: foreach at %v has no parent list", kw.Span)
		}
		all := list.Nodes()
		start := kw.Index()

		pos := start + 1
		if pos >= len(all) {
			return fmt.Errorf("ops: foreach at %v is missing NAME", kw.Span)
		}
		nameNode := all[pos]
		name, ok := nameNode.Expr.(node.Id)
		if !ok {
			return fmt.Errorf("ops: foreach at %v expected an identifier after 'foreach'", kw.Span)
		}
		pos++

		if pos >= len(all) {
			return fmt.Errorf("ops: foreach at %v is missing 'in'", kw.Span)
		}
		inNode := all[pos]
		if in, ok := inNode.Expr.(node.Id); !ok || in.Name != "in" {
			return fmt.Errorf("ops: foreach at %v is missing 'in'", kw.Span)
		}
		pos++

		exprStart := pos
		colon := -1
		for i := pos; i < len(all); i++ {
			if op, ok := all[i].Expr.(node.Op); ok && op.Text == ":" {
				colon = i
				break
			}
		}
		if colon < 0 {
			return fmt.Errorf("ops: foreach at %v is missing ':'", kw.Span)
		}
		colonNode := all[colon]
		exprNodes := all[exprStart:colon]
		bodyNodes := all[colon+1:]
		if len(exprNodes) == 0 {
			return fmt.Errorf("ops: foreach at %v has an empty range expression", kw.Span)
		}
		if len(bodyNodes) == 0 {
			return fmt.Errorf("ops: foreach at %v has an empty body", kw.Span)
		}

		window := node.SpanOf(all[start:])
		bodySpan := node.SpanOf(bodyNodes)
		p.RemoveNodes(list, start, len(all)-start)

		decl := &node.LetDecl{Name: name.Name}
		exprList := p.NewList(append([]*node.Node(nil), exprNodes...))
		bodyList := p.NewList(append([]*node.Node(nil), bodyNodes...))

		p.Bind(bodySpan, bind.ID(name.Name), BindVar{Decl: decl}, m.Precedence)

		// NAME, "in", and ":" are now detached from list and never
		// referred to again, but each was pushed onto the table under
		// its own bindable key when it was minted; without these,
		// they would sit in the table's unbound list forever. Each
		// gets its own Discard bind over its own narrow span rather
		// than widening the BindVar bind above, so a range expression
		// that happens to reference an outer variable of the same
		// name as NAME is not mistakenly captured by it.
		p.Bind(nameNode.Span, bind.ID(name.Name), Discard{}, m.Precedence)
		p.Bind(inNode.Span, bind.ID("in"), Discard{}, m.Precedence)
		p.Bind(colonNode.Span, bind.Op(":"), Discard{}, m.Precedence)

		feNode := p.NewNode(node.ForEach{Decl: decl, ExprList: exprList, BodyList: bodyList}, window)
		p.Bind(window, bind.Key{Kind: bind.KindForEach}, EvalForEach{}, m.EvalOrder)
		p.SpliceList(list, start, 0, feNode)
	}
	return nil
}
