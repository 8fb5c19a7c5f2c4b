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

// Package program implements the Program façade from spec §4.5: it
// wires a bind.Table[ops.Operator] to the node forest, drives the
// shift/execute resolution loop to fixpoint, and hands the result to
// code.Compile and code.Runtime.
package program

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/arclang/arc/arena"
	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/code"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/ops"
	"github.com/arclang/arc/source"
)

// Program owns one node forest and the binding table that rewrites
// it. Every node it mints is interned and allocated through store,
// then pushed onto the table immediately, so bindings registered
// afterward by an operator can still claim it.
type Program struct {
	id       uuid.UUID
	log      *log.Logger
	store    *arena.Store
	table    *bind.Table[ops.Operator]
	output   *node.List
	compiled code.Code
}

// New returns an empty Program logging resolve and runtime failures
// to w, tagged with a fresh run id and backed by a fresh Store.
func New(w io.Writer) *Program {
	return &Program{
		id:    uuid.New(),
		log:   log.New(w, "", log.LstdFlags),
		store: arena.NewStore(),
		table: bind.NewTable[ops.Operator](),
	}
}

// NewStderr returns an empty Program logging to os.Stderr, the
// default cmd/arc wires up.
func NewStderr() *Program { return New(os.Stderr) }

// RunID returns the uuid.UUID tagging this Program's log lines.
func (p *Program) RunID() uuid.UUID { return p.id }

// Close releases p's Store, per spec §5's "dropping the Store drops
// all nodes, lists, bindings, and segments ... then frees pages": it
// runs every destructor registered against p's node/list allocations
// in reverse order and returns their backing pages. p must not be
// used afterward. Close does not touch the process-wide interner
// (arena.Intern), which outlives every Program by design.
func (p *Program) Close() { p.store.Close() }

// SetOutput installs list as the node sequence Resolve rewrites and
// Compile/Run operate on. Every node in list must already have been
// minted through NewNode so the table has seen it.
func (p *Program) SetOutput(list *node.List) { p.output = list }

// Output returns the node list Resolve rewrites in place.
func (p *Program) Output() *node.List { return p.output }

// internExpr interns the identifier or operator text an Id/Op
// expression carries, via the process-wide interner, before the node
// wrapping it is allocated. keyOf (see node/expr.go) derives a node's
// bind.Key straight from that same Name/Text field, so interning here
// is what gives every KindID/KindOp Key's Name the pointer-identity
// property spec §3/§8 testable property 6 require of an interned
// string — no separate interning step is needed at Key-construction
// time.
func internExpr(expr node.Expr) node.Expr {
	switch v := expr.(type) {
	case node.Id:
		v.Name = arena.Intern(v.Name)
		return v
	case node.Op:
		v.Text = arena.Intern(v.Text)
		return v
	default:
		return expr
	}
}

// NewNode implements ops.Program and node.Builder: it interns the
// expression's text if applicable, allocates the node through p's
// Store, and, unless its expression can never be bound, pushes it
// onto the table so a later Bind call can still claim it.
func (p *Program) NewNode(expr node.Expr, span source.Span) *node.Node {
	n := arena.Add(p.store, *node.NewNode(internExpr(expr), span))
	p.table.Push(n)
	return n
}

// NewList implements ops.Program. The list header is allocated
// through p's Store like a node; its backing node slice stays a
// plain Go slice, since Insert/Remove/Replace grow and shrink it by
// ordinary append/copy, which a single-lifetime bump arena cannot
// reclaim space for — only the header's address needs to be stable,
// and NewListInto adopts nodes against that address directly rather
// than a throwaway one that would immediately move.
func (p *Program) NewList(nodes []*node.Node) *node.List {
	dst := arena.Add(p.store, node.List{})
	return node.NewListInto(dst, nodes)
}

// Bind implements ops.Program.
func (p *Program) Bind(span source.Span, key bind.Key, value ops.Operator, order bind.Order) {
	p.table.Bind(span, key, value, order)
}

// SetNode implements ops.Program. Per spec §4.5 it is only safe to
// call on a node already drained from the table by Shift (the nodes
// an Operator.Execute was given) or on a node that was never
// bindable; calling it on a node still sitting in the table's unbound
// list would leave a stale entry behind.
func (p *Program) SetNode(n *node.Node, expr node.Expr) {
	n.SetExpr(expr)
}

// SpliceList implements ops.Program.
func (p *Program) SpliceList(list *node.List, at, count int, nodes ...*node.Node) []*node.Node {
	return list.Replace(at, count, nodes...)
}

// RemoveNodes implements ops.Program.
func (p *Program) RemoveNodes(list *node.List, at, count int) []*node.Node {
	return list.Remove(at, count)
}

// ReplaceList implements ops.Program.
func (p *Program) ReplaceList(list *node.List, nodes ...*node.Node) {
	list.Remove(0, list.Len())
	list.Insert(0, nodes...)
}

// SplitList implements ops.Program.
func (p *Program) SplitList(list *node.List, at int) (*node.List, *node.List) {
	return list.Split(at)
}

func toNodes(bn []bind.Node) []*node.Node {
	out := make([]*node.Node, len(bn))
	for i, n := range bn {
		out[i] = n.(*node.Node)
	}
	return out
}

// ResolveError reports that Resolve's shift/execute loop ran dry with
// at least one key still unbound: some identifier, keyword, or
// operator occurrence in the source never matched a binding, per
// spec §8's invariant that a well-formed program leaves nothing
// unbound.
type ResolveError struct {
	Unbound []bind.UnboundEntry
}

func (r *ResolveError) Error() string {
	return fmt.Sprintf("program: %d key(s) never matched a binding", len(r.Unbound))
}

// Resolve drains the binding table to fixpoint: it repeatedly shifts
// the highest-priority ready segment and runs its operator, which may
// rewrite nodes and register further bindings that schedule more
// segments, until the queue runs dry. It then fails if any key was
// pushed but never bound.
func (p *Program) Resolve() error {
	for {
		seg, ok := p.table.Shift()
		if !ok {
			break
		}
		op := seg.Value()
		if err := op.Execute(p, seg.Key(), toNodes(seg.Nodes()), seg.Range()); err != nil {
			p.log.Printf("run %s: resolve: %v", p.id, err)
			return fmt.Errorf("program: resolve: %w", err)
		}
	}
	if unbound := p.table.Unbound(); len(unbound) > 0 {
		p.log.Printf("run %s: resolve: %d key(s) left unbound", p.id, len(unbound))
		return &ResolveError{Unbound: unbound}
	}
	return nil
}

// Compile lowers the fully-resolved output sequence to code.Code via
// code.Compile, caching the result for Run.
func (p *Program) Compile() (code.Code, error) {
	wrapper := node.NewNode(node.Seq{List: p.output}, node.SpanOf(p.output.Nodes()))
	c, err := code.Compile(wrapper)
	if err != nil {
		return nil, err
	}
	p.compiled = c
	return c, nil
}

// Run executes the code from the most recent Compile call against rt.
func (p *Program) Run(rt *code.Runtime) (node.Value, error) {
	if p.compiled == nil {
		return node.Value{}, fmt.Errorf("program: Run called before Compile")
	}
	v, err := rt.Execute(p.compiled)
	if err != nil {
		p.log.Printf("run %s: runtime: %v", p.id, err)
	}
	return v, err
}
