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

package node

import "github.com/arclang/arc/bind"

// Expr is the sum type every Node wraps. The set of implementations
// is closed to this package: exprNode is unexported so callers switch
// on the concrete variant rather than add their own.
type Expr interface {
	exprNode()
}

// LBreak marks a line-break token in the flat, unparsed node stream.
type LBreak struct{}

func (LBreak) exprNode() {}

// Id is a bare identifier, still unresolved to a declaration.
type Id struct{ Name string }

func (Id) exprNode() {}

// Op is a bare operator token, e.g. "..", recognized later by an
// operator such as MakeRange.
type Op struct{ Text string }

func (Op) exprNode() {}

// Num is an integer literal.
type Num struct{ Value int32 }

func (Num) exprNode() {}

// Str is a string literal.
type Str struct{ Value string }

func (Str) exprNode() {}

// Seq wraps a sublist produced by splitting or grouping, e.g. one
// line of a split source, or a foreach body.
type Seq struct{ List *List }

func (Seq) exprNode() {}

// Const wraps an already-evaluated runtime Value, used for nodes a
// caller constructs directly rather than through source text.
type Const struct{ Value Value }

func (Const) exprNode() {}

// Let declares a name bound to node's value. Decl rewrites this to
// RefInit once it allocates the shared LetDecl.
type Let struct {
	Name string
	Node *Node
}

func (Let) exprNode() {}

// Set reassigns name to the result of evaluating Node.
type Set struct {
	Name string
	Node *Node
}

func (Set) exprNode() {}

// RefInit is what Decl rewrites a Let node to: the declaration's
// initializer, compiled as a Set the first time it is reached.
type RefInit struct{ Decl *LetDecl }

func (RefInit) exprNode() {}

// Ref is what BindVar rewrites a matching Id node to: a read of decl,
// which must be initialized by the time it compiles.
type Ref struct{ Decl *LetDecl }

func (Ref) exprNode() {}

// Range is an inclusive-start, exclusive-end integer range,
// Sta and End each an expression node.
type Range struct {
	Sta, End *Node
}

func (Range) exprNode() {}

// ForEach is the lowered form of a `foreach NAME in EXPR: BODY`
// window: Decl is shared with every reference to NAME inside Body.
type ForEach struct {
	Decl     *LetDecl
	ExprList *List
	BodyList *List
}

func (ForEach) exprNode() {}

// While loops while Cond evaluates to Bool(true), running Body each
// iteration.
type While struct {
	Cond *Node
	Body *Node
}

func (While) exprNode() {}

// BinOpKind discriminates the built-in binary operators.
type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpMul
	OpLess
)

func (k BinOpKind) String() string {
	switch k {
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpLess:
		return "<"
	default:
		return "?"
	}
}

// BinOp is a built-in binary operator node.
type BinOp struct {
	Kind     BinOpKind
	Lhs, Rhs *Node
}

func (BinOp) exprNode() {}

// Print consumes Args left to right at runtime and emits a line to
// the output buffer.
type Print struct{ Args *List }

func (Print) exprNode() {}

// keyOf derives a node's binding key from its expression, per spec
// §4.3. Only the variants that arrive unresolved from the node
// stream are bindable; everything an operator has already rewritten
// to (RefInit, Ref, While, BinOp, Print, Const, Seq, Set, Range)
// carries bind.NoKey and is never re-enqueued.
//
// "foreach" is reserved identifier text: MakeForEach recognizes its
// window directly out of the flat Id/Op stream, so an Id node
// spelling it is keyed as KindForEach instead of KindID, leaving
// ordinary identifiers named "foreach" impossible to shadow it with.
// The ForEach struct MakeForEach produces keeps the same KindForEach
// key, so a later, lower-priority binding to EvalForEach picks it up
// for lowering without MakeForEach and EvalForEach needing any
// channel between them besides the binding table. "let", by
// contrast, never reaches the engine as a bare Id: whatever builds
// the initial node list resolves `let NAME = EXPR` straight to a Let
// node, keyed as KindLet directly.
func keyOf(e Expr) bind.Key {
	switch v := e.(type) {
	case LBreak:
		return bind.Key{Kind: bind.KindLBreak}
	case Let:
		return bind.Key{Kind: bind.KindLet}
	case ForEach:
		return bind.Key{Kind: bind.KindForEach}
	case Id:
		if v.Name == "foreach" {
			return bind.Key{Kind: bind.KindForEach}
		}
		return bind.ID(v.Name)
	case Op:
		return bind.Op(v.Text)
	default:
		return bind.NoKey
	}
}
