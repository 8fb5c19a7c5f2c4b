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

// Command arc is the thin CLI from spec §6: it loads files via a
// FileLoader and either dumps their token stream (-lex) or drives the
// engine's resolve/compile/run pipeline over a small built-in
// demonstration program. There is no surface grammar specified for
// turning a token stream into a node.Expr forest (spec §6 only
// specifies the Grammar/Lexer contract, not that mapping), so the
// default (non -lex) mode exercises the engine directly against already-structured nodes
// rather than inventing a parser.
package main

import (
	"flag"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/arclang/arc/bind"
	"github.com/arclang/arc/code"
	"github.com/arclang/arc/lexer"
	"github.com/arclang/arc/node"
	"github.com/arclang/arc/ops"
	"github.com/arclang/arc/program"
	"github.com/arclang/arc/rules"
	"github.com/arclang/arc/source"
)

var (
	dashlex     bool
	dashgrammar string
	dashphases  string
	dashbase    string
)

func init() {
	flag.BoolVar(&dashlex, "lex", false, "tokenize the given files instead of running the demo program")
	flag.StringVar(&dashgrammar, "grammar", "", "YAML file describing extra lexer symbols")
	flag.StringVar(&dashphases, "phases", "", "rule file overriding the demo program's phase priorities")
	flag.StringVar(&dashbase, "base", ".", "base directory files are loaded relative to")
}

func main() {
	flag.Parse()

	if dashlex {
		args := flag.Args()
		if len(args) == 0 {
			exitf("-lex requires at least one file argument")
		}
		l, err := loadGrammar(dashgrammar)
		if err != nil {
			exit(err)
		}
		if err := runLex(l, args); err != nil {
			exit(err)
		}
		return
	}

	phases, err := loadPhases(dashphases)
	if err != nil {
		exit(err)
	}
	if err := runDemo(phases); err != nil {
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func exitf(f string, args ...any) {
	exit(fmt.Errorf(f, args...))
}

// grammarConfig is the -grammar YAML file shape: extra operator or
// punctuation text the lexer's symbol table should recognize, beyond
// its built-in break and space handling.
type grammarConfig struct {
	Symbols []string `json:"symbols"`
}

func loadGrammar(path string) (*lexer.Lexer, error) {
	l := lexer.New(lexer.BasicGrammar{})
	if path == "" {
		return l, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("arc: reading grammar %q: %w", path, err)
	}
	var cfg grammarConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("arc: parsing grammar %q: %w", path, err)
	}
	l.AddSymbols(cfg.Symbols...)
	return l, nil
}

func runLex(l *lexer.Lexer, paths []string) error {
	loader := source.FileLoader{Base: dashbase}
	for _, p := range paths {
		text, ok, err := loader.LoadSource(p)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("arc: %s: not found under %s", p, dashbase)
		}
		var pos lexer.Pos
		toks, consumed := l.Tokenize(text, &pos)
		for _, t := range toks {
			fmt.Printf("%s:%d:%d\t%s\t%q\n", p, t.Pos.Line+1, t.Pos.Column+1, t.Kind, t.Text)
		}
		if consumed != len(text) {
			return fmt.Errorf("arc: %s: stopped at byte %d: %q", p, consumed, text[consumed:])
		}
	}
	return nil
}

// defaultPhases are the demo program's hard-coded operator priorities,
// overridable by -phases, per SPEC_FULL.md §4's "splitlines -> 0,
// decl -> 10, ..." example.
func defaultPhases() rules.Phases {
	return rules.Phases{
		"range":       0,
		"decl":        10,
		"foreach":     20,
		"foreacheval": 30,
	}
}

func loadPhases(path string) (rules.Phases, error) {
	out := defaultPhases()
	if path == "" {
		return out, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("arc: opening phases %q: %w", path, err)
	}
	defer f.Close()
	loaded, err := rules.LoadPhases(f)
	if err != nil {
		return nil, fmt.Errorf("arc: parsing phases %q: %w", path, err)
	}
	for name, priority := range loaded {
		out[name] = priority
	}
	return out, nil
}

func sp(offset, length int) source.Span {
	return source.Span{Source: 0, Offset: offset, Length: length}
}

// runDemo builds and runs the two illustrative programs from spec §8
// back to back (an arithmetic expression built from let-bindings,
// then a foreach loop over a range), demonstrating the Program façade
// the way a real caller would drive it. These are smaller variants of
// the scenarios program_test.go covers: the arithmetic here is
// ans = a*b (printed as 40, with no c term), and neither program ends
// with a trailing reference.
func runDemo(phases rules.Phases) error {
	p := program.NewStderr()
	defer p.Close()

	sInit := p.NewNode(node.Str{Value: "The answer to life, the universe, and everything is"}, sp(0, 1))
	sLet := p.NewNode(node.Let{Name: "s", Node: sInit}, sp(1, 1))
	aInit := p.NewNode(node.Num{Value: 10}, sp(2, 1))
	aLet := p.NewNode(node.Let{Name: "a", Node: aInit}, sp(3, 1))
	bInit := p.NewNode(node.Num{Value: 4}, sp(4, 1))
	bLet := p.NewNode(node.Let{Name: "b", Node: bInit}, sp(5, 1))
	idA := p.NewNode(node.Id{Name: "a"}, sp(6, 1))
	idB := p.NewNode(node.Id{Name: "b"}, sp(7, 1))
	mul := p.NewNode(node.BinOp{Kind: node.OpMul, Lhs: idA, Rhs: idB}, sp(8, 1))
	ansLet := p.NewNode(node.Let{Name: "ans", Node: mul}, sp(9, 1))
	idSInPrint := p.NewNode(node.Id{Name: "s"}, sp(10, 1))
	idAnsInPrint := p.NewNode(node.Id{Name: "ans"}, sp(11, 1))
	printArgs := p.NewList([]*node.Node{idSInPrint, idAnsInPrint})
	printNode := p.NewNode(node.Print{Args: printArgs}, sp(12, 1))

	lo := p.NewNode(node.Num{Value: 1}, sp(20, 1))
	dotdot := p.NewNode(node.Op{Text: ".."}, sp(21, 1))
	hi := p.NewNode(node.Num{Value: 5}, sp(22, 1))
	exprList := p.NewList([]*node.Node{lo, dotdot, hi})
	itemStr := p.NewNode(node.Str{Value: "Item"}, sp(23, 1))
	itRef := p.NewNode(node.Id{Name: "it"}, sp(24, 1))
	loopPrintArgs := p.NewList([]*node.Node{itemStr, itRef})
	loopPrintNode := p.NewNode(node.Print{Args: loopPrintArgs}, sp(25, 1))
	bodyList := p.NewList([]*node.Node{loopPrintNode})
	decl := &node.LetDecl{Name: "it"}
	feNode := p.NewNode(node.ForEach{Decl: decl, ExprList: exprList, BodyList: bodyList}, sp(20, 6))

	p.SetOutput(p.NewList([]*node.Node{sLet, aLet, bLet, ansLet, printNode, feNode}))

	p.Bind(sp(0, 1000), bind.Key{Kind: bind.KindLet}, ops.Decl{Precedence: bind.Order(phases["decl"])}, bind.Order(phases["decl"]))
	p.Bind(sp(0, 1000), bind.Op(".."), ops.MakeRange{}, bind.Order(phases["range"]))
	p.Bind(sp(24, 1), bind.ID("it"), ops.BindVar{Decl: decl}, bind.Order(phases["foreach"]))
	p.Bind(sp(0, 1000), bind.Key{Kind: bind.KindForEach}, ops.EvalForEach{}, bind.Order(phases["foreacheval"]))

	if err := p.Resolve(); err != nil {
		return fmt.Errorf("arc: resolve: %w", err)
	}
	if _, err := p.Compile(); err != nil {
		return fmt.Errorf("arc: compile: %w", err)
	}
	rt := code.NewRuntime()
	if _, err := p.Run(rt); err != nil {
		return fmt.Errorf("arc: run: %w", err)
	}
	fmt.Print(rt.Output.String())
	return nil
}
