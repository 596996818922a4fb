/*
 * ecalox
 */

package parser

import (
	"bytes"
	"testing"

	"github.com/loxlang/ecalox/ast"
	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/scanner"
)

func parseSrc(t *testing.T, src string) ([]ast.Stmt, *errs.ConsoleReporter) {
	t.Helper()
	var buf bytes.Buffer
	rep := errs.NewConsoleReporter(&buf)
	toks := scanner.ScanToList("test", src, rep)
	stmts := Parse(toks, rep)
	if rep.HadError() {
		t.Logf("parse errors: %s", buf.String())
	}
	return stmts, rep
}

func TestParseExpressionStatement(t *testing.T) {
	stmts, rep := parseSrc(t, `1 + 2 * 3;`)
	if rep.HadError() {
		t.Fatal("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}

	exprStmt, ok := stmts[0].(*ast.Expression)
	if !ok {
		t.Fatalf("got %T, want *ast.Expression", stmts[0])
	}

	bin, ok := exprStmt.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", exprStmt.Expr)
	}
	if _, ok := bin.Right.(*ast.Binary); !ok {
		t.Errorf("expected '*' to bind tighter than '+', got right=%T", bin.Right)
	}
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, rep := parseSrc(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if rep.HadError() {
		t.Fatal("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}

	block, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("got %T, want *ast.Block wrapping the initializer+while", stmts[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("got %d inner statements, want 2 (init, while)", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.Var); !ok {
		t.Errorf("first statement should be the initializer, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("second statement should be the desugared while, got %T", block.Statements[1])
	}
	whileBody, ok := whileStmt.Body.(*ast.Block)
	if !ok {
		t.Fatalf("while body should be a block wrapping body+increment, got %T", whileStmt.Body)
	}
	if len(whileBody.Statements) != 2 {
		t.Fatalf("got %d statements in while body, want 2 (body, increment)", len(whileBody.Statements))
	}
}

func TestParseForMissingClausesDefaultTrueCondition(t *testing.T) {
	stmts, rep := parseSrc(t, `for (;;) print 1;`)
	if rep.HadError() {
		t.Fatal("unexpected parse error")
	}

	whileStmt, ok := stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *ast.While", stmts[0])
	}

	lit, ok := whileStmt.Cond.(*ast.Literal)
	if !ok || lit.Value != true {
		t.Errorf("missing for-condition should default to literal true, got %#v", whileStmt.Cond)
	}
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, rep := parseSrc(t, `class B < A { hi() { print "hi"; } }`)
	if rep.HadError() {
		t.Fatal("unexpected parse error")
	}

	class, ok := stmts[0].(*ast.Class)
	if !ok {
		t.Fatalf("got %T, want *ast.Class", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Errorf("unexpected superclass: %#v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "hi" {
		t.Errorf("unexpected methods: %#v", class.Methods)
	}
}

func TestParseAssignTargets(t *testing.T) {
	stmts, rep := parseSrc(t, `a = 1; a.b = 2;`)
	if rep.HadError() {
		t.Fatal("unexpected parse error")
	}

	if _, ok := stmts[0].(*ast.Expression).Expr.(*ast.Assign); !ok {
		t.Errorf("expected *ast.Assign, got %T", stmts[0].(*ast.Expression).Expr)
	}
	if _, ok := stmts[1].(*ast.Expression).Expr.(*ast.Set); !ok {
		t.Errorf("expected *ast.Set, got %T", stmts[1].(*ast.Expression).Expr)
	}
}

func TestParseInvalidAssignmentTargetReportsButDoesNotAbort(t *testing.T) {
	stmts, rep := parseSrc(t, `1 = 2; print "still runs";`)
	if !rep.HadError() {
		t.Fatal("expected an 'Invalid assignment target.' error")
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (parsing should continue after the bad target)", len(stmts))
	}
	if _, ok := stmts[1].(*ast.Print); !ok {
		t.Errorf("second statement should be the print, got %T", stmts[1])
	}
}

func TestSynchronizeRecoversAfterBadStatement(t *testing.T) {
	stmts, rep := parseSrc(t, `var = ; print "after error";`)
	if !rep.HadError() {
		t.Fatal("expected a parse error on the first statement")
	}

	found := false
	for _, s := range stmts {
		if es, ok := s.(*ast.Print); ok {
			if lit, ok := es.Expr.(*ast.Literal); ok && lit.Value == "after error" {
				found = true
			}
		}
	}
	if !found {
		t.Error("synchronize should let the following print statement still parse")
	}
}

func TestTooManyArgumentsReportsButParses(t *testing.T) {
	src := "f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ","
		}
		src += "1"
	}
	src += ");"

	stmts, rep := parseSrc(t, src)
	if !rep.HadError() {
		t.Fatal("expected 'Can't have more than 255 arguments.' error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	call, ok := stmts[0].(*ast.Expression).Expr.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", stmts[0].(*ast.Expression).Expr)
	}
	if len(call.Args) != 256 {
		t.Errorf("got %d arguments, want all 256 parsed", len(call.Args))
	}
}
