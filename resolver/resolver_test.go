/*
 * ecalox
 */

package resolver

import (
	"bytes"
	"testing"

	"github.com/loxlang/ecalox/ast"
	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/parser"
	"github.com/loxlang/ecalox/scanner"
)

func resolveSrc(t *testing.T, src string) (Locals, *errs.ConsoleReporter) {
	t.Helper()
	var buf bytes.Buffer
	rep := errs.NewConsoleReporter(&buf)
	toks := scanner.ScanToList("test", src, rep)
	stmts := parser.Parse(toks, rep)
	locals := Locals{}
	New(rep, locals).Resolve(stmts)
	return locals, rep
}

func TestSelfReferentialInitializerIsError(t *testing.T) {
	_, rep := resolveSrc(t, `var a = "outer"; { var a = a; }`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't read local variable in its own initializer.'")
	}
}

func TestDuplicateLocalIsError(t *testing.T) {
	_, rep := resolveSrc(t, `{ var a = 1; var a = 2; }`)
	if !rep.HadError() {
		t.Fatal("expected 'Already a variable with this name in this scope.'")
	}
}

func TestDuplicateGlobalIsAllowed(t *testing.T) {
	_, rep := resolveSrc(t, `var a = 1; var a = 2;`)
	if rep.HadError() {
		t.Fatal("redeclaring a global should be allowed")
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	_, rep := resolveSrc(t, `return 1;`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't return from top-level code.'")
	}
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	_, rep := resolveSrc(t, `class A { init() { return 1; } }`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't return a value from an initializer.'")
	}
}

func TestBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, rep := resolveSrc(t, `class A { init() { return; } }`)
	if rep.HadError() {
		t.Fatal("a bare return from an initializer should be allowed")
	}
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, rep := resolveSrc(t, `print this;`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't use 'this' outside of a class.'")
	}
}

func TestSuperOutsideClassIsError(t *testing.T) {
	_, rep := resolveSrc(t, `print super.x;`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't use 'super' outside of a class.'")
	}
}

func TestSuperWithoutSuperclassIsError(t *testing.T) {
	_, rep := resolveSrc(t, `class A { m() { super.m(); } }`)
	if !rep.HadError() {
		t.Fatal("expected 'Can't use 'super' in a class with no superclass.'")
	}
}

func TestClassCannotInheritFromItself(t *testing.T) {
	_, rep := resolveSrc(t, `class A < A {}`)
	if !rep.HadError() {
		t.Fatal("expected 'A class can't inherit from itself.'")
	}
}

func TestClosureDepthIsRecordedForLocalsOnly(t *testing.T) {
	locals, rep := resolveSrc(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "local";
  show();
}
`)
	if rep.HadError() {
		t.Fatal("unexpected resolver error")
	}

	// The two calls to show() reference the global 'a' (show was
	// declared, and its body resolved, before the local 'a' existed).
	// No Variable node resolving 'a' inside show's body should have a
	// recorded depth, since it binds at global scope.
	showRefs := 0
	for expr, depth := range locals {
		if depth < 0 {
			t.Errorf("depth should never be negative, got %d", depth)
		}
		if v, ok := expr.(*ast.Variable); ok {
			switch v.Name.Lexeme {
			case "a":
				t.Errorf("global 'a' should have no recorded depth, got %d", depth)
			case "show":
				showRefs++
			}
		}
	}
	// Both calls name the block-local 'show', so both are recorded.
	if showRefs != 2 {
		t.Errorf("got %d recorded references to 'show', want 2", showRefs)
	}
}
