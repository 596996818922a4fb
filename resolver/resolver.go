/*
 * ecalox
 */

/*
Package resolver implements a static scope-depth pass: walk every
statement and expression once, before evaluation, and record in Locals
how many environment hops a variable use needs to reach its
declaration. Absence from Locals means "resolve in globals".

The pass mirrors the interpreter's own block/function/class scope
structure but tracks only declared names, not runtime values, so the
evaluator never has to walk the environment chain doing a string
lookup at every level; it precomputes the hop count once instead.
*/
package resolver

import (
	"github.com/loxlang/ecalox/ast"
	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/token"
)

/*
Locals maps a variable-use AST-node (identity via the node pointer, as
an interface value) to its resolved depth. Populated only for
Variable, Assign, This and Super nodes that bind to a non-global name.
*/
type Locals map[ast.Expr]int

type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

/*
Resolver runs the resolution pass. The driver creates one per run; what
persists across REPL lines is the Locals table it writes into. Global
declarations are not tracked at all.
*/
type Resolver struct {
	reporter errs.Reporter
	locals   Locals
	scopes   []map[string]bool
	curFn    functionKind
	curClass classKind
}

/*
New creates a Resolver that writes into locals (pass a fresh Locals{}
for a one-shot run, or a persistent one across REPL lines).
*/
func New(reporter errs.Reporter, locals Locals) *Resolver {
	return &Resolver{reporter: reporter, locals: locals}
}

/*
Resolve walks statements, populating the Resolver's Locals table.
*/
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reportAt(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) reportAt(tok token.Token, msg string) {
	r.reporter.Report(tok.Line, " at '"+tok.Lexeme+"'", msg)
}

/*
resolveLocal searches scopes from innermost outward and records the
depth for expr if name is found in a non-global scope.
*/
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any tracked scope: resolves in globals.
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFn := r.curFn
	r.curFn = kind
	defer func() { r.curFn = enclosingFn }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.Class:
		enclosingClass := r.curClass
		r.curClass = classClass
		defer func() { r.curClass = enclosingClass }()

		r.declare(s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name.Lexeme == s.Name.Lexeme {
				r.reportAt(s.Superclass.Name, "A class can't inherit from itself.")
			}
			r.curClass = classSubclass
			r.resolveExpr(s.Superclass)

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = true
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, method := range s.Methods {
			kind := fnMethod
			if method.Name.Lexeme == "init" {
				kind = fnInitializer
			}
			r.resolveFunction(method, kind)
		}

		r.endScope()

		if s.Superclass != nil {
			r.endScope()
		}

	case *ast.Expression:
		r.resolveExpr(s.Expr)

	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)

	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.Print:
		r.resolveExpr(s.Expr)

	case *ast.Return:
		if r.curFn == fnNone {
			r.reportAt(s.Keyword, "Can't return from top-level code.")
		}
		if lit, ok := s.Value.(*ast.Literal); !(ok && lit.Value == nil) {
			if r.curFn == fnInitializer {
				r.reportAt(s.Keyword, "Can't return a value from an initializer.")
			}
		}
		r.resolveExpr(s.Value)

	case *ast.Var:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpr(s.Init)
		}
		r.define(s.Name)

	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Grouping:
		r.resolveExpr(e.Inner)

	case *ast.Literal:
		// nothing to resolve

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.Super:
		if r.curClass == classNone {
			r.reportAt(e.Keyword, "Can't use 'super' outside of a class.")
		} else if r.curClass != classSubclass {
			r.reportAt(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.This:
		if r.curClass == classNone {
			r.reportAt(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Unary:
		r.resolveExpr(e.Expr)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if v, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !v {
				r.reportAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}
