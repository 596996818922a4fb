/*
 * ecalox
 */

/*
Package interpreter implements the tree-walking evaluator: it walks
statements against a mutable "current environment" chain, owns global
state, closures, classes and instances, and is driven once per REPL
line or once for a whole file.

Dispatch on node type uses a Go type switch, the idiomatic fit for a
fixed, closed set of node types. The resolver has already run before
Interpret is ever called, so every variable reference it could resolve
carries a known depth; return-from-function unwinds through the normal
Go error channel (see control.go).
*/
package interpreter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/loxlang/ecalox/ast"
	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/resolver"
	"github.com/loxlang/ecalox/token"
)

/*
Interpreter owns the globals environment, the current environment
pointer, the resolver's locals side-table, and the diagnostic
reporter. One instance is reused across REPL lines so globals persist
across them.
*/
type Interpreter struct {
	Globals     *Environment
	environment *Environment
	locals      resolver.Locals
	reporter    errs.Reporter
	stdout      io.Writer
}

/*
New creates an Interpreter with a freshly populated globals
environment (clock defined) and the given locals table. Pass the same
resolver.Locals instance the Resolver wrote into.
*/
func New(reporter errs.Reporter, stdout io.Writer, locals resolver.Locals) *Interpreter {
	globals := NewEnvironment("global")
	defineNatives(globals)

	return &Interpreter{
		Globals:     globals,
		environment: globals,
		locals:      locals,
		reporter:    reporter,
		stdout:      stdout,
	}
}

/*
Interpret executes a list of statements. A RuntimeError aborts the
rest of this call and is reported through the Interpreter's reporter;
it never aborts the process. A controlReturn escaping this far is an
internal invariant violation: it must be caught at the nearest
Function.Call frame, before it ever reaches Interpret.
*/
func (in *Interpreter) Interpret(statements []ast.Stmt) {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			if _, ok := err.(*controlReturn); ok {
				errs.Assert(false, "return escaped the top-level Interpret call")
			}
			if rerr, ok := err.(*errs.RuntimeError); ok {
				in.reporter.RuntimeError(rerr)
			} else {
				in.reporter.RuntimeError(errs.NewRuntimeError(nil, err.Error(), 0))
			}
			return
		}
	}
}

// --- statement execution ---

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Statements, in.environment.NewChild("block"))

	case *ast.Class:
		return in.executeClass(s)

	case *ast.Expression:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.Function:
		fn := NewFunction(s, in.environment, false)
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		} else if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.Print:
		value, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, stringify(value))
		return nil

	case *ast.Return:
		value, err := in.evaluate(s.Value)
		if err != nil {
			return err
		}
		return &controlReturn{value: value}

	case *ast.Var:
		var value interface{}
		if s.Init != nil {
			var err error
			value, err = in.evaluate(s.Init)
			if err != nil {
				return err
			}
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}
	}

	errs.Assert(false, fmt.Sprintf("unhandled statement type %T", stmt))
	return nil
}

/*
executeBlock runs statements in env, then restores the interpreter's
current environment on every exit path, including a propagated return
or runtime error.
*/
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

/*
executeClass evaluates a class declaration: define the name with nil
first (so a class can reference itself, e.g. in a method
body resolved later), evaluate and type-check an optional superclass,
build the methods map with the superclass-binding environment as their
closure when present, then assign the finished class value.
*/
func (in *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class

	in.environment.Define(s.Name.Lexeme, nil)

	if s.Superclass != nil {
		sc, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		class, ok := sc.(*Class)
		if !ok {
			return errs.NewRuntimeError(errs.ErrSuperclassNotClass, "Superclass must be a class.", s.Superclass.Name.Line)
		}
		superclass = class
	}

	methodEnv := in.environment
	if superclass != nil {
		methodEnv = in.environment.NewChild("super")
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)

	in.environment.Assign(s.Name.Lexeme, class)
	return nil
}

// --- expression evaluation ---

func (in *Interpreter) evaluate(expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if depth, ok := in.locals[e]; ok {
			in.environment.AssignAt(depth, e.Name.Lexeme, value)
		} else if !in.Globals.Assign(e.Name.Lexeme, value) {
			return nil, errs.NewRuntimeError(errs.ErrAssignUndeclaredVar,
				fmt.Sprintf("Undefined variable '%s'.", e.Name.Lexeme), e.Name.Line)
		}
		return value, nil

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errs.NewRuntimeError(errs.ErrNotAnInstance, "Only instances have properties.", e.Name.Line)
		}
		value, err := instance.Get(e.Name.Lexeme)
		if err != nil {
			if rerr, ok := err.(*errs.RuntimeError); ok {
				rerr.Line = e.Name.Line
			}
			return nil, err
		}
		return value, nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Literal:
		return e.Value, nil

	case *ast.Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Kind == token.Or {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}
		return in.evaluate(e.Right)

	case *ast.Set:
		object, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, errs.NewRuntimeError(errs.ErrNotAnInstance, "Only instances have fields.", e.Name.Line)
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name.Lexeme, value)
		return value, nil

	case *ast.Super:
		depth := in.locals[e]
		superclass := in.environment.GetAt(depth, "super").(*Class)
		instance := in.environment.GetAt(depth-1, "this").(*Instance)

		method, ok := superclass.FindMethod(e.Method.Lexeme)
		if !ok {
			return nil, errs.NewRuntimeError(errs.ErrUndefinedProperty,
				fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme), e.Method.Line)
		}
		return method.Bind(instance), nil

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)
	}

	errs.Assert(false, fmt.Sprintf("unhandled expression type %T", expr))
	return nil, nil
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (interface{}, error) {
	if depth, ok := in.locals[expr]; ok {
		return in.environment.GetAt(depth, name.Lexeme), nil
	}
	if value, ok := in.Globals.Get(name.Lexeme); ok {
		return value, nil
	}
	return nil, errs.NewRuntimeError(errs.ErrUndefinedVariable,
		fmt.Sprintf("Undefined variable '%s'.", name.Lexeme), name.Line)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (interface{}, error) {
	right, err := in.evaluate(e.Expr)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, errs.NewRuntimeError(errs.ErrNotANumber, "Operand must be a number.", e.Op.Line)
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}

	errs.Assert(false, "unhandled unary operator")
	return nil, nil
}

func (in *Interpreter) evalBinary(e *ast.Binary) (interface{}, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.Minus:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Slash:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l / r, nil // IEEE-754: 1/0 = +Inf, 0/0 = NaN
	case token.Star:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Plus:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, errs.NewRuntimeError(errs.ErrAddOperands, "Operands must be two numbers or two strings.", e.Op.Line)
	case token.Greater:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := numberOperands(left, right, e.Op.Line)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	}

	errs.Assert(false, "unhandled binary operator")
	return nil, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (interface{}, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, errs.NewRuntimeError(errs.ErrNotCallable, "Can only call functions and classes.", e.Paren.Line)
	}

	if len(args) != callable.Arity() {
		return nil, errs.NewRuntimeError(errs.ErrArity,
			fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)), e.Paren.Line)
	}

	value, err := callable.Call(in, args)
	if err != nil {
		if rerr, ok := err.(*errs.RuntimeError); ok {
			rerr.AddTrace(fmt.Sprintf("at %s (line %d)", callable.String(), e.Paren.Line))
		}
		return nil, err
	}
	return value, nil
}

func numberOperands(left, right interface{}, line int) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, errs.NewRuntimeError(errs.ErrNotNumbers, "Operands must be numbers.", line)
	}
	return l, r, nil
}

/*
isTruthy applies the truthiness rule: nil and false are falsey, every
other value is truthy.
*/
func isTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

/*
isEqual applies the equality rule: deep-value equality for primitives,
identity equality for Callable/Instance.
*/
func isEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

/*
stringify formats a runtime value for `print` and for the REPL.
Integral doubles print without a trailing ".0", and -0 prints as "0".
*/
func stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case float64:
		if val == 0 {
			return "0"
		}
		if val == math.Trunc(val) && !math.IsInf(val, 0) {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
