/*
 * ecalox
 */

package interpreter

import (
	"fmt"

	"github.com/loxlang/ecalox/ast"
	"github.com/loxlang/ecalox/token"
)

/*
Callable is satisfied by every value that can appear on the left of a
Call expression: native functions, user functions, and classes
(instantiation goes through Class.Call).
*/
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string
}

/*
Function is a user-defined function or method value: a declaration
plus the environment captured at definition time.

A super-binding, where present, is modeled as one more Environment
layer the same way a 'this'-binding is (see Bind below); the two
layouts differ only in whether that extra layer exists.
*/
type Function struct {
	name          string
	params        []token.Token
	body          []ast.Stmt
	closure       *Environment
	isInitializer bool
}

/*
NewFunction builds a function value from a declaration, capturing env
as its closure.
*/
func NewFunction(decl *ast.Function, closure *Environment, isInitializer bool) *Function {
	return &Function{name: decl.Name.Lexeme, params: decl.Params, body: decl.Body, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int {
	return len(f.params)
}

/*
Call runs the function body in a fresh environment enclosing its
closure, with parameters bound to args. A propagated controlReturn
yields its value; init() methods always return the bound 'this'
regardless of early return or fall-through.
*/
func (f *Function) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := f.closure.NewChild(fmt.Sprintf("func:%s", f.name))

	for i, p := range f.params {
		env.Define(p.Lexeme, args[i])
	}

	err := in.executeBlock(f.body, env)

	if ret, ok := err.(*controlReturn); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

/*
Bind returns a new function value whose closure is one more
Environment layer (binding 'this' to instance) than f.closure, built
by wrapping a new scope around the original closure.
*/
func (f *Function) Bind(instance *Instance) *Function {
	env := f.closure.NewChild("this")
	env.Define("this", instance)
	return &Function{name: f.name, params: f.params, body: f.body, closure: env, isInitializer: f.isInitializer}
}

func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

/*
NativeFunction is a builtin callable provided by the interpreter, not
defined in source (e.g. the 'clock' builtin).
*/
type NativeFunction struct {
	name  string
	arity int
	fn    func(args []interface{}) (interface{}, error)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	return n.fn(args)
}

func (n *NativeFunction) String() string {
	return "<native fn>"
}
