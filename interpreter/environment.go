/*
 * ecalox
 */

package interpreter

import (
	"fmt"

	"github.com/loxlang/ecalox/internal/errs"
)

/*
Environment is a single scope frame in the environment chain: a name,
a storage map and a link to the enclosing scope. Evaluation is
single-threaded, so no locking is needed around the map.

Ancestor walks exactly N parent links. Rather than resolving a name by
walking up doing a string lookup at every level until one hits, this
interpreter's resolver (resolver.Resolver) precomputes the hop count,
so evaluation only needs to walk to the right frame and then look up
once.
*/
type Environment struct {
	name   string
	parent *Environment
	values map[string]interface{}
}

/*
NewEnvironment creates a root environment with no parent. Used for the
one long-lived globals environment.
*/
func NewEnvironment(name string) *Environment {
	return &Environment{name: name, values: make(map[string]interface{})}
}

/*
NewChild creates a child environment enclosed by e. Every block
execution gets its own fresh child, not a shared, name-addressed one.
*/
func (e *Environment) NewChild(name string) *Environment {
	return &Environment{name: name, parent: e, values: make(map[string]interface{})}
}

/*
Parent returns the enclosing environment, or nil for the root.
*/
func (e *Environment) Parent() *Environment {
	return e.parent
}

/*
Define binds name to value in this environment. Re-defining an
existing name in the same environment overwrites it: this covers both
ordinary Var execution and REPL redeclaration of globals.
*/
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

/*
Ancestor walks exactly depth parent links up from e. The resolver
guarantees depth is always in range for any node it has recorded; a
violation here means the resolver and evaluator have gone out of sync,
which is an internal invariant failure, not a runtime error a Lox
program can trigger.
*/
func (e *Environment) Ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		errs.Assert(env.parent != nil, "environment chain shorter than resolved depth")
		env = env.parent
	}
	return env
}

/*
GetAt reads name from the environment depth hops up the chain.
*/
func (e *Environment) GetAt(depth int, name string) interface{} {
	v, ok := e.Ancestor(depth).values[name]
	errs.Assert(ok, fmt.Sprintf("resolved variable %q missing from its recorded scope", name))
	return v
}

/*
AssignAt assigns value to name in the environment depth hops up the
chain.
*/
func (e *Environment) AssignAt(depth int, name string, value interface{}) {
	e.Ancestor(depth).values[name] = value
}

/*
Get reads a global (un-resolved) variable. ok is false if it was never
defined; the caller attaches line information.
*/
func (e *Environment) Get(name string) (value interface{}, ok bool) {
	value, ok = e.values[name]
	return
}

/*
Assign assigns to a global (un-resolved) variable. Returns false if
the name was never declared: assigning to an undeclared global is a
runtime error, unlike Define which always succeeds.
*/
func (e *Environment) Assign(name string, value interface{}) bool {
	if _, ok := e.values[name]; ok {
		e.values[name] = value
		return true
	}
	return false
}

/*
String returns a debug representation of the environment.
*/
func (e *Environment) String() string {
	return fmt.Sprintf("environment(%s)", e.name)
}
