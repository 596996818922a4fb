/*
 * ecalox
 */

package interpreter

import (
	"fmt"

	"github.com/loxlang/ecalox/internal/errs"
)

/*
Class is a runtime class value: a name, its own methods, and an
optional superclass.
*/
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

/*
NewClass creates a class runtime value.
*/
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

/*
FindMethod walks the superclass chain looking for name.
*/
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

/*
Arity is the arity of the class's init() method, or 0 if it has none
(calling a class with no initializer takes no arguments).
*/
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

/*
Call instantiates the class: allocate an Instance, then run init() on
it (bound so 'this' resolves) if one is declared.
*/
func (c *Class) Call(in *Interpreter, args []interface{}) (interface{}, error) {
	instance := NewInstance(c)

	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}

func (c *Class) String() string {
	return c.Name
}

/*
Instance is a runtime object value: a class pointer and a field
mapping. Fields are set on first assignment; methods never become
fields.
*/
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

/*
NewInstance creates an instance of class.
*/
func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]interface{})}
}

/*
Get reads a field, falling back to a bound method from the class
chain. Returns an error for an undefined property.
*/
func (i *Instance) Get(name string) (interface{}, error) {
	if v, ok := i.fields[name]; ok {
		return v, nil
	}

	if method, ok := i.class.FindMethod(name); ok {
		return method.Bind(i), nil
	}

	return nil, errs.NewRuntimeError(errs.ErrUndefinedProperty, fmt.Sprintf("Undefined property '%s'.", name), 0)
}

/*
Set stores a field value, creating it on first assignment.
*/
func (i *Instance) Set(name string, value interface{}) {
	i.fields[name] = value
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s instance", i.class.Name)
}
