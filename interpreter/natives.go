/*
 * ecalox
 */

package interpreter

import (
	"time"

	"github.com/loxlang/ecalox/config"
)

/*
defineNatives populates globals with the interpreter's builtin
callables before any user code runs. There is no package/import
system, so each native is a named Go closure satisfying Callable,
defined directly into the globals environment rather than looked up
through a qualified namespace.
*/
func defineNatives(globals *Environment) {
	start := time.Now()

	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(args []interface{}) (interface{}, error) {
			if config.Bool(config.ClockMonotonic) {
				return time.Since(start).Seconds(), nil
			}
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}
