/*
 * ecalox
 */

/*
Package config holds the interpreter's process-wide configuration
knobs: a default map of config values plus typed accessors.
*/
package config

import (
	"fmt"
	"strconv"

	"devt.de/krotik/common/errorutil"
)

/*
ProductVersion is the current version of this interpreter.
*/
const ProductVersion = "0.1.0"

/*
Known configuration options.
*/
const (
	// ReplPrompt is printed before reading each REPL line.
	ReplPrompt = "ReplPrompt"

	// ClockMonotonic selects whether the clock() builtin reports a
	// monotonic counter (true) or wall-clock seconds (false). Monotonic
	// is the default so two calls in the same run are always comparable
	// even across a system clock adjustment.
	ClockMonotonic = "ClockMonotonic"
)

/*
DefaultConfig is the default configuration.
*/
var DefaultConfig = map[string]interface{}{
	ReplPrompt:     "> ",
	ClockMonotonic: true,
}

/*
Config is the actual configuration in use.
*/
var Config map[string]interface{}

func init() {
	data := make(map[string]interface{})
	for k, v := range DefaultConfig {
		data[k] = v
	}
	Config = data
}

/*
Str reads a config value as a string.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int.
*/
func Int(key string) int {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return int(ret)
}

/*
Bool reads a config value as a bool.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
