/*
 * ecalox
 */

package errs

import (
	"fmt"
	"io"
	"strings"
)

/*
ConsoleReporter is the default Reporter: it writes compile errors as
"[line L] Error<where>: <message>" and runtime errors as
"<message>\n[line L]" to the given writer (normally os.Stderr). It also
tracks the hadError/hadRuntimeError flags the driver's REPL clears
between lines.
*/
type ConsoleReporter struct {
	Out             io.Writer
	Debug           bool // print the call trace below the two required lines
	hadError        bool
	hadRuntimeError bool
}

/*
NewConsoleReporter returns a reporter writing to out.
*/
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{Out: out}
}

func (r *ConsoleReporter) Report(line int, where, msg string) {
	fmt.Fprintf(r.Out, "[line %d] Error%s: %s\n", line, where, msg)
	r.hadError = true
}

func (r *ConsoleReporter) RuntimeError(err *RuntimeError) {
	fmt.Fprintf(r.Out, "%s\n[line %d]\n", err.Error(), err.Line)

	if r.Debug && len(err.Trace) > 0 {
		fmt.Fprintln(r.Out, strings.Join(err.Trace, "\n"))
	}

	r.hadRuntimeError = true
}

func (r *ConsoleReporter) HadError() bool {
	return r.hadError
}

func (r *ConsoleReporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

/*
Reset clears both flags, called by the REPL between lines so one bad
line doesn't keep later lines from running.
*/
func (r *ConsoleReporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}
