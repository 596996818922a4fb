/*
 * ecalox
 */

/*
Command lox is the driver for the interpreter: `lox [script]` runs a
file, `lox` with no arguments drops into an interactive REPL.

Flag parsing picks between a log file (fileutil's rollover writer) and
the standard logger on stderr, and the REPL loop runs on
termutil.NewConsoleLineTerminal/AddHistoryMixin/StartTerm/
NextLinePrompt/StopTerm. There is no package system, plugin loading, debugger or
console-command layer; the driver is just scan/parse/resolve/evaluate
plus I/O plumbing.
*/
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/termutil"

	"github.com/loxlang/ecalox/config"
	"github.com/loxlang/ecalox/internal/errs"
	"github.com/loxlang/ecalox/internal/logutil"
	"github.com/loxlang/ecalox/interpreter"
	"github.com/loxlang/ecalox/parser"
	"github.com/loxlang/ecalox/resolver"
	"github.com/loxlang/ecalox/scanner"
)

func main() {
	debug := flag.Bool("debug", false, "Print a runtime error's call trace below the usual two lines")
	logLevel := flag.String("log-level", "Error", "Logging level for the driver's own diagnostics (Debug, Info, Error)")
	logFile := flag.String("log-file", "", "Log driver diagnostics to a file instead of stderr")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := buildLogger(*logFile, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	reporter := errs.NewConsoleReporter(os.Stderr)
	reporter.Debug = *debug

	switch flag.NArg() {
	case 0:
		runPrompt(reporter, logger)
	case 1:
		os.Exit(runFile(flag.Arg(0), reporter, logger))
	default:
		flag.Usage()
		os.Exit(64)
	}
}

/*
buildLogger picks between a rolling log file and the standard logger
on stderr, wrapped at the requested level.
*/
func buildLogger(path, level string) (logutil.Logger, error) {
	var logger logutil.Logger

	if path != "" {
		rollover := fileutil.SizeBasedRolloverCondition(1000000)
		w, err := fileutil.NewMultiFileBuffer(path, fileutil.ConsecutiveNumberIterator(10), rollover)
		if err != nil {
			return nil, err
		}
		logger = logutil.NewBufferLogger(w)
	} else {
		logger = logutil.NewStdOutLogger()
	}

	return logutil.NewLevelLogger(logger, level)
}

/*
runFile reads the whole file, runs it, and maps the reporter's
terminal state to the documented exit codes.
*/
func runFile(path string, reporter *errs.ConsoleReporter, logger logutil.Logger) int {
	source, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file %q: %v\n", path, err)
		return 1
	}

	locals := resolver.Locals{}
	run(string(source), path, reporter, logger, interpreter.New(reporter, os.Stdout, locals), locals)

	if reporter.HadError() {
		return 65
	}
	if reporter.HadRuntimeError() {
		return 70
	}
	return 0
}

/*
runPrompt runs the REPL: one Evaluator instance (and its locals table)
is reused across lines so that globals and scope depths persist for
the life of the process; the reporter's error flags are cleared
between lines so one bad line doesn't kill the session.
*/
func runPrompt(reporter *errs.ConsoleReporter, logger logutil.Logger) {
	term, err := termutil.NewConsoleLineTerminal(os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	term, err = termutil.AddHistoryMixin(term, "", func(s string) bool {
		return isExitLine(s)
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	if err := term.StartTerm(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer term.StopTerm()

	locals := resolver.Locals{}
	in := interpreter.New(reporter, os.Stdout, locals)

	logger.LogInfo(fmt.Sprintf("lox %s", config.ProductVersion))

	for {
		line, err := term.NextLinePrompt(config.Str(config.ReplPrompt), 0)
		if err != nil || isExitLine(line) {
			return
		}

		run(line, "repl", reporter, logger, in, locals)
		reporter.Reset()
	}
}

func isExitLine(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed == "exit" || trimmed == "quit" || trimmed == "\x04"
}

/*
run drives one full pass of the pipeline (scan, parse, resolve,
evaluate), stopping after any stage that reports a compile error: a
syntax or resolution error aborts the pipeline before evaluation ever
runs.
*/
func run(source, name string, reporter *errs.ConsoleReporter, logger logutil.Logger, in *interpreter.Interpreter, locals resolver.Locals) {
	tokens := scanner.ScanToList(name, source, reporter)
	if reporter.HadError() {
		return
	}

	statements := parser.Parse(tokens, reporter)
	if reporter.HadError() {
		return
	}

	resolver.New(reporter, locals).Resolve(statements)
	if reporter.HadError() {
		return
	}

	logger.LogDebug(fmt.Sprintf("running %d statement(s) from %s", len(statements), name))
	in.Interpret(statements)
}
