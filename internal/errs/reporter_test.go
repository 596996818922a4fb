/*
 * ecalox
 */

package errs

import (
	"bytes"
	"testing"
)

func TestConsoleReporterReportFormat(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)

	rep.Report(5, " at 'foo'", "Expect ';'.")

	want := "[line 5] Error at 'foo': Expect ';'.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !rep.HadError() {
		t.Error("expected HadError() to be true after Report")
	}
	if rep.HadRuntimeError() {
		t.Error("Report must not set the runtime error flag")
	}
}

func TestConsoleReporterReportAtEnd(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)

	rep.Report(12, " at end", "Expect expression.")

	want := "[line 12] Error at end: Expect expression.\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestConsoleReporterRuntimeErrorFormat(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)

	err := NewRuntimeError(ErrNotNumbers, "Operands must be numbers.", 3)
	rep.RuntimeError(err)

	want := "Operands must be numbers.\n[line 3]\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
	if !rep.HadRuntimeError() {
		t.Error("expected HadRuntimeError() to be true after RuntimeError")
	}
	if rep.HadError() {
		t.Error("RuntimeError must not set the compile error flag")
	}
}

func TestConsoleReporterRuntimeErrorWithTrace(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)
	rep.Debug = true

	err := NewRuntimeError(ErrNotANumber, "Operand must be a number.", 7)
	err.AddTrace("in fn at line 7")
	err.AddTrace("in main at line 1")
	rep.RuntimeError(err)

	want := "Operand must be a number.\n[line 7]\nin fn at line 7\nin main at line 1\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestConsoleReporterReset(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)

	rep.Report(1, "", "bad")
	rep.RuntimeError(NewRuntimeError(nil, "bad", 1))

	if !rep.HadError() || !rep.HadRuntimeError() {
		t.Fatal("expected both flags set before Reset")
	}

	rep.Reset()

	if rep.HadError() || rep.HadRuntimeError() {
		t.Error("expected both flags cleared after Reset")
	}
}
