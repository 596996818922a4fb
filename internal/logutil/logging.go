/*
 * ecalox
 */

/*
Package logutil provides a leveled logger used by the driver to report
its own events (the version banner at Info level when the REPL starts,
each pipeline run at Debug level; compile and runtime errors go through
the errs reporter, not the logger): a Logger interface, a LevelLogger
wrapper adding level-based filtering, a MemoryLogger backed by a ring
buffer (used by tests), a BufferLogger for writing to an arbitrary
io.Writer, and a StdOutLogger for normal operation.
*/
package logutil

import (
	"fmt"
	"io"
	"log"
	"strings"

	"devt.de/krotik/common/datautil"
)

/*
Logger is the minimal logging contract the driver depends on.
*/
type Logger interface {
	LogError(m ...interface{})
	LogInfo(m ...interface{})
	LogDebug(m ...interface{})
}

/*
Level represents a logging level.
*/
type Level string

// Log levels
const (
	Debug Level = "debug"
	Info  Level = "info"
	Error Level = "error"
)

/*
LevelLogger wraps a Logger and adds level-based filtering.
*/
type LevelLogger struct {
	logger Logger
	level  Level
}

/*
NewLevelLogger wraps logger with level-based filtering. level must be
one of "debug", "info", "error".
*/
func NewLevelLogger(logger Logger, level string) (*LevelLogger, error) {
	l := Level(strings.ToLower(level))

	if l != Debug && l != Info && l != Error {
		return nil, fmt.Errorf("invalid log level: %v", l)
	}

	return &LevelLogger{logger, l}, nil
}

/*
Level returns the current log level.
*/
func (ll *LevelLogger) Level() Level {
	return ll.level
}

/*
LogError adds a new error log message. Always passed through.
*/
func (ll *LevelLogger) LogError(m ...interface{}) {
	ll.logger.LogError(m...)
}

/*
LogInfo adds a new info log message, filtered at Error level.
*/
func (ll *LevelLogger) LogInfo(m ...interface{}) {
	if ll.level == Info || ll.level == Debug {
		ll.logger.LogInfo(m...)
	}
}

/*
LogDebug adds a new debug log message, only kept at Debug level.
*/
func (ll *LevelLogger) LogDebug(m ...interface{}) {
	if ll.level == Debug {
		ll.logger.LogDebug(m...)
	}
}

/*
MemoryLogger collects log messages in a ring buffer in memory. Used by
tests that assert on log content without capturing output.
*/
type MemoryLogger struct {
	*datautil.RingBuffer
}

/*
NewMemoryLogger returns a new memory logger that keeps the last size
messages.
*/
func NewMemoryLogger(size int) *MemoryLogger {
	return &MemoryLogger{datautil.NewRingBuffer(size)}
}

func (ml *MemoryLogger) LogError(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (ml *MemoryLogger) LogInfo(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprint(m...))
}

func (ml *MemoryLogger) LogDebug(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

/*
Slice returns the current log contents in order, oldest first.
*/
func (ml *MemoryLogger) Slice() []string {
	sl := ml.RingBuffer.Slice()
	ret := make([]string, len(sl))
	for i, lm := range sl {
		ret[i] = lm.(string)
	}
	return ret
}

/*
BufferLogger writes log messages to an arbitrary io.Writer. Used by
the driver's -log-file option, where the writer is a
fileutil-managed rolling file buffer.
*/
type BufferLogger struct {
	buf io.Writer
}

/*
NewBufferLogger returns a logger that writes to buf.
*/
func NewBufferLogger(buf io.Writer) *BufferLogger {
	return &BufferLogger{buf}
}

func (bl *BufferLogger) LogError(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (bl *BufferLogger) LogInfo(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprint(m...))
}

func (bl *BufferLogger) LogDebug(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

/*
StdOutLogger writes log messages via the standard library's default
logger, which writes to stderr.
*/
type StdOutLogger struct {
	stdlog func(v ...interface{})
}

/*
NewStdOutLogger returns a logger that writes through log.Print.
*/
func NewStdOutLogger() *StdOutLogger {
	return &StdOutLogger{log.Print}
}

func (sl *StdOutLogger) LogError(m ...interface{}) {
	sl.stdlog(fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (sl *StdOutLogger) LogInfo(m ...interface{}) {
	sl.stdlog(fmt.Sprint(m...))
}

func (sl *StdOutLogger) LogDebug(m ...interface{}) {
	sl.stdlog(fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}
