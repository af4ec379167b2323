package framework

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the minimal logging interface used throughout the harness. A *log.Logger
// satisfies it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedMessage struct {
	Time    time.Time
	Message string
}

type CapturedOutput []CapturedMessage

// CapturingLogger keeps debug output for a single test so that it can be shown afterward,
// depending on whether the test passed. Tests run one at a time, so it is not synchronized.
type CapturingLogger struct {
	output []CapturedMessage
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
}

func (l *CapturingLogger) Output() CapturedOutput {
	return append(CapturedOutput(nil), l.output...)
}

// Dump writes each message with a timestamp. Messages spanning several lines, such as
// response bodies, keep the prefix on every line; continuation lines keep their own
// indentation and get no timestamp.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		lines := strings.Split(strings.TrimRight(m.Message, "\n"), "\n")
		fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(dest, "%s%s\n", prefix, line)
		}
	}
}
