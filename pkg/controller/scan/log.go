package scan

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type colorFunc func(a ...interface{}) string

type Logger struct {
	stdout io.Writer
	green  colorFunc
}

func NewLogger(stdout io.Writer) *Logger {
	return &Logger{
		stdout: stdout,
		green:  color.New(color.FgGreen).SprintFunc(),
	}
}

// Output writes one submission entry. Upstream originals have no version
// and are annotated so they can be told apart from scanned dependencies.
func (l *Logger) Output(e *Entry) {
	if e.Version == "" {
		fmt.Fprintf(l.stdout, "%s %s\n", e.Identifier, l.green("(upstream)"))
		return
	}
	fmt.Fprintln(l.stdout, e.Identifier)
}
