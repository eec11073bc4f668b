package cli

import (
	"fmt"
	"io"
)

// IO funnels command output so warnings stay visible when stdout is piped.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
}

// NewIO creates an IO writing to the given streams.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Warn records a non-fatal problem. Warnings are printed to stderr by
// Finish and turn the exit code non-zero so scripted callers notice.
func (o *IO) Warn(issue string) {
	o.warnings = append(o.warnings, issue)
}

// Finish flushes warnings and returns the exit code: 1 when any warning was
// recorded, 0 otherwise.
func (o *IO) Finish() int {
	for _, w := range o.warnings {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	if len(o.warnings) > 0 {
		return 1
	}

	return 0
}
