package ui

import (
	"fmt"
	"io"
	"os"
)

// Output streams; swapped in tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// OK prints a success line to Stdout.
func OK(msg string) {
	t := Current()
	fmt.Fprintln(Stdout, t.Success.Render(t.SymDone+" "+msg))
}

// Fail prints an error line to Stderr.
func Fail(msg string) {
	t := Current()
	fmt.Fprintln(Stderr, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted line to Stderr.
func Hint(msg string) {
	fmt.Fprintln(Stderr, Current().Muted.Render(msg))
}
