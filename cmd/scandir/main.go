// Scandir lists the entries of a directory.
package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gbansaghi/scandir/cmd/scandir/root"
)

type exitCoder interface {
	ExitCode() int
}

func main() {
	if err := root.Execute(os.Args[1:]); err != nil {
		// Print a short, single-line error to stderr on failures.
		// Do not print usage or stack traces.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}

		_, _ = os.Stderr.WriteString("scandir: " + msg + "\n")

		code := 1
		var ec exitCoder
		if errors.As(err, &ec) {
			if c := ec.ExitCode(); c != 0 {
				code = c
			}
		}

		os.Exit(code)
	}
}
