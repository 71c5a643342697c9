// Package logging builds the logr.Logger handed to the other packages.
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing one line per entry to w. Entries with a
// V-level above verbosity are dropped. Writes are serialized, so the
// logger can be shared by concurrent rollouts.
func New(w io.Writer, verbosity int) logr.Logger {
	var mu sync.Mutex
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity})
}

// Discard returns a logger that drops everything.
func Discard() logr.Logger {
	return logr.Discard()
}
