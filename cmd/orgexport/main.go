// cmd/orgexport/main.go
//
// Entry point for the orgexport CLI. Running `orgexport EMAIL...` loads the
// roster named in orgexport.yaml, builds the reporting hierarchy and writes
// one file with the requested managers and everyone below them.
//
// Without emails on the command line the tool asks for them interactively.

package main

import (
	"fmt"
	"os"

	"github.com/kingrea/orgexport/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		die(err)
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, report.Failure(err))
	os.Exit(1)
}
