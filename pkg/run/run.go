// Package run is the entry point for running program trees written as YAML
// documents.
package run

import (
	"fmt"
	"os"

	"src.reggae.sh/pkg/ast/astyaml"
	"src.reggae.sh/pkg/diag"
	"src.reggae.sh/pkg/eval"
	"src.reggae.sh/pkg/logutil"
	"src.reggae.sh/pkg/prog"
	"src.reggae.sh/pkg/truth"
)

var logger = logutil.GetLogger("[run] ")

// Program runs the program tree named by the -run flag, and prints the value
// of its main expression.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.Run == "" {
		return prog.ErrNotSuitable
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -run")
	}

	src, err := os.ReadFile(f.Run)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot read %s: %v\n", f.Run, err)
		return prog.Exit(2)
	}
	p, err := astyaml.Decode(f.Run, src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}

	ev := eval.NewEvaler(fds[1])
	if f.Compact {
		ev.Layout = truth.Compact
	}
	logger.Printf("running %s", f.Run)
	v, err := ev.Run(p)
	if err != nil {
		diag.ShowError(fds[2], err)
		return prog.Exit(2)
	}
	fmt.Fprintln(fds[1], v.Repr())
	return nil
}
