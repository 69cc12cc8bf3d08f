// Reggae prints truth tables of postfix boolean expressions, one per line, and
// runs program trees written as YAML documents on a small runtime with owned
// cells, borrowed references, lazy calls and memoized functions.
package main

import (
	"os"

	"src.reggae.sh/pkg/buildinfo"
	"src.reggae.sh/pkg/prog"
	"src.reggae.sh/pkg/run"
	"src.reggae.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, run.Program{}, shell.Program{})))
}
