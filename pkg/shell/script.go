package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Evaluates the lines of the named files, or of stdin if there are none. An
// error on one line is reported and does not stop the evaluation of the
// following lines. Returns the exit status.
func script(fds [3]*os.File, s *Session, args []string) int {
	failed := false
	evalLines := func(name string, r io.Reader) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if err := s.EvalLine(scanner.Text()); err != nil {
				fmt.Fprintln(fds[2], "error:", err)
				failed = true
			}
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(fds[2], "cannot read %s: %v\n", name, err)
			failed = true
		}
	}

	if len(args) == 0 {
		evalLines("stdin", fds[0])
	}
	for _, name := range args {
		file, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read %s: %v\n", name, err)
			failed = true
			continue
		}
		evalLines(name, file)
		file.Close()
	}

	if failed {
		return 2
	}
	return 0
}
