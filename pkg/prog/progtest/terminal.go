package progtest

import (
	"io"
	"os"
	"testing"

	"github.com/creack/pty"

	"src.reggae.sh/pkg/prog"
	"src.reggae.sh/pkg/sys"
	"src.reggae.sh/pkg/testutil"
)

// End-of-file character of a terminal in canonical mode.
const eof = "\x04"

func runOnTerminal(t *testing.T, p prog.Program, args []string, input string) result {
	if sys.IsATTY(0) {
		// Line editors switch the real terminal to raw mode.
		t.Skip("stdin of the test is a terminal")
	}
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skip("cannot open a pseudo-terminal:", err)
	}
	defer ptm.Close()
	defer pts.Close()

	// Line editors that use the standard streams of the process directly
	// see the pseudo-terminal too.
	testutil.Set(t, &os.Stdin, pts)
	testutil.Set(t, &os.Stdout, pts)

	// Drain echoed input and prompts.
	go io.Copy(io.Discard, ptm)
	io.WriteString(ptm, input+eof)

	return runWithStdin(p, args, pts)
}
