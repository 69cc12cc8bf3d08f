package shell_test

import (
	"path/filepath"
	"testing"

	"src.reggae.sh/pkg/must"
	. "src.reggae.sh/pkg/prog/progtest"
	"src.reggae.sh/pkg/shell"
	"src.reggae.sh/pkg/sys"
	"src.reggae.sh/pkg/testutil"
)

const andTable = "" +
	"x     y     | x y &\n" +
	"false false | false\n" +
	"false true  | false\n" +
	"true  false | false\n" +
	"true  true  | true\n" +
	"\n"

const notTableCompact = "" +
	"x | x !\n" +
	"F | T\n" +
	"T | F\n" +
	"\n"

func TestShell_Stdin(t *testing.T) {
	Test(t, shell.Program{},
		ThatReggae("-norc").WithStdin("x y &\n").WritesStdout(andTable),
		ThatReggae("-norc").WithStdin("  x   y &  \n\n").WritesStdout(andTable),
		ThatReggae("-norc", "-compact").WithStdin("x !\n").WritesStdout(notTableCompact),
		ThatReggae("-norc").WithStdin("T F =>\n").
			WritesStdout("| T F =>\n| false\n\n"),
	)
}

func TestShell_BadLines(t *testing.T) {
	Test(t, shell.Program{},
		ThatReggae("-norc").WithStdin("x &\n").
			ExitsWith(2).
			WritesStderr("error: malformed expression: stack underflow at position 1\n"),
		ThatReggae("-norc").WithStdin("x ?\nx !\n").
			ExitsWith(2).
			WritesStdout("x     | x !\nfalse | true\ntrue  | false\n\n").
			WritesStderrContaining(`unrecognized token "?"`),
		ThatReggae("-norc", "-cache-size", "0").WithStdin("x !\n").
			ExitsWith(2).
			WritesStderrContaining("out of range: cache capacity"),
	)
}

func TestShell_Files(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"a.txt": "x !\n",
		"b.txt": "x y &\n",
	})
	Test(t, shell.Program{},
		ThatReggae("-norc", "-compact", "a.txt").WritesStdout(notTableCompact),
		ThatReggae("-norc", "b.txt").WritesStdout(andTable),
		ThatReggae("-norc", "missing.txt", "b.txt").
			ExitsWith(2).
			WritesStdout(andTable).
			WritesStderrContaining("cannot read missing.txt"),
	)
}

func TestShell_DB(t *testing.T) {
	dir := testutil.TempDir(t)
	db := filepath.Join(dir, "reggae.db")
	for i := 0; i < 2; i++ {
		Test(t, shell.Program{},
			ThatReggae("-norc", "-db", db).WithStdin("x y &\nx y &\n").
				WritesStdout(andTable+andTable),
		)
	}
}

func TestShell_BadDB(t *testing.T) {
	dir := testutil.TempDir(t)
	Test(t, shell.Program{},
		ThatReggae("-norc", "-db", dir).WithStdin("x !\n").
			WritesStdout("x     | x !\nfalse | true\ntrue  | false\n\n").
			WritesStderrContaining("Warning:"),
	)
}

func TestShell_Interactive(t *testing.T) {
	if sys.IsATTY(0) {
		t.Skip("stdin of the test is a terminal")
	}
	dir := testutil.TempDir(t)
	history := filepath.Join(dir, "history")
	must.WriteFile(history, "x !\n")

	Test(t, shell.Program{},
		ThatReggae("-norc", "-history", history).OnTerminal().
			WithStdin("x y &\n\nx &\n").
			ExitsWith(2).
			WritesStdout(andTable+"\n").
			WritesStderr("error: malformed expression: stack underflow at position 1\n"),
	)

	if got, want := must.ReadFileString(history), "x !\nx y &\nx &\n"; got != want {
		t.Errorf("history file is %q, want %q", got, want)
	}
}
