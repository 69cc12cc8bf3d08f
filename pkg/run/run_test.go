package run_test

import (
	"testing"

	. "src.reggae.sh/pkg/prog/progtest"
	"src.reggae.sh/pkg/run"
	"src.reggae.sh/pkg/testutil"
)

func TestRun(t *testing.T) {
	testutil.InTempDir(t)
	testutil.ApplyDir(testutil.Dir{
		"hello.yaml": "" +
			"externs: [print]\n" +
			"main:\n" +
			"  call: {fn: print, args: [{bool: true}]}\n",
		"table.yaml":   "main: {truth_table: \"x !\"}\n",
		"unbound.yaml": "main: {ident: x}\n",
		"bad.yaml":     "main: {frob: 1}\n",
	})

	Test(t, run.Program{},
		ThatReggae("-norc", "-run", "hello.yaml").WritesStdout("true\n()\n"),
		ThatReggae("-norc", "-run", "table.yaml").
			WritesStdout("x     | x !\nfalse | true\ntrue  | false\n\n()\n"),
		ThatReggae("-norc", "-compact", "-run", "table.yaml").
			WritesStdout("x | x !\nF | T\nT | F\n\n()\n"),
		ThatReggae("-norc", "-run", "hello.yaml", "extra").
			ExitsWith(2).
			WritesStderrContaining("arguments are not allowed with -run"),
		ThatReggae("-norc", "-run", "unbound.yaml").
			ExitsWith(2).
			WritesStderr("Exception: unbound name: x\nTraceback:\n  main:1:8\n"),
		ThatReggae("-norc", "-run", "bad.yaml").
			ExitsWith(2).
			WritesStderrContaining("Decode error"),
		ThatReggae("-norc", "-run", "missing.yaml").
			ExitsWith(2).
			WritesStderrContaining("cannot read missing.yaml"),
	)
}

func TestRun_NotSuitable(t *testing.T) {
	Test(t, run.Program{},
		ThatReggae("-norc").ExitsWith(2).WritesStderrContaining("internal error"),
	)
}
