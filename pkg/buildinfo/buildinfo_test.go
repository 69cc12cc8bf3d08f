package buildinfo

import (
	"fmt"
	"runtime"
	"testing"

	. "src.reggae.sh/pkg/prog/progtest"
	"src.reggae.sh/pkg/testutil"
)

func TestProgram(t *testing.T) {
	testutil.Set(t, &VersionSuffix, "-test")
	testutil.Set(t, &Reproducible, "true")

	Test(t, Program{},
		ThatReggae("-norc", "-version").WritesStdout(Version+"-test\n"),
		ThatReggae("-norc", "-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v-test\nGo version: %v\nReproducible build: true\n",
				Version, runtime.Version())),
		ThatReggae("-norc").ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}
