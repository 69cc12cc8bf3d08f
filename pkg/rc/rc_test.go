package rc

import (
	"path/filepath"
	"strings"
	"testing"

	"src.reggae.sh/pkg/must"
	"src.reggae.sh/pkg/testutil"
	"src.reggae.sh/pkg/tt"
)

func TestDecode(t *testing.T) {
	tt.Test(t, tt.Fn("Decode", func(s string) (*Config, error) {
		return Decode(strings.NewReader(s))
	}), tt.Table{
		tt.Args("").Rets(&Config{}, nil),
		tt.Args("compact: true\ncache_size: 8\n").
			Rets(&Config{Compact: true, CacheSize: 8}, nil),
		tt.Args("log: /tmp/log\ndb: reggae.db\nhistory: h\n").
			Rets(&Config{Log: "/tmp/log", DB: "reggae.db", History: "h"}, nil),
		tt.Args("colour: red\n").
			Rets((*Config)(nil), tt.ErrorWithMessage(
				"yaml: unmarshal errors:\n  line 1: field colour not found in type rc.Config")),
	})
}

func TestLoad(t *testing.T) {
	dir := testutil.TempDir(t)
	path := filepath.Join(dir, "rc.yaml")
	must.WriteFile(path, "compact: true\n")

	cfg, err := Load(path)
	if err != nil || !cfg.Compact {
		t.Errorf("Load -> %v, %v", cfg, err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Load of missing file -> nil error")
	}
}

func TestDefaultPath(t *testing.T) {
	testutil.Setenv(t, "XDG_CONFIG_HOME", "/xdg")
	testutil.Setenv(t, "HOME", "/home/u")
	path, err := DefaultPath()
	if err != nil {
		t.Skip("no config dir:", err)
	}
	if !strings.HasSuffix(path, filepath.Join("reggae", "rc.yaml")) {
		t.Errorf("DefaultPath() = %q", path)
	}
}
