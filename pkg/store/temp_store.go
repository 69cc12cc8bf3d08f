package store

import (
	"path/filepath"

	"src.reggae.sh/pkg/store/storedefs"
	"src.reggae.sh/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. It panics if the
// store cannot be created. The store is closed and the file removed when the
// test finishes.
func MustTempStore(c testutil.Cleanuper) storedefs.Store {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, DefaultFile))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
