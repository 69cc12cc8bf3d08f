package testutil

import "os"

// Setenv sets an environment variable, and restores its old value, or unsets
// it, when the test finishes. It returns value.
func Setenv(c Cleanuper, name, value string) string {
	if old, ok := os.LookupEnv(name); ok {
		c.Cleanup(func() { os.Setenv(name, old) })
	} else {
		c.Cleanup(func() { os.Unsetenv(name) })
	}
	os.Setenv(name, value)
	return value
}
