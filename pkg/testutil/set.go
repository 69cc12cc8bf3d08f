package testutil

// Set overrides a package variable such as a build setting, and restores it
// when the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	c.Cleanup(func() { *p = old })
	*p = v
}
