package diag

// Context names a range within a named source, typically a file holding a
// program tree, or a function definition. It is used for errors that can be
// associated with a part of the program and for traceback entries.
type Context struct {
	Name string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name string, r Ranger) *Context {
	return &Context{name, r.Range()}
}

// String returns "name:line:col", or just the name if the range is unknown.
func (c *Context) String() string {
	if c.IsZero() {
		return c.Name
	}
	return c.Name + ":" + c.From.String()
}
