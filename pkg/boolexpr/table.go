package boolexpr

import (
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
)

// VariableTable is an ordered set of boolean variables. The table owns the
// cells; expression graphs built against it read them, and the enumerator
// writes them. Insertion order fixes the enumeration order.
type VariableTable struct {
	names []string
	cells map[string]*vars.Cell
}

// NewVariableTable creates a table with the given variables, all initially
// false.
func NewVariableTable(names ...string) (*VariableTable, error) {
	t := &VariableTable{cells: make(map[string]*vars.Cell)}
	for _, name := range names {
		if err := t.Add(name); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// CollectVars builds a table from the variable tokens of an expression, in
// order of first appearance.
func CollectVars(tokens []Token) *VariableTable {
	t := &VariableTable{cells: make(map[string]*vars.Cell)}
	for _, tok := range tokens {
		if tok.Kind == VariableToken {
			if _, ok := t.cells[tok.Text]; !ok {
				t.Add(tok.Text)
			}
		}
	}
	return t
}

// Add appends a variable. It fails with errs.DuplicateBinding if the name is
// already in the table.
func (t *VariableTable) Add(name string) error {
	if _, ok := t.cells[name]; ok {
		return errs.DuplicateBinding{Name: name}
	}
	t.names = append(t.names, name)
	t.cells[name] = vars.NewCell(name, vals.Bool(false))
	return nil
}

// Len returns the number of variables.
func (t *VariableTable) Len() int { return len(t.names) }

// Names returns the variable names in table order.
func (t *VariableTable) Names() []string { return t.names }

// Cell returns the cell of the i-th variable.
func (t *VariableTable) Cell(i int) *vars.Cell { return t.cells[t.names[i]] }

// Resolve implements Resolver.
func (t *VariableTable) Resolve(name string) (vars.Reader, bool) {
	cell, ok := t.cells[name]
	if !ok {
		return nil, false
	}
	return cell, true
}
