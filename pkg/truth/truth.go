// Package truth enumerates truth tables of boolean expression graphs.
package truth

import (
	"src.reggae.sh/pkg/boolexpr"
	"src.reggae.sh/pkg/eval/vals"
)

// Row is one assignment of the variables of a table, in table order, and the
// value of the expression under it.
type Row struct {
	Values []bool
	Result bool
}

// Enumerate assigns every combination of values to the variables of table
// and calls emit once per combination with the value of root, which must be
// built over the cells of table. The first variable varies slowest, and false
// comes before true, so there are exactly 2^N rows for N variables.
//
// The graph is re-read for every row, never rebuilt. Errors from evaluating
// root or from emit stop the enumeration.
func Enumerate(table *boolexpr.VariableTable, root boolexpr.Expr, emit func(Row) error) error {
	values := make([]bool, table.Len())
	return enumerate(table, root, values, 0, emit)
}

func enumerate(table *boolexpr.VariableTable, root boolexpr.Expr, values []bool, depth int, emit func(Row) error) error {
	if depth == len(values) {
		result, err := root.Eval()
		if err != nil {
			return err
		}
		row := Row{Values: append([]bool(nil), values...), Result: bool(result)}
		return emit(row)
	}
	for _, b := range [...]bool{false, true} {
		values[depth] = b
		if err := table.Cell(depth).Set(vals.Bool(b)); err != nil {
			return err
		}
		if err := enumerate(table, root, values, depth+1, emit); err != nil {
			return err
		}
	}
	return nil
}

// Rows collects all rows of a table.
func Rows(table *boolexpr.VariableTable, root boolexpr.Expr) ([]Row, error) {
	var rows []Row
	err := Enumerate(table, root, func(r Row) error {
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
