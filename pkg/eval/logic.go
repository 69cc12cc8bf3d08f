package eval

import (
	"src.reggae.sh/pkg/boolexpr"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/eval/vars"
	"src.reggae.sh/pkg/truth"
)

// LogicRef is the value of a boolean expression over names in scope. It is a
// read-only reference: dereferencing it evaluates the expression against the
// current values of the cells it reads.
type LogicRef struct {
	Root  boolexpr.Expr
	cells []*vars.Cell
	refs  []*vars.Ref
}

var _ vals.Value = (*LogicRef)(nil)

func (*LogicRef) Kind() vals.Kind { return vals.RefKind }

func (r *LogicRef) Repr() string { return "<ref " + r.Root.String() + ">" }

// Builds the expression graph of a Logic node. An expression that does not
// depend on any name yields a Bool; otherwise the result is a *LogicRef.
func evalLogic(env *Env, tokens []boolexpr.Token) (vals.Value, error) {
	root, err := boolexpr.Eval(tokens, env)
	if err != nil {
		return nil, err
	}
	if c, ok := root.(boolexpr.Const); ok {
		return c.Value, nil
	}
	r := &LogicRef{Root: root}
	collectReaders(root, r)
	return r, nil
}

func collectReaders(e boolexpr.Expr, r *LogicRef) {
	switch e := e.(type) {
	case boolexpr.VarRef:
		switch x := e.Cell.(type) {
		case *vars.Cell:
			r.cells = append(r.cells, x)
		case *vars.Ref:
			r.refs = append(r.refs, x)
			r.cells = append(r.cells, x.Cell())
		}
	case boolexpr.Unary:
		collectReaders(e.X, r)
	case boolexpr.Binary:
		collectReaders(e.Left, r)
		collectReaders(e.Right, r)
	}
}

// Enumerates the truth table of an expression over its own variables and
// writes it to the output.
func (ev *Evaler) printTruthTable(tokens []boolexpr.Token) error {
	table := boolexpr.CollectVars(tokens)
	root, err := boolexpr.Eval(tokens, table)
	if err != nil {
		return err
	}
	p := &truth.Printer{Layout: ev.Layout}
	if err := p.Header(ev.Out, table.Names(), boolexpr.Join(tokens)); err != nil {
		return err
	}
	err = truth.Enumerate(table, root, func(row truth.Row) error {
		return p.Row(ev.Out, row)
	})
	if err != nil {
		return err
	}
	return p.End(ev.Out)
}
