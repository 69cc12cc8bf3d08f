// Package astyaml decodes program trees from YAML documents.
//
// A document is a mapping with the keys externs, structs, funcs and main:
//
//	externs: [print]
//	structs:
//	  - {name: point, fields: [x, y]}
//	funcs:
//	  - name: show
//	    params: [p]
//	    cache: lru!8
//	    body: {call: {fn: print, args: [{ident: p}]}}
//	main:
//	  lazy: {fn: show, args: [{byte: 1}]}
//
// Every expression is a mapping with a single key naming the node kind. The
// positions of the nodes are recorded in their diag.Ranging, and decoding
// errors are *diag.Error values pointing into the document.
package astyaml

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/boolexpr"
	"src.reggae.sh/pkg/diag"
	"src.reggae.sh/pkg/memo"
)

// Decode decodes a program. The name is used in error messages.
func Decode(name string, src []byte) (prog *ast.Program, err error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, &diag.Error{
			Type: "decode error", Message: err.Error(),
			Context: diag.Context{Name: name}}
	}
	d := &decoder{name}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &diag.Error{
			Type: "decode error", Message: "empty document",
			Context: diag.Context{Name: name}}
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(*diag.Error); ok {
			prog, err = nil, e
			return
		}
		panic(r)
	}()
	return d.program(doc.Content[0]), nil
}

type decoder struct{ name string }

func (d *decoder) errorf(n *yaml.Node, format string, args ...any) {
	panic(&diag.Error{
		Type:    "decode error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(d.name, ranging(n))})
}

func ranging(n *yaml.Node) diag.Ranging { return diag.PointRanging(n.Line, n.Column) }

func (d *decoder) program(n *yaml.Node) *ast.Program {
	f := d.fields(n, "program", []string{"main"}, []string{"externs", "structs", "funcs"})
	p := &ast.Program{Main: d.expr(f["main"])}
	for _, item := range d.seq(f["externs"]) {
		p.Externs = append(p.Externs, &ast.Extern{Ranging: ranging(item), Name: d.str(item)})
	}
	for _, item := range d.seq(f["structs"]) {
		sf := d.fields(item, "struct declaration", []string{"name", "fields"}, nil)
		p.Structs = append(p.Structs, &ast.StructDecl{
			Ranging: ranging(item), Name: d.str(sf["name"]), Fields: d.strs(sf["fields"])})
	}
	for _, item := range d.seq(f["funcs"]) {
		p.Funcs = append(p.Funcs, d.fn(item))
	}
	return p
}

func (d *decoder) fn(n *yaml.Node) *ast.Func {
	f := d.fields(n, "function", []string{"name", "body"}, []string{"params", "cache"})
	fn := &ast.Func{
		Ranging: ranging(n),
		Name:    d.str(f["name"]),
		Params:  d.strs(f["params"]),
		Body:    d.expr(f["body"]),
	}
	if c := f["cache"]; c != nil {
		fn.Cache = d.cache(c)
	}
	return fn
}

// Parses a cache policy, optionally followed by "!" and a capacity.
func (d *decoder) cache(n *yaml.Node) *ast.Cache {
	s := d.str(n)
	policy, capacity, hasCap := strings.Cut(s, "!")
	if _, err := memo.ParsePolicy(policy); err != nil {
		d.errorf(n, "bad cache policy %q", policy)
	}
	c := &ast.Cache{Policy: policy, Capacity: memo.Unbounded}
	if hasCap {
		i, err := strconv.Atoi(capacity)
		if err != nil || (i < 1 && i != memo.Unbounded) {
			d.errorf(n, "bad cache capacity %q", capacity)
		}
		c.Capacity = i
	}
	return c
}

func (d *decoder) expr(n *yaml.Node) ast.Expr {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		d.errorf(n, "expression must be a mapping with a single key")
	}
	key, v := n.Content[0], n.Content[1]
	r := ranging(key)
	switch kind := key.Value; kind {
	case "unit":
		return &ast.Unit{Ranging: r}
	case "bool":
		var b bool
		d.scalar(v, &b, "bool literal")
		return &ast.BoolLit{Ranging: r, Value: b}
	case "byte":
		var i int
		d.scalar(v, &i, "byte literal")
		if i < 0 || i > 255 {
			d.errorf(v, "byte literal out of range: %d", i)
		}
		return &ast.ByteLit{Ranging: r, Value: uint8(i)}
	case "ident":
		return &ast.Ident{Ranging: r, Name: d.str(v)}
	case "struct":
		f := d.fields(v, kind, []string{"type"}, []string{"fields"})
		return &ast.StructLit{Ranging: r, Type: d.str(f["type"]), Fields: d.exprs(f["fields"])}
	case "field":
		f := d.fields(v, kind, []string{"of", "name"}, nil)
		return &ast.Field{Ranging: r, X: d.expr(f["of"]), Name: d.str(f["name"])}
	case "call", "lazy":
		f := d.fields(v, kind, []string{"fn"}, []string{"args"})
		return &ast.Call{Ranging: r, Fn: d.str(f["fn"]), Args: d.exprs(f["args"]), Lazy: kind == "lazy"}
	case "force":
		return &ast.Force{Ranging: r, X: d.expr(v)}
	case "let":
		f := d.fields(v, kind, []string{"name", "value", "body"}, nil)
		return &ast.Let{Ranging: r, Name: d.str(f["name"]), Value: d.expr(f["value"]), Body: d.expr(f["body"])}
	case "seq":
		return &ast.Seq{Ranging: r, Exprs: d.exprs(v)}
	case "if":
		f := d.fields(v, kind, []string{"cond", "then"}, []string{"else"})
		node := &ast.If{Ranging: r, Cond: d.expr(f["cond"]), Then: d.expr(f["then"])}
		if e := f["else"]; e != nil {
			node.Else = d.expr(e)
		}
		return node
	case "match":
		f := d.fields(v, kind, []string{"subject", "arms"}, nil)
		node := &ast.Match{Ranging: r, Subject: d.expr(f["subject"])}
		for _, item := range d.seq(f["arms"]) {
			node.Arms = append(node.Arms, d.arm(item))
		}
		return node
	case "borrow", "borrow_mut":
		return &ast.Borrow{Ranging: r, Name: d.str(v), Mut: kind == "borrow_mut"}
	case "deref":
		return &ast.Deref{Ranging: r, X: d.expr(v)}
	case "assign":
		f := d.fields(v, kind, []string{"target", "value"}, nil)
		return &ast.Assign{Ranging: r, Target: d.expr(f["target"]), Value: d.expr(f["value"])}
	case "logic":
		return &ast.Logic{Ranging: r, Tokens: boolexpr.Tokenize(d.str(v))}
	case "truth_table":
		return &ast.TruthTable{Ranging: r, Tokens: boolexpr.Tokenize(d.str(v))}
	default:
		d.errorf(key, "unknown node kind %s", kind)
		panic("unreachable")
	}
}

func (d *decoder) arm(n *yaml.Node) *ast.Arm {
	f := d.fields(n, "match arm", []string{"pattern", "body"}, []string{"guard"})
	arm := &ast.Arm{Ranging: ranging(n), Pattern: d.pattern(f["pattern"]), Body: d.expr(f["body"])}
	if g := f["guard"]; g != nil {
		arm.Guard = d.expr(g)
	}
	return arm
}

func (d *decoder) pattern(n *yaml.Node) ast.Pattern {
	if n.Kind == yaml.ScalarNode && n.Value == "_" {
		return &ast.WildcardPattern{Ranging: ranging(n)}
	}
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		d.errorf(n, "pattern must be _ or a mapping with a single key")
	}
	key, v := n.Content[0], n.Content[1]
	r := ranging(key)
	switch key.Value {
	case "bind":
		return &ast.BindPattern{Ranging: r, Name: d.str(v)}
	case "lit":
		lit := d.expr(v)
		switch lit.(type) {
		case *ast.Unit, *ast.BoolLit, *ast.ByteLit:
		default:
			d.errorf(v, "literal pattern must be unit, bool or byte")
		}
		return &ast.LitPattern{Ranging: r, Value: lit}
	case "struct":
		f := d.fields(v, "struct pattern", []string{"type"}, []string{"fields"})
		p := &ast.StructPattern{Ranging: r, Type: d.str(f["type"])}
		for _, item := range d.seq(f["fields"]) {
			p.Fields = append(p.Fields, d.pattern(item))
		}
		return p
	default:
		d.errorf(key, "unknown pattern kind %s", key.Value)
		panic("unreachable")
	}
}

// Checks that n is a mapping with all the required keys and no keys other
// than the required and optional ones.
func (d *decoder) fields(n *yaml.Node, what string, required, optional []string) map[string]*yaml.Node {
	if n.Kind != yaml.MappingNode {
		d.errorf(n, "%s must be a mapping", what)
	}
	m := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !contains(required, key.Value) && !contains(optional, key.Value) {
			d.errorf(key, "unknown key %s in %s", key.Value, what)
		}
		if _, dup := m[key.Value]; dup {
			d.errorf(key, "duplicate key %s in %s", key.Value, what)
		}
		m[key.Value] = n.Content[i+1]
	}
	for _, name := range required {
		if m[name] == nil {
			d.errorf(n, "missing key %s in %s", name, what)
		}
	}
	return m
}

func contains(names []string, name string) bool {
	for _, s := range names {
		if s == name {
			return true
		}
	}
	return false
}

// Returns the items of a sequence. A nil node is an empty sequence.
func (d *decoder) seq(n *yaml.Node) []*yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		d.errorf(n, "must be a sequence")
	}
	return n.Content
}

func (d *decoder) exprs(n *yaml.Node) []ast.Expr {
	var es []ast.Expr
	for _, item := range d.seq(n) {
		es = append(es, d.expr(item))
	}
	return es
}

func (d *decoder) str(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode {
		d.errorf(n, "must be a string")
	}
	return n.Value
}

func (d *decoder) strs(n *yaml.Node) []string {
	var ss []string
	for _, item := range d.seq(n) {
		ss = append(ss, d.str(item))
	}
	return ss
}

func (d *decoder) scalar(n *yaml.Node, p any, what string) {
	if n.Kind != yaml.ScalarNode {
		d.errorf(n, "%s must be a scalar", what)
	}
	if err := n.Decode(p); err != nil {
		d.errorf(n, "bad %s %q", what, n.Value)
	}
}
