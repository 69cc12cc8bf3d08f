package eval

import (
	"fmt"
	"reflect"
	"strings"

	"src.reggae.sh/pkg/ast"
	"src.reggae.sh/pkg/diag"
	"src.reggae.sh/pkg/eval/errs"
	"src.reggae.sh/pkg/eval/vals"
	"src.reggae.sh/pkg/memo"
)

// Callable is a function that can be the target of a call. Functions are not
// values; they live in a namespace of their own.
type Callable interface {
	Name() string
	// Call calls the function with arguments that have already been forced.
	Call(ev *Evaler, args []vals.Value) (vals.Value, error)
}

// Closure is a function defined in the program.
type Closure struct {
	FnName   string
	Params   []string
	Body     ast.Expr
	DefRange diag.Ranging
	// Result cache, or nil if the function is not cached.
	cache *memo.Cache[vals.Value]
}

var _ Callable = &Closure{}

// NewClosure creates a Closure from its definition.
func NewClosure(def *ast.Func) (*Closure, error) {
	c := &Closure{FnName: def.Name, Params: def.Params, Body: def.Body, DefRange: def.Range()}
	if def.Cache != nil {
		policy, err := memo.ParsePolicy(def.Cache.Policy)
		if err != nil {
			return nil, err
		}
		c.cache, err = memo.New[vals.Value](policy, def.Cache.Capacity)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Name returns the name of the function.
func (c *Closure) Name() string { return c.FnName }

// Call runs the body in a fresh environment binding the parameters. The scope
// is popped before returning, so every thunk created by the body has been
// forced when Call returns, and a thunk result is replaced by its value.
//
// If the closure is cached and no argument holds a reference or a thunk, the
// result is looked up in and added to the cache.
func (c *Closure) Call(ev *Evaler, args []vals.Value) (vals.Value, error) {
	if len(args) != len(c.Params) {
		return nil, errs.ArityMismatch{What: "arguments of " + c.FnName,
			ValidLow: len(c.Params), ValidHigh: len(c.Params), Actual: len(args)}
	}

	var key string
	cacheable := false
	if c.cache != nil {
		key, cacheable = cacheKey(args)
		if cacheable {
			if v, ok := c.cache.Get(key); ok {
				logger.Printf("cache hit: %s(%s)", c.FnName, key)
				return v, nil
			}
		}
	}

	env := NewEnv()
	for i, name := range c.Params {
		if err := env.Bind(name, args[i]); err != nil {
			return nil, err
		}
	}
	v, err := ev.eval(env, c.Body)
	if err == nil {
		err = env.checkEscape(v)
	}
	if popErr := env.PopScope(); err == nil {
		err = popErr
	}
	if err != nil {
		return nil, err
	}
	v, err = Force(v)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if evicted, ok := c.cache.Put(key, v); ok {
			logger.Printf("cache eviction (%s): %s(%s)", c.cache.Policy(), c.FnName, evicted)
		}
	}
	return v, nil
}

func cacheKey(args []vals.Value) (string, bool) {
	var sb strings.Builder
	for i, arg := range args {
		if !cacheable(arg) {
			return "", false
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Repr())
	}
	return sb.String(), true
}

func cacheable(v vals.Value) bool {
	switch v := v.(type) {
	case vals.Unit, vals.Bool, vals.Byte:
		return true
	case *vals.Struct:
		for _, f := range v.Fields {
			if !cacheable(f) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

type goFn struct {
	name string
	impl reflect.Value
	// If true, pass the Evaler as the first argument.
	evaler bool
	// Types of the remaining parameters.
	params []reflect.Type
}

var (
	evalerType = reflect.TypeOf((*Evaler)(nil))
	valueType  = reflect.TypeOf((*vals.Value)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// NewGoFn wraps a Go function into a Callable. The function may take an
// *Evaler as its first parameter; all other parameters must be of types that
// implement vals.Value. It may return nothing, an error, a value, or a value
// and an error. A function that returns no value returns unit.
//
// Arguments whose dynamic type is not assignable to the parameter type are
// rejected with errs.TypeMismatch.
func NewGoFn(name string, impl any) Callable {
	v := reflect.ValueOf(impl)
	t := v.Type()
	if t.Kind() != reflect.Func || t.IsVariadic() {
		panic(fmt.Sprintf("bad Go function %s: %T", name, impl))
	}
	f := &goFn{name: name, impl: v}
	i := 0
	if t.NumIn() > 0 && t.In(0) == evalerType {
		f.evaler = true
		i = 1
	}
	for ; i < t.NumIn(); i++ {
		if !t.In(i).Implements(valueType) {
			panic(fmt.Sprintf("bad Go function %s: parameter %d is %v", name, i, t.In(i)))
		}
		f.params = append(f.params, t.In(i))
	}
	for i := 0; i < t.NumOut(); i++ {
		if out := t.Out(i); out != errorType && !out.Implements(valueType) {
			panic(fmt.Sprintf("bad Go function %s: result %d is %v", name, i, out))
		}
	}
	return f
}

func (f *goFn) Name() string { return f.name }

func (f *goFn) Call(ev *Evaler, args []vals.Value) (vals.Value, error) {
	if len(args) != len(f.params) {
		return nil, errs.ArityMismatch{What: "arguments of " + f.name,
			ValidLow: len(f.params), ValidHigh: len(f.params), Actual: len(args)}
	}
	var in []reflect.Value
	if f.evaler {
		in = append(in, reflect.ValueOf(ev))
	}
	for i, arg := range args {
		if arg == nil || !reflect.TypeOf(arg).AssignableTo(f.params[i]) {
			return nil, errs.TypeMismatch{
				What:   fmt.Sprintf("argument %d of %s", i+1, f.name),
				Valid:  kindOfType(f.params[i]),
				Actual: vals.KindOf(arg)}
		}
		in = append(in, reflect.ValueOf(arg))
	}

	outs := f.impl.Call(in)
	var result vals.Value = vals.TheUnit
	for _, out := range outs {
		if out.Type() == errorType {
			if !out.IsNil() {
				return nil, out.Interface().(error)
			}
		} else if !isNil(out) {
			result = out.Interface().(vals.Value)
		}
	}
	return result, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

// Returns the kind name of values of a parameter type.
func kindOfType(t reflect.Type) string {
	if t.Kind() == reflect.Interface {
		return "value"
	}
	return reflect.Zero(t).Interface().(vals.Value).Kind().String()
}
