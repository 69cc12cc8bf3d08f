package shell

import (
	"io"

	"src.reggae.sh/pkg/boolexpr"
	"src.reggae.sh/pkg/memo"
	"src.reggae.sh/pkg/store/storedefs"
	"src.reggae.sh/pkg/truth"
)

// Session evaluates lines and prints their truth tables.
//
// Truth tables are remembered in an in-memory LRU cache, and in the store if
// there is one, keyed by the normalized expression.
type Session struct {
	Out    io.Writer
	Layout truth.Layout
	// Width of the terminal, or -1 if the output is not a terminal. Tables
	// wider than the terminal are printed with the compact layout.
	Width int
	// Store is nil if lines and tables are not persisted.
	Store storedefs.Store

	cache *memo.Cache[storedefs.Table]
}

// NewSession creates a Session writing to out. The store may be nil.
func NewSession(out io.Writer, cacheSize int, st storedefs.Store) (*Session, error) {
	cache, err := memo.New[storedefs.Table](memo.LRU, cacheSize)
	if err != nil {
		return nil, err
	}
	return &Session{Out: out, Width: -1, Store: st, cache: cache}, nil
}

// EvalLine evaluates one line and prints its truth table. Blank lines are
// ignored.
func (s *Session) EvalLine(line string) error {
	tokens := boolexpr.Tokenize(line)
	if len(tokens) == 0 {
		return nil
	}
	expr := boolexpr.Join(tokens)
	if s.Store != nil {
		if _, err := s.Store.AddLine(expr); err != nil {
			logger.Println("failed to add line:", err)
		}
	}
	t, err := s.table(tokens, expr)
	if err != nil {
		return err
	}
	return s.printer(t.Names, expr).Print(s.Out, t.Names, expr, t.Rows)
}

func (s *Session) table(tokens []boolexpr.Token, expr string) (storedefs.Table, error) {
	if t, ok := s.cache.Get(expr); ok {
		logger.Printf("cache hit: %s", expr)
		return t, nil
	}
	if s.Store != nil {
		t, err := s.Store.Table(expr)
		if err == nil {
			logger.Printf("store hit: %s", expr)
			s.remember(expr, t)
			return t, nil
		} else if err != storedefs.ErrNoTable {
			logger.Println("failed to get table:", err)
		}
	}

	vt := boolexpr.CollectVars(tokens)
	root, err := boolexpr.Eval(tokens, vt)
	if err != nil {
		return storedefs.Table{}, err
	}
	rows, err := truth.Rows(vt, root)
	if err != nil {
		return storedefs.Table{}, err
	}
	t := storedefs.Table{Names: vt.Names(), Rows: rows}
	s.remember(expr, t)
	if s.Store != nil {
		if err := s.Store.PutTable(expr, t); err != nil {
			logger.Println("failed to put table:", err)
		}
	}
	return t, nil
}

func (s *Session) remember(expr string, t storedefs.Table) {
	if evicted, ok := s.cache.Put(expr, t); ok {
		logger.Printf("cache eviction: %s", evicted)
	}
}

// Returns a printer for the table, falling back to the compact layout when
// the word layout does not fit the terminal.
func (s *Session) printer(names []string, expr string) *truth.Printer {
	p := &truth.Printer{Layout: s.Layout}
	if p.Layout == truth.Words && s.Width > 0 && p.Width(names, expr) > s.Width {
		p.Layout = truth.Compact
	}
	return p
}
