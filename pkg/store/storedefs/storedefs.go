// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import (
	"errors"

	"src.reggae.sh/pkg/truth"
)

// ErrNoMatchingLine is the error returned when a PrevLine query completes
// with no result.
var ErrNoMatchingLine = errors.New("no matching line")

// ErrNoTable is returned by Table when no table is stored for an expression.
var ErrNoTable = errors.New("no such table")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextLineSeq() (int, error)
	AddLine(text string) (int, error)
	Lines(from, upto int) ([]Line, error)
	PrevLine(upto int, prefix string) (Line, error)

	PutTable(expr string, t Table) error
	Table(expr string) (Table, error)
	DelTable(expr string) error

	Close() error
}

// Line is an entry in the line history.
type Line struct {
	Text string
	Seq  int
}

// Table is a computed truth table.
type Table struct {
	Names []string    `yaml:"names"`
	Rows  []truth.Row `yaml:"rows"`
}
