// Package prog provides the entry point to reggae. Its subpackages correspond
// to subprograms of reggae.
package prog

// This package sets up the basic environment and calls the appropriate
// "subprogram", either the line interface or the program tree runner.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"src.reggae.sh/pkg/logutil"
	"src.reggae.sh/pkg/rc"
)

var logger = logutil.GetLogger("[prog] ")

// DefaultCacheSize is the default number of truth tables kept in memory.
const DefaultCacheSize = 64

// Flags keeps command-line flags.
type Flags struct {
	Log string

	Help, Version, BuildInfo, Compact, NoRc bool
	RC                                      string

	DB, History string
	CacheSize   int

	Run string
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("reggae", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.Compact, "compact", false, "print truth tables with T and F")
	fs.BoolVar(&f.NoRc, "norc", false, "run reggae without reading rc.yaml")
	fs.StringVar(&f.RC, "rc", "", "path to rc.yaml")

	fs.StringVar(&f.DB, "db", "", "path to the database of lines and truth tables")
	fs.StringVar(&f.History, "history", "", "path to the history file of the line editor")
	fs.IntVar(&f.CacheSize, "cache-size", DefaultCacheSize, "number of truth tables kept in memory")

	fs.StringVar(&f.Run, "run", "", "evaluate the program tree in the given YAML file")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: reggae [flags] [file ...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. reggae defines -help, but not -h; so
			// this means that -h has been requested. Handle this by printing
			// the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	// Handle flags common to all subprograms.
	if !f.NoRc {
		if err := applyRC(f, fs); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	if f.Log != "" {
		err = logutil.SetOutputFile(f.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Reads the rc file and copies its settings into the flags that were not
// given on the command line. A missing rc file at the default path is not an
// error.
func applyRC(f *Flags, fs *flag.FlagSet) error {
	path := f.RC
	if path == "" {
		var err error
		path, err = rc.DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
	}
	cfg, err := rc.Load(path)
	if err != nil {
		return err
	}
	logger.Printf("read rc file %s", path)

	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	setString := func(name string, p *string, v string) {
		if !set[name] && v != "" {
			*p = v
		}
	}
	setString("log", &f.Log, cfg.Log)
	setString("db", &f.DB, cfg.DB)
	setString("history", &f.History, cfg.History)
	if !set["compact"] && cfg.Compact {
		f.Compact = true
	}
	if !set["cache-size"] && cfg.CacheSize != 0 {
		f.CacheSize = cfg.CacheSize
	}
	return nil
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return NotSuitable().
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned errNotSuitable
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
