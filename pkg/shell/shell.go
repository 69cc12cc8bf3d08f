// Package shell is the entry point for the line interface of reggae. Each
// line holds a postfix boolean expression, and the truth table of the
// expression is printed for it.
package shell

import (
	"fmt"
	"os"

	"src.reggae.sh/pkg/logutil"
	"src.reggae.sh/pkg/prog"
	"src.reggae.sh/pkg/store"
	"src.reggae.sh/pkg/store/storedefs"
	"src.reggae.sh/pkg/sys"
	"src.reggae.sh/pkg/truth"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the line interface subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	var st storedefs.Store
	if f.DB != "" {
		var err error
		st, err = store.NewStore(f.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "Lines and truth tables will not be stored.")
		} else {
			defer st.Close()
		}
	}

	s, err := NewSession(fds[1], f.CacheSize, st)
	if err != nil {
		return prog.BadUsage(err.Error())
	}
	if f.Compact {
		s.Layout = truth.Compact
	}
	s.Width = sys.TermWidth(fds[1])

	if len(args) > 0 || !sys.IsATTY(fds[0].Fd()) {
		return prog.Exit(script(fds, s, args))
	}

	history := f.History
	if history == "" {
		history, err = HistoryPath()
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	return prog.Exit(interact(fds, s, history))
}
