package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Prompt shown by the line editor.
const Prompt = ">>-> "

// Reads lines from the terminal with a line editor until EOF. History is read
// from and written back to the history file, if there is one. Returns the exit
// status.
func interact(fds [3]*os.File, s *Session, historyPath string) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := os.Create(historyPath)
			if err != nil {
				logger.Println("failed to write history:", err)
				return
			}
			ln.WriteHistory(f)
			f.Close()
		}()
	}

	failed := false
	for {
		line, err := ln.Prompt(Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		} else if errors.Is(err, io.EOF) {
			fmt.Fprintln(fds[1])
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			return 2
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if err := s.EvalLine(line); err != nil {
			fmt.Fprintln(fds[2], "error:", err)
			failed = true
		}
	}

	if failed {
		return 2
	}
	return 0
}
