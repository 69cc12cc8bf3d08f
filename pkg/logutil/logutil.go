// Package logutil provides logging utilities.
package logutil

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	out     = io.Discard
	loggers []*log.Logger
	lock    sync.Mutex
)

// GetLogger gets a logger with a prefix. All loggers share the same output,
// which is initially discarded.
func GetLogger(prefix string) *log.Logger {
	lock.Lock()
	defer lock.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	lock.Lock()
	defer lock.Unlock()
	if f, ok := out.(*os.File); ok && f == opened {
		f.Close()
		opened = nil
	}
	out = newout
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}

var opened *os.File

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. If the file already exists, it is appended to. An empty
// name discards the output.
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	lock.Lock()
	opened = file
	lock.Unlock()
	return nil
}
