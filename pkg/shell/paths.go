package shell

import (
	"os"
	"path/filepath"
)

// HistoryFile is the name of the history file in the home directory.
const HistoryFile = ".reggae.history"

// HistoryPath returns the default path of the history file.
func HistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, HistoryFile), nil
}
