package update

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/samsaffron/term-diff/internal/config"
)

const stateFileName = "update-check.json"

// State records the outcome of past update checks. It lives next to the
// config file, so a fresh install starts with no state.
type State struct {
	LastChecked     time.Time `json:"last_checked"`
	LatestVersion   string    `json:"latest_version,omitempty"`
	LastError       string    `json:"last_error,omitempty"`
	NotifiedVersion string    `json:"notified_version,omitempty"`
	LastNotified    time.Time `json:"last_notified"`
}

// LoadState reads the persisted check state. A missing file yields an
// empty state, not an error.
func LoadState() (*State, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	return loadStateFromDir(dir)
}

// SaveState persists the check state.
func SaveState(state *State) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	return saveStateToDir(dir, state)
}

func loadStateFromDir(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, stateFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &State{}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func saveStateToDir(dir string, state *State) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, stateFileName), data, 0600)
}
