package updater

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/relayops/mailwatch/pkg/models"
)

// StateStore persists the reconciliation record between runs.
type StateStore interface {
	Load() (models.State, error)
	Save(state models.State) error
}

// FileStateStore keeps the state as a small JSON file. The file is
// rewritten whole on every save via a temp file and rename.
type FileStateStore struct {
	Path string
}

// Load reads the persisted state. A missing file is not an error: it means
// no reconciliation has succeeded yet, and yields a zero state.
func (s FileStateStore) Load() (models.State, error) {
	var state models.State

	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return state, nil
	}
	if err != nil {
		return state, errors.Wrap(err, "could not read state file")
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return state, errors.Wrap(err, "could not parse state file")
	}
	return state, nil
}

func (s FileStateStore) Save(state models.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "could not serialise state")
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "could not create state directory")
	}

	tmp, err := os.CreateTemp(dir, ".state-*")
	if err != nil {
		return errors.Wrap(err, "could not create temporary state file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not write state file")
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return errors.Wrap(os.Rename(tmp.Name(), s.Path), "could not replace state file")
}
