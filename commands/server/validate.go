package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

// ValidateGenesis runs ini over the app_state of each genesis file on a
// scratch store, so that a broken genesis shows before the chain starts.
func ValidateGenesis(ini custody.Initializer, paths []string) error {
	if len(paths) == 0 {
		return errors.Wrap(errors.ErrEmpty, "usage: cmd validate <path to genesis.json>...")
	}
	for _, path := range paths {
		if err := validateFile(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateFile(ini custody.Initializer, path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}
	var genesis struct {
		AppState custody.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &genesis); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "cannot JSON deserialize genesis")
	}
	if len(genesis.AppState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state")
	}
	return errors.Wrap(ini.FromGenesis(genesis.AppState, store.MemStore()), "cannot initialize from genesis")
}
