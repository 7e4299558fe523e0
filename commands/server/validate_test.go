package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyInitializer requires the "demo" key to hold a non empty string.
type keyInitializer struct{}

func (keyInitializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var value string
	if err := opts.ReadOptions("demo", &value); err != nil {
		return err
	}
	if value == "" {
		return errors.Wrap(errors.ErrEmpty, "demo")
	}
	return db.Set([]byte("demo"), []byte(value))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "custody-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}
	valid := write("valid.json", `{"chain_id": "x", "app_state": {"demo": "hello"}}`)
	empty := write("empty.json", `{"chain_id": "x", "app_state": {"demo": ""}}`)
	missing := write("missing.json", `{"chain_id": "x"}`)
	broken := write("broken.json", `{"chain_id": `)

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid genesis":     {paths: []string{valid}},
		"no files":          {paths: nil, wantErr: errors.ErrEmpty},
		"initializer fails": {paths: []string{valid, empty}, wantErr: errors.ErrEmpty},
		"no app state":      {paths: []string{missing}, wantErr: errors.ErrEmpty},
		"not json":          {paths: []string{broken}, wantErr: errors.ErrInvalidInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(keyInitializer{}, tc.paths)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}
