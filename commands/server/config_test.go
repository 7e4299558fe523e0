package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	cases := map[string]struct {
		file string
		env  map[string]string
		args []string
		want Config
	}{
		"defaults without a config file": {
			want: Config{Bind: "tcp://localhost:26658", Metrics: "localhost:26660"},
		},
		"config file overrides defaults": {
			file: "bind = \"tcp://0.0.0.0:3000\"\nmetrics = \"\"\n",
			want: Config{Bind: "tcp://0.0.0.0:3000"},
		},
		"environment overrides config file": {
			file: "bind = \"tcp://0.0.0.0:3000\"\n",
			env:  map[string]string{"CUSTODY_DEBUG": "true", "CUSTODY_BIND": "tcp://0.0.0.0:4000"},
			want: Config{Bind: "tcp://0.0.0.0:4000", Debug: true, Metrics: "localhost:26660"},
		},
		"flags override everything": {
			file: "bind = \"tcp://0.0.0.0:3000\"\ndebug = true\n",
			env:  map[string]string{"CUSTODY_METRICS": "0.0.0.0:9000"},
			args: []string{"-bind", "unix:///tmp/custody.sock", "-debug=false"},
			want: Config{Bind: "unix:///tmp/custody.sock", Metrics: "0.0.0.0:9000"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, err := ioutil.TempDir("", "custody-config")
			require.NoError(t, err)
			defer os.RemoveAll(home)

			if tc.file != "" {
				require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config.toml"), []byte(tc.file), 0600))
			}
			for k, v := range tc.env {
				require.NoError(t, os.Setenv(k, v))
				defer os.Unsetenv(k)
			}

			got, err := LoadConfig(home, tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadConfigRejectsBrokenFile(t *testing.T) {
	home, err := ioutil.TempDir("", "custody-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config.toml"), []byte("bind = = ="), 0600))

	_, err = LoadConfig(home, nil)
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownFlag(t *testing.T) {
	home, err := ioutil.TempDir("", "custody-config")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	_, err = LoadConfig(home, []string{"-min_fee", "1 IOV"})
	assert.Error(t, err)
}
