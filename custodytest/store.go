package custodytest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/store/iavl"
)

// CommitKVStore opens the production iavl store in a temporary directory.
// Call cleanup to close it and remove the files.
func CommitKVStore(t testing.TB) (db custody.CommitKVStore, cleanup func()) {
	dir, err := ioutil.TempDir("", "custodytest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	s := iavl.NewCommitStore(dir, "custody")
	return s, func() {
		s.Close()
		os.RemoveAll(dir)
	}
}
