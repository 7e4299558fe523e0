package custody

// Release of this module. GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/custody.GitCommit=<sha>"
const release = "v0.1.0-dev"

var GitCommit = ""

// Version is the release, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return release
	}
	return release + " " + GitCommit
}
